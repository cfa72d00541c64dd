package montage

import (
	"errors"
	"fmt"
)

// Sentinel errors for rejected montage input
var (
	ErrNodeCountMismatch = errors.New("node count mismatch")
	ErrNotSquare         = errors.New("matrix is not square")
	ErrNonNumeric        = errors.New("non-numeric value")
	ErrSelfLoop          = errors.New("self-loop")
	ErrDuplicateEdge     = errors.New("duplicate edge")
	ErrUnknownNode       = errors.New("unknown node")
	ErrInvalidRecord     = errors.New("invalid edge record")
)

// IngestError describes where montage input was rejected
type IngestError struct {
	Op      string // e.g. "matrix", "edges", "coordinates"
	Row     int    // 0-based; -1 when not applicable
	Col     int    // 0-based; -1 when not applicable
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *IngestError) Error() string {
	switch {
	case e.Row >= 0 && e.Col >= 0:
		return fmt.Sprintf("%s row %d col %d: %v", e.Op, e.Row+1, e.Col+1, e.Cause)
	case e.Row >= 0:
		return fmt.Sprintf("%s row %d: %v", e.Op, e.Row+1, e.Cause)
	case e.Context != "":
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *IngestError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for building IngestErrors.
type ErrorBuilder struct {
	err IngestError
}

// NewError starts an error for the given ingestion step.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: IngestError{Op: op, Row: -1, Col: -1}}
}

// Row sets the offending row.
func (b *ErrorBuilder) Row(row int) *ErrorBuilder {
	b.err.Row = row
	return b
}

// Cell sets the offending row and column.
func (b *ErrorBuilder) Cell(row, col int) *ErrorBuilder {
	b.err.Row = row
	b.err.Col = col
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	e := b.err
	return &e
}
