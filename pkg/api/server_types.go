package api

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// DensityRequest sets the link density
type DensityRequest struct {
	Density *float64 `json:"density"`
}

// ColorMapRequest selects a palette
type ColorMapRequest struct {
	Name string `json:"name"`
}

// PresetRequest selects a premade link geometry
type PresetRequest struct {
	Name string `json:"name"`
}

// DensityResponse reports the density after a change
type DensityResponse struct {
	Density      float64 `json:"density"`
	MaxDensity   float64 `json:"maxDensity"`
	VisibleLinks int     `json:"visibleLinks"`
	TotalLinks   int     `json:"totalLinks"`
}
