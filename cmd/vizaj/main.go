package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/dd0wney/vizaj/pkg/api"
	"github.com/dd0wney/vizaj/pkg/config"
	"github.com/dd0wney/vizaj/pkg/engine"
	"github.com/dd0wney/vizaj/pkg/logging"
	"github.com/dd0wney/vizaj/pkg/metrics"
	"github.com/dd0wney/vizaj/pkg/montage"
	"github.com/dd0wney/vizaj/pkg/scene"
	"github.com/fatih/color"
)

type options struct {
	sources    montage.Sources
	configPath string
	density    float64
	eco        bool
	preset     string
	out        string
	meshes     bool
	listenAddr string
	logLevel   string
	logFormat  string
	top        int
	workers    int
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.sources.Positions, "positions", "", "Node coordinates CSV")
	flag.StringVar(&o.sources.Labels, "labels", "", "Node labels CSV (optional)")
	flag.StringVar(&o.sources.Matrix, "matrix", "", "Connectivity matrix CSV")
	flag.StringVar(&o.sources.JSON, "json", "", "Montage JSON with labels, coordinates and edges")
	flag.StringVar(&o.configPath, "config", "", "Parameters file (.yaml or .json)")
	flag.Float64Var(&o.density, "density", -1, "Link density in [0,1]; overrides eco filtering")
	flag.BoolVar(&o.eco, "eco", true, "Eco filter to a mean degree of 3 on load")
	flag.StringVar(&o.preset, "preset", "", "Link geometry preset")
	flag.StringVar(&o.out, "out", "", "Write a scene snapshot (.json, .yaml or .sz)")
	flag.BoolVar(&o.meshes, "meshes", false, "Include mesh buffers in the snapshot")
	flag.StringVar(&o.listenAddr, "listen", "", "Serve the HTTP API, metrics and health on this address until interrupted")
	flag.StringVar(&o.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&o.logFormat, "log-format", "text", "Log format (text, json)")
	flag.IntVar(&o.top, "top", 10, "Number of highest-degree nodes to print")
	flag.IntVar(&o.workers, "workers", 0, "Mesh generation goroutines (0 = GOMAXPROCS)")
	flag.Parse()
	return o
}

func main() {
	o := parseFlags()

	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(2)
	}
	logger := logging.New(os.Stderr, logging.Options{Level: level, Format: logging.Format(o.logFormat)})
	logging.SetDefaultLogger(logger)

	err = run(o, logger)
	if err != nil {
		logger.Error("vizaj failed", logging.Error(err))
	}
	// stderr may not support fsync
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(o options, logger logging.Logger) error {
	params := config.Default()
	if o.configPath != "" {
		p, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		params = p
		logger.Info("parameters loaded", logging.Path(o.configPath))
	}
	if o.preset != "" {
		params.Preset = o.preset
	}

	reg := metrics.DefaultRegistry()
	eng, err := engine.New(params,
		engine.WithLogger(logger),
		engine.WithMetrics(reg),
		engine.WithWorkers(o.workers))
	if err != nil {
		return err
	}

	m, links, err := montage.LoadFiles(o.sources)
	if err != nil {
		return err
	}
	if err := eng.SetMontage(m); err != nil {
		return err
	}

	res, err := eng.LoadEdges(links, engine.LoadOptions{KeepDensity: !o.eco})
	if err != nil {
		return err
	}
	if o.density >= 0 {
		eng.SetDensity(o.density)
	}

	snap := eng.Snapshot(engine.SnapshotOptions{Meshes: o.meshes})
	printSummary(os.Stdout, snap, res, o.top)

	if o.out != "" {
		if err := writeSnapshot(o.out, snap); err != nil {
			return err
		}
		logger.Info("snapshot written", logging.Path(o.out))
	}

	if o.listenAddr != "" {
		reg.UpdateSystemMetrics()
		return serve(o.listenAddr, reg, eng, logger)
	}
	return nil
}

var (
	brand = color.New(color.FgHiGreen, color.Bold)
	warn  = color.New(color.FgYellow)
)

func printSummary(out io.Writer, s *scene.Snapshot, res engine.LoadResult, top int) {
	fmt.Fprintf(out, "✅ Montage %s\n", brand.Sprint(s.MontageID))
	fmt.Fprintf(out, "   Nodes:       %d\n", len(s.Nodes))
	fmt.Fprintf(out, "   Links:       %d loaded, %d excluded\n", res.Loaded, len(res.Degenerate))
	fmt.Fprintf(out, "   Density:     %.4f (max %.4f)\n", s.Density, s.MaxDensity)
	fmt.Fprintf(out, "   Visible:     %d\n", s.VisibleLinks)
	fmt.Fprintf(out, "   Mean degree: %.3f\n", s.MeanDegree)
	fmt.Fprintf(out, "   Color map:   %s [%.4g, %.4g]\n", s.ColorMap.Name, s.ColorMap.Min, s.ColorMap.Max)
	for _, l := range res.Degenerate {
		warn.Fprintf(out, "   ⚠ excluded link %d-%d\n", l.Node1, l.Node2)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NODE\tLABEL\tDEGREE\tINDICATOR")
	for _, n := range s.TopDegrees(top) {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.3f\n", n.Index, n.Label, n.Degree, n.Indicator)
	}
	w.Flush()
}

func writeSnapshot(path string, s *scene.Snapshot) error {
	format, err := scene.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := scene.Write(f, s, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func serve(addr string, reg *metrics.Registry, eng *engine.Engine, logger logging.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(eng, reg, logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				reg.UpdateSystemMetrics()
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving", logging.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
