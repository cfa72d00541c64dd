package api

import (
	"net/http"
	"strconv"

	"github.com/dd0wney/vizaj/pkg/engine"
	"github.com/dd0wney/vizaj/pkg/logging"
	"github.com/dd0wney/vizaj/pkg/scene"
)

// handleScene serves a snapshot. Query parameters: format (json, yaml, sz),
// meshes and visible (booleans).
func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := scene.ParseFormat(q.Get("format"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	opts := engine.SnapshotOptions{}
	if opts.Meshes, err = queryBool(q.Get("meshes")); err != nil {
		s.respondError(w, http.StatusBadRequest, "meshes: "+err.Error())
		return
	}
	if opts.VisibleOnly, err = queryBool(q.Get("visible")); err != nil {
		s.respondError(w, http.StatusBadRequest, "visible: "+err.Error())
		return
	}

	data, err := scene.Marshal(s.engine.Snapshot(opts), format)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("scene write failed", logging.Error(err))
	}
}

func queryBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.engine.Params())
}

func (s *Server) densityResponse() DensityResponse {
	d, maxD := s.engine.Density()
	visible, total := s.engine.Counts()
	return DensityResponse{Density: d, MaxDensity: maxD, VisibleLinks: visible, TotalLinks: total}
}

func (s *Server) handleSetDensity(w http.ResponseWriter, r *http.Request) {
	var req DensityRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Density == nil {
		s.respondError(w, http.StatusBadRequest, "density is required")
		return
	}
	s.engine.SetDensity(*req.Density)
	s.respondJSON(w, http.StatusOK, s.densityResponse())
}

func (s *Server) handleEco(w http.ResponseWriter, r *http.Request) {
	s.engine.EcoFilter()
	s.respondJSON(w, http.StatusOK, s.densityResponse())
}

func (s *Server) handleSetColorMap(w http.ResponseWriter, r *http.Request) {
	var req ColorMapRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.engine.SetColorMap(req.Name); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, s.engine.ColorState())
}

// handleRescale re-ranges colors over the visible links, or over every
// link with ?all=true
func (s *Server) handleRescale(w http.ResponseWriter, r *http.Request) {
	all, err := queryBool(r.URL.Query().Get("all"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "all: "+err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, s.engine.RescaleColors(!all))
}

func (s *Server) handleSetPreset(w http.ResponseWriter, r *http.Request) {
	var req PresetRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.engine.ApplyPreset(req.Name); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, s.engine.Params())
}
