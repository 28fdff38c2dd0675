package api

import (
	"errors"
	"net/http"

	"github.com/enttlevo/mapai/internal/domain"
	"github.com/enttlevo/mapai/internal/geo"
)

// --- /api/v1/regions ---

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := s.regions.List(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRegionsDown) {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, regions)
}

// --- /api/v1/provinces ---

func (s *Server) handleProvinces(w http.ResponseWriter, r *http.Request) {
	idx := s.index()
	if idx == nil {
		writeError(w, http.StatusServiceUnavailable, "province index not ready")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"provinces": idx.CanonicalNames(),
	})
}

// --- /api/v1/geo/provinces ---

// handleGeo re-serves the boundary GeoJSON for the map layer. Geometry passes
// through untouched.
func (s *Server) handleGeo(w http.ResponseWriter, r *http.Request) {
	fc := s.dataset()
	if fc == nil {
		writeError(w, http.StatusNotFound, "no dataset loaded")
		return
	}
	writeJSON(w, http.StatusOK, fc)
}

// --- /api/v1/detect ---

type detectRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, geo.DetectProvince(req.Text, s.index()))
}
