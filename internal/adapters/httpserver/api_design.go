package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/barakadvert/storefront/internal/domain"
)

func (s *Server) apiDesign(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session(w, r).Design.Config())
}

func (s *Server) apiDesignUpdate(w http.ResponseWriter, r *http.Request) {
	var patch domain.DesignPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	cfg, err := s.session(w, r).Design.UpdateConfig(patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) apiDesignSubmit(w http.ResponseWriter, r *http.Request) {
	receipt, err := s.session(w, r).Design.SubmitDesign(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) apiDesignPreview(w http.ResponseWriter, r *http.Request) {
	a, err := s.session(w, r).Design.ExportPreview(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+a.Name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Data)
}
