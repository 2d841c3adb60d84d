package httpserver

import (
	"net/http"

	"github.com/barakadvert/storefront/internal/wizard"
)

func (s *Server) apiQuote(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session(w, r).Quote.Snapshot())
}

func (s *Server) apiQuoteUpdate(w http.ResponseWriter, r *http.Request) {
	updates, err := fieldUpdates(r)
	if err != nil {
		badRequest(w, "invalid request body")
		return
	}
	q := s.session(w, r).Quote
	if err := q.UpdateFields(updates); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q.Snapshot())
}

func (s *Server) apiQuoteNext(w http.ResponseWriter, r *http.Request) {
	s.quoteStep(w, r, (*wizard.Quote).Advance)
}

func (s *Server) apiQuoteBack(w http.ResponseWriter, r *http.Request) {
	s.quoteStep(w, r, (*wizard.Quote).Retreat)
}

func (s *Server) quoteStep(w http.ResponseWriter, r *http.Request, move func(*wizard.Quote) error) {
	q := s.session(w, r).Quote
	if err := move(q); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q.Snapshot())
}

func (s *Server) apiQuoteSubmit(w http.ResponseWriter, r *http.Request) {
	receipt, err := s.session(w, r).Quote.Submit(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}
