package httpserver

import (
	"fmt"
	"net/http"

	"github.com/barakadvert/storefront/internal/domain"
	"github.com/barakadvert/storefront/internal/wizard"
)

var errNoCheckout = fmt.Errorf("no checkout in progress: %w", domain.ErrNotFound)

func (s *Server) apiCheckoutStart(w http.ResponseWriter, r *http.Request) {
	co, err := s.session(w, r).StartCheckout(s.rates)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, co.Snapshot())
}

// checkout resolves the running checkout or answers 404.
func (s *Server) checkout(w http.ResponseWriter, r *http.Request) (*wizard.Checkout, bool) {
	co := s.session(w, r).Checkout()
	if co == nil {
		writeError(w, r, errNoCheckout)
		return nil, false
	}
	return co, true
}

func (s *Server) apiCheckout(w http.ResponseWriter, r *http.Request) {
	co, ok := s.checkout(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, co.Snapshot())
}

func (s *Server) apiCheckoutUpdate(w http.ResponseWriter, r *http.Request) {
	updates, err := fieldUpdates(r)
	if err != nil {
		badRequest(w, "invalid request body")
		return
	}
	co, ok := s.checkout(w, r)
	if !ok {
		return
	}
	if err := co.UpdateFields(updates); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, co.Snapshot())
}

func (s *Server) apiCheckoutNext(w http.ResponseWriter, r *http.Request) {
	s.checkoutStep(w, r, (*wizard.Checkout).Advance)
}

func (s *Server) apiCheckoutBack(w http.ResponseWriter, r *http.Request) {
	s.checkoutStep(w, r, (*wizard.Checkout).Retreat)
}

func (s *Server) checkoutStep(w http.ResponseWriter, r *http.Request, move func(*wizard.Checkout) error) {
	co, ok := s.checkout(w, r)
	if !ok {
		return
	}
	if err := move(co); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, co.Snapshot())
}

func (s *Server) apiCheckoutPlace(w http.ResponseWriter, r *http.Request) {
	co, ok := s.checkout(w, r)
	if !ok {
		return
	}
	conf, err := co.PlaceOrder()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"confirmation": conf})
}
