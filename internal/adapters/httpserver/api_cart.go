package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/barakadvert/storefront/internal/cart"
	"github.com/barakadvert/storefront/internal/domain"
	"github.com/barakadvert/storefront/internal/pricing"
)

type cartView struct {
	Items  []domain.CartItem     `json:"items"`
	Count  int                   `json:"count"`
	Total  float64               `json:"total"`
	Totals domain.PriceBreakdown `json:"totals"`
}

func viewCart(c *cart.Cart, rates pricing.Rates) cartView {
	items := c.Items()
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartView{Items: items, Count: c.Count(), Total: c.Total(), Totals: c.Breakdown(rates)}
}

func (s *Server) apiCart(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	writeJSON(w, http.StatusOK, viewCart(sess.Cart, s.rates))
}

func (s *Server) apiCartAdd(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.ProductID == "" {
		badRequest(w, "productId is required")
		return
	}
	sess := s.session(w, r)
	p, err := s.products.Get(r.Context(), in.ProductID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !p.InStock {
		writeJSON(w, http.StatusConflict, errorBody{Error: p.Name + " is out of stock"})
		return
	}
	if err := sess.Cart.Add(*p); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewCart(sess.Cart, s.rates))
}

func (s *Server) apiCartSetQuantity(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Quantity == nil {
		badRequest(w, "quantity is required")
		return
	}
	sess := s.session(w, r)
	if err := sess.Cart.SetQuantity(chi.URLParam(r, "id"), *in.Quantity); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewCart(sess.Cart, s.rates))
}

func (s *Server) apiCartRemove(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if err := sess.Cart.Remove(chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewCart(sess.Cart, s.rates))
}

func (s *Server) apiCartOrder(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	receipt, err := sess.Cart.SaveOrder(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}
