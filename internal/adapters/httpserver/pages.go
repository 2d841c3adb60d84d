package httpserver

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/barakadvert/storefront/internal/views"
)

const featuredCount = 4

func (s *Server) render(w http.ResponseWriter, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Year"]; !ok {
		data["Year"] = time.Now().Year()
	}
	data["Business"] = s.business
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("tpl", name).Msg("render")
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.List(r.Context(), "")
	if err != nil {
		log.Error().Err(err).Msg("home products")
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	if len(list) > featuredCount {
		list = list[:featuredCount]
	}
	s.session(w, r)
	s.render(w, "home.html", map[string]any{
		"Slides":          views.Slides(),
		"SlideIntervalMs": s.slides.Milliseconds(),
		"Services":        views.Services(),
		"Products":        list,
	})
}

func (s *Server) handleShop(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	list, err := s.products.List(r.Context(), category)
	if err != nil {
		log.Error().Err(err).Msg("shop products")
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	cats, err := s.products.Categories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("shop categories")
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	if category == "" {
		category = "all"
	}
	s.session(w, r)
	s.render(w, "shop.html", map[string]any{
		"Title":      "Shop",
		"Products":   list,
		"Categories": cats,
		"Category":   category,
	})
}

func (s *Server) handleCheckoutPage(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.render(w, "checkout.html", map[string]any{
		"Title":  "Checkout",
		"Items":  sess.Cart.Items(),
		"Totals": sess.Cart.Breakdown(s.rates),
	})
}
