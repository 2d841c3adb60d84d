package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/barakadvert/storefront/internal/domain"
)

type functionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleSendQuoteEmail is the send-quote-email function: it mails the quote to
// the business inbox and a confirmation to the customer.
func (s *Server) handleSendQuoteEmail(w http.ResponseWriter, r *http.Request) {
	var q domain.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeJSON(w, http.StatusBadRequest, functionResult{Error: "invalid request body"})
		return
	}
	if err := s.validate.Struct(q); err != nil {
		writeJSON(w, http.StatusBadRequest, functionResult{Error: "missing or invalid fields: " + strings.Join(invalidFields(err), ", ")})
		return
	}
	out, err := s.quotes.SendQuote(r.Context(), q, r.Header.Get("Idempotency-Key"))
	if err != nil {
		log.Error().Err(err).Str("request_id", RequestIDFrom(r.Context())).Msg("send-quote-email")
		writeJSON(w, http.StatusInternalServerError, functionResult{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, functionResult{Success: true, Message: out.Message})
}

func invalidFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Field())
	}
	return out
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}
