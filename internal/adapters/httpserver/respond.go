package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/barakadvert/storefront/internal/domain"
	"github.com/barakadvert/storefront/internal/wizard"
)

type errorBody struct {
	Error   string   `json:"error"`
	Step    int      `json:"step,omitempty"`
	Fields  []string `json:"fields,omitempty"`
	Success *bool    `json:"success,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	var terr *domain.TransportError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: verr.Error(), Step: verr.Step, Fields: verr.Fields})
	case errors.As(err, &terr):
		log.Warn().Err(err).Str("request_id", RequestIDFrom(r.Context())).Msg("submission failed")
		f := false
		writeJSON(w, http.StatusBadGateway, errorBody{Error: terr.Message, Success: &f})
	case errors.Is(err, domain.ErrSubmitInFlight),
		errors.Is(err, domain.ErrNotFinalStep),
		errors.Is(err, domain.ErrOrderPlaced):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrEmptyCart):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "Your cart is empty"})
	case errors.Is(err, domain.ErrUnknownField):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Str("request_id", RequestIDFrom(r.Context())).Msg("unexpected error")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

// fieldUpdates decodes a JSON object of field values into strings, sorted by
// field name so updates apply in a stable order.
func fieldUpdates(r *http.Request) ([]wizard.Field, error) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]wizard.Field, 0, len(keys))
	for _, k := range keys {
		var v string
		switch t := raw[k].(type) {
		case string:
			v = t
		case float64:
			v = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			v = strconv.FormatBool(t)
		case nil:
			v = ""
		default:
			return nil, errors.New("field " + k + " must be a scalar")
		}
		out = append(out, wizard.Field{Name: k, Value: v})
	}
	return out, nil
}
