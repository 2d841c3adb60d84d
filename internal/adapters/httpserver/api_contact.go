package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/barakadvert/storefront/internal/domain"
)

const (
	contactSentMsg = "Thank you! Your message has been sent."
	contactFailMsg = "Failed to send message. Please try again."
)

func (s *Server) apiContact(w http.ResponseWriter, r *http.Request) {
	var msg domain.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := s.validate.Struct(msg); err != nil {
		writeError(w, r, &domain.ValidationError{Fields: invalidFields(err), Message: "Please fill in your name, a valid email and a message"})
		return
	}
	body, err := s.formatter.Contact(msg)
	if err != nil {
		writeError(w, r, err)
		return
	}
	payload := s.formatter.NewPayload(s.inbox, "New Contact Message - "+msg.Name, domain.CategoryContact, body)
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		payload.IdempotencyKey = key
	}
	out, err := s.transport.Send(r.Context(), payload)
	if err != nil {
		writeError(w, r, &domain.TransportError{Category: domain.CategoryContact, Message: contactFailMsg, Err: err})
		return
	}
	if !out.Success {
		writeError(w, r, &domain.TransportError{Category: domain.CategoryContact, Message: contactFailMsg})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": contactSentMsg})
}
