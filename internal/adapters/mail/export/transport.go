// Package export is the minimal transport: it writes each payload to a JSON file.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/barakadvert/storefront/internal/domain"
)

type Transport struct {
	storage domain.FileStorage
}

func New(s domain.FileStorage) *Transport {
	return &Transport{storage: s}
}

type document struct {
	Recipient   string          `json:"recipient"`
	Subject     string          `json:"subject"`
	Category    domain.Category `json:"category"`
	Timestamp   string          `json:"timestamp"`
	Body        domain.Body     `json:"body"`
	Attachments []exportedFile  `json:"attachments,omitempty"`
}

// exportedFile points at an attachment written next to the document.
type exportedFile struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	File        string `json:"file"`
}

// Send never returns an error: write failures are reported as an unsuccessful
// outcome. Attachments are written beside the JSON document as
// <category>-<ms>-<name>.
func (t *Transport) Send(ctx context.Context, p domain.EmailPayload) (domain.Outcome, error) {
	prefix := fmt.Sprintf("%s-%d", p.Category, p.Timestamp.UnixMilli())
	doc := document{
		Recipient: p.Recipient,
		Subject:   p.Subject,
		Category:  p.Category,
		Timestamp: p.Timestamp.UTC().Format(time.RFC3339),
		Body:      p.Body,
	}
	for _, a := range p.Attachments {
		file := prefix + "-" + a.Name
		if _, err := t.storage.Save(ctx, file, a.Data); err != nil {
			log.Error().Err(err).Str("file", file).Msg("export attachment write")
			return domain.Outcome{Success: false, Message: "Could not save the export"}, nil
		}
		doc.Attachments = append(doc.Attachments, exportedFile{Name: a.Name, ContentType: a.ContentType, File: file})
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Error().Err(err).Str("category", string(p.Category)).Msg("export marshal")
		return domain.Outcome{Success: false, Message: "Could not prepare the export"}, nil
	}
	name := prefix + ".json"
	path, err := t.storage.Save(ctx, name, data)
	if err != nil {
		log.Error().Err(err).Str("file", name).Msg("export write")
		return domain.Outcome{Success: false, Message: "Could not save the export"}, nil
	}
	log.Info().Str("file", path).Str("category", string(p.Category)).Msg("payload exported")
	return domain.Outcome{Success: true, Message: "Saved to " + name}, nil
}
