package models

import (
	"encoding/json"
	"time"
)

// DefaultWhatsAppNumber is used when a preview is saved without a contact number.
const DefaultWhatsAppNumber = "972546104210"

// PreviewRecord is a named (key, template, data) tuple renderable as a full page.
// Key doubles as the storage identifier and never changes after creation.
type PreviewRecord struct {
	Key            string          `json:"key"`
	Template       string          `json:"template"`
	Data           json.RawMessage `json:"data"`
	WhatsAppNumber string          `json:"whatsappNumber,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// PreviewURL is the public page path for a preview key.
func PreviewURL(key string) string {
	return "/preview/" + key
}
