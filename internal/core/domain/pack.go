package domain

import (
	"strings"
	"time"
)

// Pack is a self-contained vocabulary of slots plus the templates that use them.
type Pack struct {
	// ID uniquely identifies the pack.
	ID string `json:"id"`

	// Name is the user-facing name.
	Name string `json:"name"`

	// Author is the pack author, if known.
	Author string `json:"author,omitempty"`

	// Description is a short summary.
	Description string `json:"description,omitempty"`

	// Version is the pack's declared version string.
	Version string `json:"version,omitempty"`

	// Tags are attached to every composition made from this pack.
	Tags []string `json:"tags,omitempty"`

	// Template is the default prompt template.
	Template string `json:"promptTemplate"`

	// Templates are additional named templates.
	Templates []NamedTemplate `json:"promptTemplates,omitempty"`

	// Slots are the pack's top-level slots.
	Slots []Slot `json:"slots"`

	// Profile holds nested character profile slots, flattened into
	// compound keys when the dataset is built.
	Profile map[string]SlotValue `json:"-"`

	// Source records where the pack was imported from.
	Source string `json:"source,omitempty"`

	// CreatedAt is when the pack was first stored.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the pack was last stored.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NamedTemplate is an alternative template selectable by name.
type NamedTemplate struct {
	Name     string `json:"name"`
	Template string `json:"template"`
}

// TemplateKey normalises a template name for lookup.
func TemplateKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// TemplateByName returns the template selected by name.
// An empty name, or "default", selects the pack's default template.
func (p *Pack) TemplateByName(name string) (string, error) {
	key := TemplateKey(name)
	if key == "" || key == "default" {
		return p.Template, nil
	}
	for _, t := range p.Templates {
		if TemplateKey(t.Name) == key {
			return t.Template, nil
		}
	}
	return "", ErrTemplateNotFound
}

// Slot returns the top-level slot with the given id.
func (p *Pack) Slot(id string) (*Slot, bool) {
	for i := range p.Slots {
		if p.Slots[i].ID == id {
			return &p.Slots[i], true
		}
	}
	return nil, false
}

// Summary returns the list view of the pack.
func (p *Pack) Summary() PackSummary {
	return PackSummary{
		ID:          p.ID,
		Name:        p.Name,
		Author:      p.Author,
		Description: p.Description,
		Tags:        p.Tags,
		SlotCount:   len(p.Slots),
		UpdatedAt:   p.UpdatedAt,
	}
}

// PackSummary is the lightweight listing form of a pack.
type PackSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Author      string    `json:"author,omitempty"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	SlotCount   int       `json:"slotCount"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
