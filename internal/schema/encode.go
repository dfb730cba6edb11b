package schema

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

// packDocument is the canonical JSON form of a pack.
type packDocument struct {
	ID          string                 `json:"id,omitempty"`
	Name        string                 `json:"name,omitempty"`
	Author      string                 `json:"author,omitempty"`
	Description string                 `json:"description,omitempty"`
	Version     string                 `json:"version,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	Template    string                 `json:"promptTemplate,omitempty"`
	Templates   []domain.NamedTemplate `json:"promptTemplates,omitempty"`
	Slots       []domain.Slot          `json:"slots,omitempty"`
	Profile     map[string]any         `json:"characterProfileSchema,omitempty"`
}

// Marshal encodes a pack as a canonical JSON document that Parse reads back.
func Marshal(p *domain.Pack) ([]byte, error) {
	doc := packDocument{
		ID:          p.ID,
		Name:        p.Name,
		Author:      p.Author,
		Description: p.Description,
		Version:     p.Version,
		Tags:        p.Tags,
		Template:    p.Template,
		Templates:   p.Templates,
		Slots:       p.Slots,
	}
	if len(p.Profile) > 0 {
		doc.Profile = make(map[string]any, len(p.Profile))
		for k, v := range p.Profile {
			doc.Profile[k] = profileValue(v)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode pack %s: %w", p.ID, err)
	}
	return data, nil
}

func profileValue(v domain.SlotValue) any {
	switch v := v.(type) {
	case domain.FlatSlot:
		return []domain.Option(v)
	case domain.NestedSlot:
		out := make(map[string]any, len(v))
		for k, sub := range v {
			out[k] = profileValue(sub)
		}
		return out
	default:
		return nil
	}
}
