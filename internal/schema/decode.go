package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/engine"
)

var titleCaser = cases.Title(language.English)

// Label derives a display label from a slot key ("hair_color" → "Hair Color").
func Label(key string) string {
	return titleCaser.String(strings.NewReplacer("_", " ", "-", " ").Replace(key))
}

// invalid wraps domain.ErrInvalidSchema with the node position.
func invalid(n *yaml.Node, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if n != nil && n.Line > 0 {
		return fmt.Errorf("%w: line %d: %s", domain.ErrInvalidSchema, n.Line, msg)
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidSchema, msg)
}

// Parse decodes a JSON or YAML pack document.
// Any document whose root is not a mapping fails with domain.ErrInvalidSchema.
func Parse(data []byte) (*domain.Pack, error) {
	doc, err := document(data)
	if err != nil {
		return nil, err
	}
	root := resolve(doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, invalid(root, "document root must be an object")
	}

	p := &domain.Pack{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i].Value, resolve(root.Content[i+1])
		if err := decodeField(p, key, val); err != nil {
			return nil, err
		}
	}

	if p.Template == "" {
		p.Template = defaultTemplate(p)
	}
	return p, nil
}

// document parses data into a node tree. JSON goes through encoding/json
// first, since YAML rejects some valid JSON such as tab indentation.
func document(data []byte) (*yaml.Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed) {
		var v any
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSchema, err)
		}
		var n yaml.Node
		if err := n.Encode(v); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSchema, err)
		}
		return &n, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSchema, err)
	}
	return &doc, nil
}

// LoadDataset decodes a pack document straight into its flattened dataset.
func LoadDataset(data []byte) (domain.Dataset, error) {
	p, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return engine.DatasetFromPack(p), nil
}

func decodeField(p *domain.Pack, key string, val *yaml.Node) error {
	var err error
	switch key {
	case "id":
		p.ID, err = scalar(val, key)
	case "name":
		p.Name, err = scalar(val, key)
	case "author":
		p.Author, err = scalar(val, key)
	case "description":
		p.Description, err = scalar(val, key)
	case "version":
		p.Version, err = scalar(val, key)
	case "tags":
		p.Tags, err = decodeTags(val)
	case "promptTemplate", "prompt_template":
		p.Template, err = scalar(val, key)
	case "promptTemplates", "prompt_templates":
		p.Templates, err = decodeTemplates(val)
	case "slots":
		p.Slots, err = decodeSlots(val)
	case "characterProfileSchema", "character_profile_schema":
		err = decodeProfile(p, val)
	case "schema":
		// stored packs carry their vocabulary under schema
		if val.Kind != yaml.MappingNode {
			return invalid(val, "schema must be an object")
		}
		for i := 0; i+1 < len(val.Content); i += 2 {
			if err = decodeField(p, val.Content[i].Value, resolve(val.Content[i+1])); err != nil {
				return err
			}
		}
	case "type", "price", "coverImageUrl", "schemaUrl", "createdAt":
		// storefront metadata, not part of the vocabulary
	default:
		var sv domain.SlotValue
		sv, err = decodeSlotValue(val, key)
		if err == nil && sv != nil {
			addProfile(p, key, sv)
		}
	}
	return err
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func scalar(n *yaml.Node, field string) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", invalid(n, "%s must be a string", field)
	}
	if n.Tag == "!!null" {
		return "", nil
	}
	return n.Value, nil
}

func decodeTags(n *yaml.Node) ([]string, error) {
	var raw []string
	switch n.Kind {
	case yaml.ScalarNode:
		raw = strings.Split(n.Value, ",")
	case yaml.SequenceNode:
		for _, c := range n.Content {
			s, err := scalar(resolve(c), "tag")
			if err != nil {
				return nil, err
			}
			raw = append(raw, s)
		}
	default:
		return nil, invalid(n, "tags must be a list or a comma-separated string")
	}

	var tags []string
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

func decodeTemplates(n *yaml.Node) ([]domain.NamedTemplate, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		out := make([]domain.NamedTemplate, 0, len(n.Content))
		for _, c := range n.Content {
			c = resolve(c)
			var t domain.NamedTemplate
			if err := c.Decode(&t); err != nil || c.Kind != yaml.MappingNode {
				return nil, invalid(c, "promptTemplates entries need a name and a template")
			}
			if t.Name == "" {
				return nil, invalid(c, "prompt template without a name")
			}
			out = append(out, t)
		}
		return out, nil
	case yaml.MappingNode:
		// name: template shorthand
		out := make([]domain.NamedTemplate, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			tmpl, err := scalar(resolve(n.Content[i+1]), "template")
			if err != nil {
				return nil, err
			}
			out = append(out, domain.NamedTemplate{Name: n.Content[i].Value, Template: tmpl})
		}
		return out, nil
	default:
		return nil, invalid(n, "promptTemplates must be a list")
	}
}

func decodeSlots(n *yaml.Node) ([]domain.Slot, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, invalid(n, "slots must be a list")
	}
	out := make([]domain.Slot, 0, len(n.Content))
	seen := make(map[string]bool)
	for _, c := range n.Content {
		s, err := decodeSlot(resolve(c))
		if err != nil {
			return nil, err
		}
		if seen[s.ID] {
			return nil, invalid(c, "duplicate slot id %q", s.ID)
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out, nil
}

func decodeSlot(n *yaml.Node) (domain.Slot, error) {
	if n.Kind != yaml.MappingNode {
		return domain.Slot{}, invalid(n, "slot must be an object")
	}

	s := domain.Slot{Type: domain.SlotTypeSelect}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, resolve(n.Content[i+1])
		var err error
		switch key {
		case "id":
			s.ID, err = scalar(val, key)
		case "label":
			s.Label, err = scalar(val, key)
		case "type":
			var t string
			t, err = scalar(val, key)
			s.Type = domain.SlotType(t)
		case "options":
			s.Options, err = decodeOptions(val)
		case "defaultOption", "default":
			s.DefaultOption, err = scalar(val, key)
		case "placeholder":
			s.Placeholder, err = scalar(val, key)
		case "isLocked", "locked":
			s.Locked, err = boolean(val, key)
		}
		if err != nil {
			return domain.Slot{}, err
		}
	}

	if s.ID == "" {
		return domain.Slot{}, invalid(n, "slot without an id")
	}
	if s.Type == "" {
		s.Type = domain.SlotTypeSelect
	}
	if !s.Type.IsValid() {
		return domain.Slot{}, invalid(n, "slot %q has unknown type %q", s.ID, s.Type)
	}
	if s.Label == "" {
		s.Label = Label(s.ID)
	}
	return s, nil
}

func boolean(n *yaml.Node, field string) (bool, error) {
	if n.Kind != yaml.ScalarNode {
		return false, invalid(n, "%s must be a boolean", field)
	}
	b, err := strconv.ParseBool(n.Value)
	if err != nil {
		return false, invalid(n, "%s must be a boolean", field)
	}
	return b, nil
}

func decodeOptions(n *yaml.Node) ([]domain.Option, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, invalid(n, "options must be a list")
	}
	out := make([]domain.Option, 0, len(n.Content))
	for _, c := range n.Content {
		o, err := decodeOption(resolve(c))
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func decodeOption(n *yaml.Node) (domain.Option, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return domain.Option{Label: n.Value, Value: n.Value}, nil
	case yaml.MappingNode:
	default:
		return domain.Option{}, invalid(n, "option must be a string or an object")
	}

	var o domain.Option
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, resolve(n.Content[i+1])
		var err error
		switch key {
		case "label":
			o.Label, err = scalar(val, key)
		case "value":
			o.Value, err = scalar(val, key)
		case "rarity", "weight":
			var r float64
			if val.Kind != yaml.ScalarNode {
				return o, invalid(val, "rarity must be a number")
			}
			if r, err = strconv.ParseFloat(val.Value, 64); err != nil {
				return o, invalid(val, "rarity must be a number")
			}
			o.Rarity = domain.Rarity(r)
		case "exclusions":
			o.Exclusions, err = decodeExclusions(val)
		}
		if err != nil {
			return o, err
		}
	}

	if o.Value == "" && o.Label == "" {
		return o, invalid(n, "option needs a value or a label")
	}
	if o.Value == "" {
		o.Value = o.Label
	}
	if o.Label == "" {
		o.Label = o.Value
	}
	return o, nil
}

func decodeExclusions(n *yaml.Node) ([]domain.Exclusion, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, invalid(n, "exclusions must be a list")
	}
	out := make([]domain.Exclusion, 0, len(n.Content))
	for _, c := range n.Content {
		c = resolve(c)
		if c.Kind != yaml.MappingNode {
			return nil, invalid(c, "exclusion must be an object")
		}
		var ex domain.Exclusion
		for i := 0; i+1 < len(c.Content); i += 2 {
			key, val := c.Content[i].Value, resolve(c.Content[i+1])
			switch key {
			case "slotId", "slot":
				s, err := scalar(val, key)
				if err != nil {
					return nil, err
				}
				ex.SlotID = s
			case "optionValues", "values":
				tags, err := decodeTags(val)
				if err != nil {
					return nil, invalid(val, "optionValues must be a list of strings")
				}
				ex.Values = tags
			}
		}
		if ex.SlotID == "" {
			return nil, invalid(c, "exclusion without a slotId")
		}
		out = append(out, ex)
	}
	return out, nil
}

func decodeProfile(p *domain.Pack, n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return invalid(n, "characterProfileSchema must be an object")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		sv, err := decodeSlotValue(resolve(n.Content[i+1]), key)
		if err != nil {
			return err
		}
		if sv != nil {
			addProfile(p, key, sv)
		}
	}
	return nil
}

func addProfile(p *domain.Pack, key string, sv domain.SlotValue) {
	if p.Profile == nil {
		p.Profile = make(map[string]domain.SlotValue)
	}
	if prev, ok := p.Profile[key].(domain.FlatSlot); ok {
		if flat, ok := sv.(domain.FlatSlot); ok {
			p.Profile[key] = append(prev, flat...)
			return
		}
	}
	p.Profile[key] = sv
}

// errNotSlotValue marks a scalar that is neither an option list nor YAML text of one.
var errNotSlotValue = errors.New("not a slot value")

// decodeSlotValue decodes an option list as a FlatSlot and a mapping as a
// NestedSlot. A string holding YAML text of either is decoded in turn; any
// other scalar is ignored and returns a nil SlotValue.
func decodeSlotValue(n *yaml.Node, key string) (domain.SlotValue, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		opts, err := decodeOptions(n)
		if err != nil {
			return nil, err
		}
		return domain.FlatSlot(opts), nil
	case yaml.MappingNode:
		nested := make(domain.NestedSlot, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			sub := n.Content[i].Value
			sv, err := decodeSlotValue(resolve(n.Content[i+1]), key+"_"+sub)
			if err != nil {
				return nil, err
			}
			if sv != nil {
				nested[sub] = sv
			}
		}
		return nested, nil
	case yaml.ScalarNode:
		sv, err := decodeEmbedded(n.Value, key)
		if errors.Is(err, errNotSlotValue) {
			return nil, nil
		}
		return sv, err
	default:
		return nil, invalid(n, "%s must be a list or an object", key)
	}
}

func decodeEmbedded(text, key string) (domain.SlotValue, error) {
	if !strings.Contains(text, "\n") && !strings.HasPrefix(strings.TrimSpace(text), "[") {
		return nil, errNotSlotValue
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, errNotSlotValue
	}
	n := resolve(&doc)
	if n == nil || (n.Kind != yaml.SequenceNode && n.Kind != yaml.MappingNode) {
		return nil, errNotSlotValue
	}
	return decodeSlotValue(n, key)
}

// defaultTemplate joins every slot as a placeholder, in document order,
// followed by the top-level profile keys.
func defaultTemplate(p *domain.Pack) string {
	var parts []string
	for _, s := range p.Slots {
		parts = append(parts, "{"+s.ID+"}")
	}
	if len(parts) == 0 {
		for _, key := range engine.DatasetFromPack(p).Keys() {
			if _, top := p.Profile[key]; top {
				parts = append(parts, "{"+key+"}")
			}
		}
	}
	return strings.Join(parts, ", ")
}
