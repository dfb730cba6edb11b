package engine

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

// Composer turns a pack template and a selection set into a prompt.
type Composer struct {
	Rand  Rand
	Alpha float64
	Limit int

	// Mode decides how slots without a selection are filled.
	// Empty means domain.FillRandom.
	Mode domain.FillMode
}

// Result is the output of a composition.
type Result struct {
	// Prompt is the normalised text.
	Prompt string

	// Resolved holds the value used for every slot the template references.
	Resolved domain.Selections

	// Tags are the pack tags followed by the non-empty resolved values.
	Tags []string
}

// Compose fills the pack's default template. See ComposeTemplate.
func (c Composer) Compose(pack *domain.Pack, sel domain.Selections) Result {
	return c.ComposeTemplate(pack, pack.Template, sel)
}

// ComposeTemplate resolves every slot template references, then expands
// and normalises the text.
//
// A slot takes the caller's selection verbatim when one is given, except
// locked slots, which always use their default option. Other slots are
// sampled, or take their default option (else their first option) in
// FillDefaults mode. Each {slot} is replaced by its resolved value and the
// text goes through the Expander and Normalize. Caller selections are
// inserted only after that, so braces inside them are kept as typed.
func (c Composer) ComposeTemplate(pack *domain.Pack, template string, sel domain.Selections) Result {
	r := orFresh(c.Rand)
	ds := DatasetFromPack(pack)

	resolved := make(domain.Selections)
	verbatim := make(map[string]string)
	var order []string
	for _, p := range Placeholders(template) {
		key := p.Key()
		if p.IsAlternation() {
			continue
		}
		if _, done := resolved[key]; done {
			continue
		}
		slot, isSlot := pack.Slot(key)
		if !isSlot && !ds.Has(key) {
			continue
		}
		v, chosen := c.fill(r, slot, ds[key], sel, key)
		resolved[key] = v
		if chosen && strings.TrimSpace(v) != "" {
			verbatim[key] = holdToken(len(verbatim))
		}
		order = append(order, key)
	}

	text, _ := substitute(template, func(p Placeholder) (string, bool) {
		if tok, ok := verbatim[p.Key()]; ok {
			return tok, true
		}
		v, ok := resolved[p.Key()]
		return v, ok
	})
	text = Expander{Rand: r, Alpha: c.Alpha, Limit: c.Limit}.Expand(text, ds)
	text = Normalize(text)
	if len(verbatim) > 0 {
		pairs := make([]string, 0, 2*len(verbatim))
		for key, tok := range verbatim {
			pairs = append(pairs, tok, resolved[key])
		}
		text = strings.NewReplacer(pairs...).Replace(text)
	}

	return Result{
		Prompt:   text,
		Resolved: resolved,
		Tags:     composeTags(pack.Tags, resolved, order),
	}
}

// holdToken marks where a caller selection goes once expansion is done.
// It holds no braces, so neither the Expander nor Normalize touch it.
func holdToken(i int) string {
	return "\x00" + strconv.Itoa(i) + "\x00"
}

// fill returns the value for key and whether it came from the caller.
func (c Composer) fill(r Rand, slot *domain.Slot, options []domain.Option, sel domain.Selections, key string) (string, bool) {
	if slot != nil && slot.Locked {
		return slot.DefaultOption, false
	}
	if v, ok := sel[key]; ok {
		return v, true
	}
	if c.Mode == domain.FillDefaults {
		if slot != nil && slot.DefaultOption != "" {
			return slot.DefaultOption, false
		}
		if len(options) > 0 {
			return options[0].Value, false
		}
		return "", false
	}
	if len(options) == 0 && slot != nil {
		return slot.DefaultOption, false
	}
	return Sample(r, options, c.Alpha).Value, false
}

func composeTags(packTags []string, resolved domain.Selections, order []string) []string {
	seen := make(map[string]bool)
	var tags []string
	add := func(t string) {
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		tags = append(tags, t)
	}
	for _, t := range packTags {
		add(t)
	}
	for _, key := range order {
		add(resolved[key])
	}
	return tags
}
