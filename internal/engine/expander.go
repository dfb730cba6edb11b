package engine

import (
	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/logger"
)

// DefaultRecursionLimit bounds expansion passes when none is given.
const DefaultRecursionLimit = domain.DefaultRecursionLimit

// Expander resolves template placeholders against a dataset.
// The zero value is usable: fresh randomness, DefaultAlpha, DefaultRecursionLimit.
type Expander struct {
	Rand  Rand
	Alpha float64
	Limit int
}

// Expand resolves template against ds with the given pass budget.
// See Expander.Expand.
func Expand(r Rand, template string, ds domain.Dataset, limit int) string {
	return Expander{Rand: r, Limit: limit}.Expand(template, ds)
}

// Expand rewrites every placeholder of template once per pass:
//
//   - {a|b|c} becomes one of the trimmed alternatives, picked uniformly.
//   - {key} becomes the value of an option sampled from ds[key].
//   - {key} with no such slot, or an empty one, is left as is.
//
// Values substituted in one pass are scanned again in the next, so
// placeholders nested in option values resolve too. Expansion stops when a
// pass leaves the string unchanged, or after Limit passes. Running out of
// passes with resolvable placeholders left logs a warning and returns the
// partial string.
func (e Expander) Expand(template string, ds domain.Dataset) string {
	limit := e.Limit
	if limit <= 0 {
		limit = DefaultRecursionLimit
	}
	r := orFresh(e.Rand)

	resolve := func(p Placeholder) (string, bool) {
		if p.IsAlternation() {
			alts := p.Alternatives()
			return alts[r.IntN(len(alts))], true
		}
		if key := p.Key(); ds.Has(key) {
			return Sample(r, ds[key], e.Alpha).Value, true
		}
		return "", false
	}

	s := template
	for pass := 0; pass < limit; pass++ {
		next, resolved := substitute(s, resolve)
		if !resolved || next == s {
			return next
		}
		s = next
	}

	if Resolvable(s, ds) {
		logger.Warn("template expansion stopped after %d passes; check for circular slot values", limit)
	}
	return s
}

// Resolvable reports whether s still holds a placeholder Expand would rewrite.
func Resolvable(s string, ds domain.Dataset) bool {
	for _, p := range Placeholders(s) {
		if p.IsAlternation() || ds.Has(p.Key()) {
			return true
		}
	}
	return false
}
