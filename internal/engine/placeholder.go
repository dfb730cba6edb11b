package engine

import "strings"

// Placeholder is a {body} token in a template.
type Placeholder struct {
	// Start is the byte offset of the opening brace.
	Start int

	// End is the byte offset just past the closing brace.
	End int

	// Body is the text between the braces.
	Body string
}

// Key returns the trimmed body.
func (p Placeholder) Key() string {
	return strings.TrimSpace(p.Body)
}

// IsAlternation reports whether the body is a {a|b|c} choice.
func (p Placeholder) IsAlternation() bool {
	return strings.Contains(p.Body, "|")
}

// Alternatives returns the trimmed choices of an alternation.
func (p Placeholder) Alternatives() []string {
	parts := strings.Split(p.Body, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Placeholders returns the innermost {body} tokens of s, left to right.
// A body is non-empty and contains no braces, so "{a{b}}" yields only {b}
// and "{}" yields nothing.
func Placeholders(s string) []Placeholder {
	var out []Placeholder
	open := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			open = i
		case '}':
			if open >= 0 && i > open+1 {
				out = append(out, Placeholder{Start: open, End: i + 1, Body: s[open+1 : i]})
			}
			open = -1
		}
	}
	return out
}

// substitute rewrites every placeholder of s once. resolve returns the
// replacement and whether the placeholder was resolved; unresolved tokens
// are copied verbatim. It reports whether any placeholder was resolved.
func substitute(s string, resolve func(Placeholder) (string, bool)) (string, bool) {
	tokens := Placeholders(s)
	if len(tokens) == 0 {
		return s, false
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	resolved := false
	for _, p := range tokens {
		b.WriteString(s[last:p.Start])
		if v, ok := resolve(p); ok {
			b.WriteString(v)
			resolved = true
		} else {
			b.WriteString(s[p.Start:p.End])
		}
		last = p.End
	}
	b.WriteString(s[last:])
	return b.String(), resolved
}
