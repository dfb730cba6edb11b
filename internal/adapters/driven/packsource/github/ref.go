package github

import (
	"fmt"
	"strings"
)

// Ref locates a pack document in a repository.
type Ref struct {
	Owner string
	Repo  string
	Path  string
	Ref   string // branch, tag or commit; empty means the default branch
}

// ParseRef parses "owner/repo[/path][@ref]". A leading "github.com/" is accepted.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "https://")
	s = strings.TrimPrefix(s, "github.com/")

	var r Ref
	if at := strings.LastIndex(s, "@"); at >= 0 {
		r.Ref = s[at+1:]
		s = s[:at]
		if r.Ref == "" {
			return Ref{}, fmt.Errorf("%w: empty ref after @", ErrInvalidRef)
		}
	}

	parts := strings.SplitN(strings.Trim(s, "/"), "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Ref{}, fmt.Errorf("%w: %q", ErrInvalidRef, s)
	}
	r.Owner, r.Repo = parts[0], parts[1]
	if len(parts) == 3 {
		r.Path = strings.Trim(parts[2], "/")
	}
	return r, nil
}

func (r Ref) String() string {
	s := r.Owner + "/" + r.Repo
	if r.Path != "" {
		s += "/" + r.Path
	}
	if r.Ref != "" {
		s += "@" + r.Ref
	}
	return s
}
