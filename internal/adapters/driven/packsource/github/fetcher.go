package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/promptsmith/internal/core/ports/driven"
	"github.com/custodia-labs/promptsmith/internal/logger"
	"github.com/custodia-labs/promptsmith/internal/schema"
)

const (
	// Scheme is the reference scheme handled by Fetcher.
	Scheme = "github"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// maxInlineSize is the largest file the contents API returns inline.
	maxInlineSize = 1024 * 1024
)

// Options configures a Fetcher.
type Options struct {
	// Token authenticates requests. Empty fetches anonymously.
	Token string

	// BaseURL overrides the API endpoint, e.g. for GitHub Enterprise.
	BaseURL string

	// HTTPClient replaces the default client. Token is ignored when set.
	HTTPClient *http.Client

	// RequestsPerSecond overrides ProactiveRate.
	RequestsPerSecond float64
}

// Fetcher reads pack documents from GitHub.
type Fetcher struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

// Ensure Fetcher implements the interface.
var _ driven.PackFetcher = (*Fetcher)(nil)

// NewFetcher creates a GitHub fetcher.
func NewFetcher(ctx context.Context, opts Options) (*Fetcher, error) {
	hc := opts.HTTPClient
	limit := AnonymousLimit
	if hc == nil {
		if opts.Token != "" {
			ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
			hc = oauth2.NewClient(ctx, ts)
			limit = AuthenticatedLimit
		} else {
			hc = &http.Client{}
		}
		hc.Timeout = DefaultTimeout
	} else if opts.Token != "" {
		limit = AuthenticatedLimit
	}

	client := gh.NewClient(hc)
	if opts.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("github: parse base URL: %w", err)
		}
		client.BaseURL = base
	}

	perSecond := opts.RequestsPerSecond
	if perSecond <= 0 {
		perSecond = ProactiveRate
	}

	return &Fetcher{
		gh:          client,
		rateLimiter: NewRateLimiter(limit, perSecond),
	}, nil
}

// Scheme returns "github".
func (f *Fetcher) Scheme() string { return Scheme }

// RateLimiter returns the rate limiter for external access.
func (f *Fetcher) RateLimiter() *RateLimiter { return f.rateLimiter }

// Fetch returns the document at ref, an "owner/repo[/path][@ref]" string.
func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	r, err := ParseRef(ref)
	if err != nil {
		return nil, err
	}

	file, dir, err := f.contents(ctx, r, r.Path)
	if err != nil {
		return nil, err
	}

	if file == nil {
		names := make([]string, 0, len(dir))
		for _, entry := range dir {
			if entry.GetType() == "file" {
				names = append(names, entry.GetName())
			}
		}
		name := schema.PickSchemaFile(names)
		if name == "" {
			return nil, fmt.Errorf("%w: %s", ErrNoSchema, r)
		}
		p := name
		if r.Path != "" {
			p = r.Path + "/" + name
		}
		logger.Debug("github: %s resolved to %s", r, p)
		if file, _, err = f.contents(ctx, r, p); err != nil {
			return nil, err
		}
		if file == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoSchema, r)
		}
	}

	if file.GetSize() > maxInlineSize || file.GetEncoding() == "none" {
		return f.download(ctx, r, file.GetPath())
	}
	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("github: decode %s: %w", file.GetPath(), err)
	}
	return []byte(content), nil
}

func (f *Fetcher) contents(
	ctx context.Context, r Ref, path string,
) (*gh.RepositoryContent, []*gh.RepositoryContent, error) {
	if err := f.rateLimiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentGetOptions{Ref: r.Ref}
	file, dir, resp, err := f.gh.Repositories.GetContents(ctx, r.Owner, r.Repo, path, opts)
	f.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, nil, f.wrapError(err, "get contents")
	}
	return file, dir, nil
}

func (f *Fetcher) download(ctx context.Context, r Ref, path string) ([]byte, error) {
	if err := f.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentGetOptions{Ref: r.Ref}
	rc, resp, err := f.gh.Repositories.DownloadContents(ctx, r.Owner, r.Repo, path, opts)
	f.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, f.wrapError(err, "download contents")
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("github: read %s: %w", path, err)
	}
	return data, nil
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (f *Fetcher) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	f.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (f *Fetcher) wrapError(err error, operation string) error {
	var rateLimitErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &rateLimitErr) || errors.As(err, &abuseErr) {
		return &RateLimitError{
			ResetAt:   f.rateLimiter.ResetTime(),
			Remaining: f.rateLimiter.Remaining(),
			Limit:     f.rateLimiter.Limit(),
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("github: %s: %w", operation, err)
}
