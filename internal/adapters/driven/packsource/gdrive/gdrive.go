// Package gdrive fetches pack documents shared on Google Drive.
//
// A reference is a file or folder ID, or a share link containing one.
// Folders resolve to their schema file. Google Docs are exported as plain
// text so a schema can be edited in Docs directly.
package gdrive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driven"
	"github.com/custodia-labs/promptsmith/internal/logger"
	"github.com/custodia-labs/promptsmith/internal/schema"
)

// Scheme is the reference scheme handled by Fetcher.
const Scheme = "gdrive"

// Google Workspace MIME types.
const (
	MimeTypeGoogleDoc = "application/vnd.google-apps.document"
	MimeTypeFolder    = "application/vnd.google-apps.folder"
)

// MaxDocumentSize bounds a downloaded document (5MB).
const MaxDocumentSize = 5 * 1024 * 1024

const (
	requestsPerSecond = 8.0
	burstSize         = 10
	defaultBackoff    = 60 * time.Second
)

var (
	// ErrTooLarge indicates a document above MaxDocumentSize.
	ErrTooLarge = fmt.Errorf("gdrive: document too large: %w", domain.ErrInvalidInput)

	// ErrNoSchema indicates a folder without a schema file.
	ErrNoSchema = fmt.Errorf("gdrive: no schema file in folder: %w", domain.ErrNotFound)

	// ErrNotConfigured indicates a fetch without an API key.
	ErrNotConfigured = fmt.Errorf("gdrive: no API key configured (set gdrive.api_key): %w", domain.ErrInvalidInput)
)

var shareLink = regexp.MustCompile(`(?:/d/|/folders/|[?&]id=)([A-Za-z0-9_-]{10,})`)

// FileID extracts the file ID from a share link, or returns ref trimmed.
func FileID(ref string) string {
	ref = strings.TrimSpace(ref)
	if m := shareLink.FindStringSubmatch(ref); m != nil {
		return m[1]
	}
	return ref
}

// Fetcher downloads pack documents from Google Drive.
type Fetcher struct {
	svc *drive.Service

	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// Ensure Fetcher implements the interface.
var _ driven.PackFetcher = (*Fetcher)(nil)

// NewFetcher creates a fetcher authenticated with an API key, which reads
// files shared as "anyone with the link".
func NewFetcher(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Fetcher, error) {
	if apiKey == "" && len(opts) == 0 {
		return nil, ErrNotConfigured
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gdrive: create service: %w", err)
	}
	return &Fetcher{
		svc:     svc,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}, nil
}

// Scheme returns "gdrive".
func (f *Fetcher) Scheme() string { return Scheme }

// Fetch returns the document identified by ref.
func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	id := FileID(ref)
	if id == "" {
		return nil, fmt.Errorf("gdrive: empty reference: %w", domain.ErrInvalidInput)
	}

	file, err := f.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if file.MimeType == MimeTypeFolder {
		if file, err = f.schemaInFolder(ctx, file); err != nil {
			return nil, err
		}
	}
	if file.Size > MaxDocumentSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, file.Name, file.Size)
	}

	logger.Debug("gdrive: downloading %s (%s)", file.Name, file.Id)
	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	var resp *http.Response
	if file.MimeType == MimeTypeGoogleDoc {
		resp, err = f.svc.Files.Export(file.Id, "text/plain").Context(ctx).Download()
	} else {
		resp, err = f.svc.Files.Get(file.Id).SupportsAllDrives(true).Context(ctx).Download()
	}
	if err != nil {
		return nil, f.wrapError(err, "download")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("gdrive: read %s: %w", file.Name, err)
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, file.Name)
	}
	return data, nil
}

func (f *Fetcher) get(ctx context.Context, id string) (*drive.File, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	file, err := f.svc.Files.Get(id).
		Fields("id", "name", "mimeType", "size").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, f.wrapError(err, "get "+id)
	}
	return file, nil
}

func (f *Fetcher) schemaInFolder(ctx context.Context, folder *drive.File) (*drive.File, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	list, err := f.svc.Files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed = false", folder.Id)).
		Fields("files(id, name, mimeType, size)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, f.wrapError(err, "list "+folder.Id)
	}

	byName := make(map[string]*drive.File, len(list.Files))
	names := make([]string, 0, len(list.Files))
	for _, file := range list.Files {
		if file.MimeType == MimeTypeFolder {
			continue
		}
		byName[file.Name] = file
		names = append(names, file.Name)
	}
	name := schema.PickSchemaFile(names)
	if name == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoSchema, folder.Name)
	}
	return byName[name], nil
}

// wait blocks for the token bucket and any backoff after a 429.
func (f *Fetcher) wait(ctx context.Context) error {
	f.mu.Lock()
	retryAt := f.retryAt
	f.mu.Unlock()

	if d := time.Until(retryAt); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return f.limiter.Wait(ctx)
}

// wrapError maps Google API errors onto domain errors.
func (f *Fetcher) wrapError(err error, operation string) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("gdrive: %s: %w", operation, err)
	}

	switch {
	case gerr.Code == http.StatusNotFound:
		return fmt.Errorf("gdrive: %s: %w", operation, domain.ErrNotFound)
	case gerr.Code == http.StatusTooManyRequests || isRateLimitReason(gerr):
		f.mu.Lock()
		f.retryAt = time.Now().Add(defaultBackoff)
		f.mu.Unlock()
		return fmt.Errorf("gdrive: %s: %w", operation, domain.ErrRateLimited)
	default:
		return fmt.Errorf("gdrive: %s: %w", operation, err)
	}
}

func isRateLimitReason(gerr *googleapi.Error) bool {
	if gerr.Code != http.StatusForbidden {
		return false
	}
	for _, item := range gerr.Errors {
		if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
			return true
		}
	}
	return false
}
