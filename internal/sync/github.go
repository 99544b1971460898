package sync

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mkbkakwk/mynav/internal/domain"
	"github.com/mkbkakwk/mynav/internal/logger"
	"github.com/mkbkakwk/mynav/internal/utils"
)

const (
	DefaultBaseURL  = "https://api.github.com"
	DefaultFilePath = "mynav-data.json"
	DefaultTimeout  = 10 * time.Second

	commitMessage = "chore: sync navigation data"
	maxBodySize   = 10 << 20
)

// ErrConflict is returned when the remote file moved under us: the SHA we
// sent no longer matches what the repository holds.
var ErrConflict = errors.New("sync: remote content changed since last read")

// ErrSkipped is returned when the push was not attempted at all (sync
// disabled, incomplete credentials, or a local-only deployment).
var ErrSkipped = errors.New("sync: push skipped")

// Document is the payload stored in the remote repository.
type Document struct {
	Sections   []domain.Section  `json:"sections"`
	Categories []domain.Category `json:"categories"`
	SavedAt    time.Time         `json:"savedAt"`
}

type Options struct {
	BaseURL    string
	FilePath   string
	Timeout    time.Duration
	PublicURL  string
	AllowLocal bool
	Client     *http.Client
}

type Client struct {
	baseURL    string
	filePath   string
	publicURL  string
	allowLocal bool
	client     *http.Client
	logger     logger.Logger
}

func NewClient(opts Options, log logger.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.FilePath == "" {
		opts.FilePath = DefaultFilePath
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		baseURL:    opts.BaseURL,
		filePath:   opts.FilePath,
		publicURL:  opts.PublicURL,
		allowLocal: opts.AllowLocal,
		client:     opts.Client,
		logger:     log,
	}
}

// contentsResponse is the subset of the GitHub contents API we care about.
type contentsResponse struct {
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

func (c *Client) contentsURL(settings domain.SyncSettings) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		c.baseURL,
		url.PathEscape(settings.Owner),
		url.PathEscape(settings.Repo),
		c.filePath,
	)
}

// Enabled reports whether a push or pull would actually reach the remote.
func (c *Client) Enabled(settings domain.SyncSettings) bool {
	if !settings.Enabled || !settings.Complete() {
		return false
	}
	if c.allowLocal {
		return true
	}
	return !isLocalURL(c.publicURL)
}

// Pull fetches the remote document. A missing file is not an error: it
// returns (nil, nil) so the caller can fall back to whatever it already has.
func (c *Client) Pull(ctx context.Context, settings domain.SyncSettings) (*Document, error) {
	if !c.Enabled(settings) {
		return nil, nil
	}

	raw, _, err := c.getContents(ctx, settings)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode remote document: %w", err)
	}

	c.logger.Info("pulled remote navigation data",
		logger.String("repo", settings.Owner+"/"+settings.Repo),
		logger.Int("sections", len(doc.Sections)),
	)

	return &doc, nil
}

// Push uploads the document, using the remote file's current SHA as a
// compare-and-swap token. If the repository rejects the SHA the push is
// abandoned with ErrConflict: the next push will re-read and win.
func (c *Client) Push(ctx context.Context, settings domain.SyncSettings, doc Document) error {
	if !c.Enabled(settings) {
		return ErrSkipped
	}

	_, sha, err := c.getContents(ctx, settings)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode sync document: %w", err)
	}

	body, err := json.Marshal(putRequest{
		Message: commitMessage,
		Content: base64.StdEncoding.EncodeToString(payload),
		SHA:     sha,
	})
	if err != nil {
		return fmt.Errorf("failed to encode contents request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(settings), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build contents request: %w", err)
	}
	c.setHeaders(req, settings)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to push to %s/%s: %w", settings.Owner, settings.Repo, err)
	}
	defer utils.Close(resp.Body)

	switch {
	case resp.StatusCode == http.StatusConflict, resp.StatusCode == http.StatusUnprocessableEntity:
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize)) //nolint:errcheck
		c.logger.Warn("remote rejected push, content changed since last read",
			logger.String("repo", settings.Owner+"/"+settings.Repo),
			logger.Int("status", resp.StatusCode),
		)
		return ErrConflict
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize)) //nolint:errcheck
		c.logger.Info("pushed navigation data",
			logger.String("repo", settings.Owner+"/"+settings.Repo),
			logger.Int("sections", len(doc.Sections)),
		)
		return nil
	default:
		return fmt.Errorf("unexpected status %d pushing to %s/%s", resp.StatusCode, settings.Owner, settings.Repo)
	}
}

// getContents returns the decoded file body and its SHA. A 404 yields
// ("", nil, nil): the file does not exist yet and the next PUT creates it.
func (c *Client) getContents(ctx context.Context, settings domain.SyncSettings) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.contentsURL(settings), nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build contents request: %w", err)
	}
	c.setHeaders(req, settings)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s/%s: %w", settings.Owner, settings.Repo, err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("unexpected status %d reading %s/%s", resp.StatusCode, settings.Owner, settings.Repo)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read contents response: %w", err)
	}

	var contents contentsResponse
	if err := json.Unmarshal(data, &contents); err != nil {
		return nil, "", fmt.Errorf("failed to decode contents response: %w", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(stripNewlines(contents.Content))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode file content: %w", err)
	}

	return decoded, contents.SHA, nil
}

func (c *Client) setHeaders(req *http.Request, settings domain.SyncSettings) {
	req.Header.Set("Authorization", "Bearer "+settings.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
}

// The contents API wraps base64 at 60 columns.
func stripNewlines(s string) string {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			continue
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}

func isLocalURL(raw string) bool {
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return true
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
