package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rpupo63/zenith-portfolio/errs"
	"github.com/rpupo63/zenith-portfolio/metrics"
	"github.com/rpupo63/zenith-portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultDataset    = "production"
	DefaultAPIVersion = "2023-10-01"
	DefaultAssetHost  = "https://cdn.sanity.io"

	maxResponseBytes = 10 << 20
)

// Options configures a Client. ProjectID is required; everything else has a default.
type Options struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	UseCDN     bool
	Token      string
	// Host overrides https://<projectId>.api.sanity.io (or apicdn when UseCDN is set).
	Host       string
	AssetHost  string
	HTTPClient *http.Client
	Metrics    *metrics.Metrics
}

// Client runs read-only GROQ queries against the content store's HTTP query API.
type Client struct {
	projectID  string
	dataset    string
	apiVersion string
	token      string
	host       string
	assetHost  string
	httpClient *http.Client
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewClient creates a content client. Fetch errors out with a config error when ProjectID is empty.
func NewClient(opts Options) *Client {
	c := &Client{
		projectID:  strings.TrimSpace(opts.ProjectID),
		dataset:    opts.Dataset,
		apiVersion: strings.TrimPrefix(opts.APIVersion, "v"),
		token:      opts.Token,
		host:       strings.TrimSuffix(opts.Host, "/"),
		assetHost:  strings.TrimSuffix(opts.AssetHost, "/"),
		httpClient: opts.HTTPClient,
		metrics:    opts.Metrics,
		logger:     log.With().Str("component", "contentClient").Logger(),
	}

	if c.dataset == "" {
		c.dataset = DefaultDataset
	}
	if c.apiVersion == "" {
		c.apiVersion = DefaultAPIVersion
	}
	if c.assetHost == "" {
		c.assetHost = DefaultAssetHost
	}
	if c.host == "" && c.projectID != "" {
		subdomain := "api"
		if opts.UseCDN {
			subdomain = "apicdn"
		}
		c.host = fmt.Sprintf("https://%s.%s.sanity.io", c.projectID, subdomain)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return c
}

type queryEnvelope struct {
	Result json.RawMessage `json:"result"`
	Error  *storeError     `json:"error"`
}

type storeError struct {
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Fetch runs q with params bound as $name and decodes the result into out.
// A null result leaves out untouched. tags are recorded on any collector carried by ctx.
func (c *Client) Fetch(ctx context.Context, q Query, params Params, tags []string, out any) error {
	recordTags(ctx, tags)

	start := time.Now()
	err := c.fetch(ctx, q, params, out)
	elapsed := time.Since(start)

	if err != nil {
		kind, _ := errs.FetchKindOf(err)
		c.metrics.ObserveContentFetch(q.Name, string(kind), elapsed)
		c.logger.Warn().Err(err).Str("query", q.Name).Dur("elapsed", elapsed).Msg("content fetch failed")
		return err
	}

	c.metrics.ObserveContentFetch(q.Name, "ok", elapsed)
	c.logger.Debug().Str("query", q.Name).Dur("elapsed", elapsed).Msg("content fetched")
	return nil
}

func (c *Client) fetch(ctx context.Context, q Query, params Params, out any) error {
	if c.host == "" {
		return errs.NewContentFetchError(q.Name, errs.FetchStore, 0, errs.NewConfigMissingError("SANITY_PROJECT_ID"))
	}

	values := url.Values{}
	values.Set("query", q.GROQ)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return errs.NewContentFetchError(q.Name, errs.FetchMalformed, 0, fmt.Errorf("encode param %s: %w", name, err))
		}
		values.Set("$"+name, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/v%s/data/query/%s?%s", c.host, c.apiVersion, url.PathEscape(c.dataset), values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errs.NewContentFetchError(q.Name, errs.FetchNetwork, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewContentFetchError(q.Name, errs.FetchNetwork, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errs.NewContentFetchError(q.Name, errs.FetchNetwork, resp.StatusCode, err)
	}

	var envelope queryEnvelope
	decodeErr := json.Unmarshal(body, &envelope)

	if resp.StatusCode >= http.StatusBadRequest {
		return errs.NewContentFetchError(q.Name, errs.FetchStore, resp.StatusCode, storeErrorCause(envelope, decodeErr, body))
	}
	if decodeErr != nil {
		return errs.NewContentFetchError(q.Name, errs.FetchMalformed, resp.StatusCode, decodeErr)
	}
	if envelope.Error != nil {
		return errs.NewContentFetchError(q.Name, errs.FetchStore, resp.StatusCode, storeErrorCause(envelope, nil, body))
	}

	if out == nil || len(envelope.Result) == 0 || bytes.Equal(envelope.Result, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return errs.NewContentFetchError(q.Name, errs.FetchMalformed, resp.StatusCode, err)
	}
	return nil
}

func storeErrorCause(envelope queryEnvelope, decodeErr error, body []byte) error {
	if decodeErr == nil && envelope.Error != nil {
		if envelope.Error.Type != "" {
			return fmt.Errorf("%s: %s", envelope.Error.Type, envelope.Error.Description)
		}
		return errors.New(envelope.Error.Description)
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		msg = "empty response"
	}
	return errors.New(msg)
}

// ImageURL builds a CDN URL for an image asset, optionally sized. It returns "" for a missing image.
func (c *Client) ImageURL(ref *models.ImageRef, width, height int) string {
	if ref.IsZero() {
		return ""
	}

	// image-<id>-<width>x<height>-<format>
	id := strings.TrimPrefix(ref.Asset.Ref, "image-")
	parts := strings.Split(id, "-")
	filename := id
	if len(parts) >= 3 {
		format := parts[len(parts)-1]
		dims := parts[len(parts)-2]
		filename = strings.Join(parts[:len(parts)-2], "-") + "-" + dims + "." + format
	}

	u := fmt.Sprintf("%s/images/%s/%s/%s", c.assetHost, c.projectID, c.dataset, filename)

	var query []string
	if width > 0 {
		query = append(query, "w="+strconv.Itoa(width))
	}
	if height > 0 {
		query = append(query, "h="+strconv.Itoa(height))
	}
	if len(query) > 0 {
		u += "?" + strings.Join(query, "&")
	}
	return u
}

// FileURL builds a CDN URL for a file asset such as the CV. It returns "" for a missing file.
func (c *Client) FileURL(ref *models.FileRef) string {
	if ref.IsZero() {
		return ""
	}

	// file-<id>-<extension>
	id := strings.TrimPrefix(ref.Asset.Ref, "file-")
	if i := strings.LastIndex(id, "-"); i > 0 {
		id = id[:i] + "." + id[i+1:]
	}
	return fmt.Sprintf("%s/files/%s/%s/%s", c.assetHost, c.projectID, c.dataset, id)
}
