// Package schema resolves loru JSON schema documents to local files, fetching them over HTTP.
package schema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	httpClientTimeout = 30 * time.Second
	maxSchemaSize     = 4 << 20
)

// Fetcher implements ports.SchemaFetcher with an on-disk cache.
//
// Pinned versions are served from the cache once downloaded. The "latest" version
// is refetched on every call and only falls back to the cache when the download fails.
type Fetcher struct {
	baseURL    string
	cacheDir   string
	httpClient *http.Client

	// authHost receives authToken; other hosts never see it.
	authHost  string
	authToken string
}

// NewFetcher creates a Fetcher downloading from baseURL into cacheDir/schemas.
func NewFetcher(baseURL, cacheDir string) *Fetcher {
	return &Fetcher{
		baseURL:  strings.TrimRight(baseURL, "/"),
		cacheDir: filepath.Join(filepath.Clean(cacheDir), domain.SchemaCacheDirName),
		httpClient: &http.Client{
			Timeout:   httpClientTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// WithHTTPClient replaces the HTTP client.
func (f *Fetcher) WithHTTPClient(client *http.Client) *Fetcher {
	f.httpClient = client
	return f
}

// WithAuth sends token as a bearer credential to requests for host.
// The upstream schemas live in a private repository served by raw.githubusercontent.com.
func (f *Fetcher) WithAuth(host, token string) *Fetcher {
	f.authHost = host
	f.authToken = token
	return f
}

// Fetch returns the local path of the requested schema.
func (f *Fetcher) Fetch(ctx context.Context, req domain.SchemaRequest) (string, error) {
	version := req.Version
	if version == "" {
		version = domain.SchemaLatest
	}

	if f.baseURL == "" {
		err := zerr.With(zerr.Wrap(domain.ErrSchemaSourceUnset, "set schema_url or LORU_SCHEMA_URL"), "schema", req.Schema)
		return "", zerr.With(err, "config", req.MetaFile)
	}

	url := f.baseURL + "/" + req.Schema + "/" + version + ".json"
	cachePath := f.cachePath(req.Schema, version, url)

	if version != domain.SchemaLatest && isFile(cachePath) {
		return cachePath, nil
	}

	data, err := f.download(ctx, url)
	if err != nil {
		if isFile(cachePath) {
			return cachePath, nil
		}
		return "", zerr.With(err, "config", req.MetaFile)
	}

	if err := writeAtomic(cachePath, data); err != nil {
		return "", zerr.With(errors.Join(domain.ErrSchemaCacheFailed, err), "path", cachePath)
	}
	return cachePath, nil
}

// cachePath keys the entry by the source URL so different schema hosts never collide.
func (f *Fetcher) cachePath(schema, version, url string) string {
	key := strconv.FormatUint(xxhash.Sum64String(url), 16)
	return filepath.Join(f.cacheDir, schema, version+"-"+key+".json")
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrSchemaFetchFailed, err), "url", url)
	}
	req.Header.Set("Accept", "application/schema+json, application/json")
	if f.authToken != "" && req.URL.Host == f.authHost {
		req.Header.Set("Authorization", "Bearer "+f.authToken)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrSchemaFetchFailed, err), "url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		err := zerr.Wrap(domain.ErrSchemaFetchFailed, fmt.Sprintf("unexpected status %d", resp.StatusCode))
		return nil, zerr.With(err, "url", url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSchemaSize+1))
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrSchemaFetchFailed, err), "url", url)
	}
	if len(data) > maxSchemaSize {
		return nil, zerr.With(zerr.Wrap(domain.ErrSchemaFetchFailed, "schema document too large"), "url", url)
	}
	if !gjson.ValidBytes(data) {
		return nil, zerr.With(zerr.Wrap(domain.ErrSchemaFetchFailed, "response is not valid JSON"), "url", url)
	}

	return data, nil
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".schema-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
