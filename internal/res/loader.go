package res

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/gompdf/invoicepdf/pkg/api"
	"github.com/gompdf/invoicepdf/pkg/invoice"
)

// maxRecordSize bounds the size of a single invoice record
const maxRecordSize = 4 << 20

// Loader looks invoice records up by id. Records are JSON documents named
// <id>.json in the search paths, or served at <BaseURL>/<id> when the base
// is an http(s) URL. Decoded records are cached; a Loader is safe for
// concurrent use.
type Loader struct {
	// Base URL or directory for resolving record ids
	BaseURL string

	// Decoded record cache
	cache     map[string]*invoice.Invoice
	cacheLock sync.RWMutex

	// Local record directories, tried in order after BaseURL
	searchPaths []string

	// HTTP client for remote records
	client *http.Client

	log *zap.Logger
}

var _ api.Source = (*Loader)(nil)

// NewLoader creates a new record loader
func NewLoader(baseURL string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		BaseURL:     baseURL,
		cache:       make(map[string]*invoice.Invoice),
		searchPaths: []string{},
		client:      &http.Client{},
		log:         log,
	}
}

// SetHTTPClient replaces the client used for remote records
func (l *Loader) SetHTTPClient(client *http.Client) {
	l.client = client
}

// AddSearchPath adds a directory to search for local records
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// Invoice returns the record for id. A missing record yields an error
// matching api.ErrInvoiceNotFound.
func (l *Loader) Invoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: invalid id %q", api.ErrInvoiceNotFound, id)
	}

	l.cacheLock.RLock()
	if inv, ok := l.cache[id]; ok {
		l.cacheLock.RUnlock()
		return inv, nil
	}
	l.cacheLock.RUnlock()

	var (
		data []byte
		err  error
	)
	if isRemote(l.BaseURL) {
		data, err = l.loadRemote(ctx, id)
	} else {
		data, err = l.loadLocal(id)
	}
	if err != nil {
		return nil, err
	}

	inv, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", id, err)
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: %s", api.ErrInvoiceNotFound, id)
	}

	l.cacheLock.Lock()
	l.cache[id] = inv
	l.cacheLock.Unlock()

	l.log.Debug("invoice loaded", zap.String("id", id), zap.Int("items", len(inv.Items)))
	return inv, nil
}

// validID rejects ids that could escape the record directories
func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}

func isRemote(base string) bool {
	return strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://")
}

// loadRemote fetches a record from the HTTP endpoint
func (l *Loader) loadRemote(ctx context.Context, id string) ([]byte, error) {
	base, err := url.Parse(l.BaseURL)
	if err != nil {
		return nil, err
	}
	u := base.JoinPath(id).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", api.ErrInvoiceNotFound, id)
	default:
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxRecordSize))
}

// loadLocal reads <id>.json from the base directory or the search paths
func (l *Loader) loadLocal(id string) ([]byte, error) {
	dirs := l.searchPaths
	if l.BaseURL != "" {
		dirs = append([]string{l.BaseURL}, dirs...)
	}

	name := id + ".json"
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %s", api.ErrInvoiceNotFound, id)
}

// decode parses a record. A JSON null decodes to no record.
func decode(data []byte) (*invoice.Invoice, error) {
	var inv *invoice.Invoice
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return inv, nil
}
