package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrOperationNotFound is returned when an operation id is not declared.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// Option configures a Loader.
type Option func(*Loader)

// WithFileSystem resolves SourceKindFS sources against fsys.
func WithFileSystem(fsys fs.FS) Option {
	return func(l *Loader) { l.fs = fsys }
}

// WithHTTPClient enables SourceKindURL sources.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) { l.http = client }
}

// WithValidation toggles document validation after loading. Enabled by
// default.
func WithValidation(enabled bool) Option {
	return func(l *Loader) { l.validate = enabled }
}

// Loader reads and parses OpenAPI documents.
type Loader struct {
	fs       fs.FS
	http     *http.Client
	validate bool
}

// NewLoader constructs a Loader. HTTP sources are disabled unless a client
// is supplied.
func NewLoader(options ...Option) *Loader {
	l := &Loader{validate: true}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Document is a parsed OpenAPI description.
type Document struct {
	source Source
	spec   *openapi3.T
	ops    map[string]operation
}

type operation struct {
	method string
	path   string
	op     *openapi3.Operation
}

// Load fetches src and parses it.
func (l *Loader) Load(ctx context.Context, src Source) (*Document, error) {
	if src == nil {
		return nil, errors.New("openapi: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if l.fs == nil {
			return nil, errors.New("openapi: no file system configured")
		}
		data, err = fs.ReadFile(l.fs, src.Location())
	case SourceKindURL:
		data, err = l.fetch(ctx, src.Location())
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", src.Location(), err)
	}

	return l.parse(ctx, data, src)
}

// LoadData parses an in-memory document. name identifies it in errors.
func (l *Loader) LoadData(ctx context.Context, data []byte, name string) (*Document, error) {
	return l.parse(ctx, data, source{kind: SourceKindFile, location: name})
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if l.http == nil {
		return nil, errors.New("http support disabled")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (l *Loader) parse(ctx context.Context, data []byte, src Source) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("openapi: document %s is empty", src.Location())
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", src.Location(), err)
	}
	if l.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate %s: %w", src.Location(), err)
		}
	}

	doc := &Document{source: src, spec: spec, ops: make(map[string]operation)}
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				if op == nil {
					continue
				}
				id := operationID(method, path, op)
				doc.ops[id] = operation{method: strings.ToUpper(method), path: path, op: op}
			}
		}
	}
	return doc, nil
}

func operationID(method, path string, op *openapi3.Operation) string {
	if id := strings.TrimSpace(op.OperationID); id != "" {
		return id
	}
	return strings.ToLower(method) + ":" + path
}

// Source returns where the document was read from.
func (d *Document) Source() Source { return d.source }

// Operations returns the operation ids in sorted order. Operations without
// an operationId are keyed "method:path".
func (d *Document) Operations() []string {
	ids := make([]string, 0, len(d.ops))
	for id := range d.ops {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Endpoint returns the HTTP method and path of operation id.
func (d *Document) Endpoint(id string) (method, path string, err error) {
	op, ok := d.ops[id]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrOperationNotFound, id)
	}
	return op.method, op.path, nil
}
