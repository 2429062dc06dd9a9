package informal

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/goliatone/go-informal/pkg/dom"
	"github.com/goliatone/go-informal/pkg/markup"
	"github.com/goliatone/go-informal/pkg/model"
	"github.com/goliatone/go-informal/pkg/render"
	"github.com/goliatone/go-informal/pkg/submission"
	"github.com/goliatone/go-informal/pkg/validation"
	"github.com/goliatone/go-informal/pkg/value"
)

// ErrScopeNotFound is returned when WithScopeID names no element.
var ErrScopeNotFound = errors.New("informal: scope element not found")

// Form binds a validation engine to a parsed form tree. A Form is not safe
// for concurrent use.
type Form struct {
	doc     *html.Node
	root    *html.Node
	scopeID string

	engine   *validation.Engine
	attrs    markup.Attributes
	reporter *render.Reporter
	logger   zerolog.Logger

	defaults []value.State
}

// New wraps root, which may be a document, a <form> or any container. The
// current control state is captured as the default restored by Clear.
func New(root *html.Node, options ...Option) (*Form, error) {
	if root == nil {
		return nil, errors.New("informal: root node is nil")
	}
	f := &Form{
		doc:    root,
		root:   root,
		attrs:  markup.DefaultAttributes(),
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.scopeID != "" {
		scope := dom.FindByID(root, f.scopeID)
		if scope == nil {
			return nil, fmt.Errorf("%w: #%s", ErrScopeNotFound, f.scopeID)
		}
		f.root = scope
	}
	if f.engine == nil {
		f.engine = validation.Default()
	}
	if f.reporter == nil {
		reporter, err := render.NewReporter()
		if err != nil {
			return nil, err
		}
		f.reporter = reporter
	}
	f.defaults = value.SnapshotAll(dom.Controls(f.root))
	return f, nil
}

// Parse reads an HTML document and wraps it.
func Parse(r io.Reader, options ...Option) (*Form, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return nil, err
	}
	return New(doc, options...)
}

// Root returns the element the form operates on.
func (f *Form) Root() *html.Node { return f.root }

// Engine returns the validation engine in use.
func (f *Form) Engine() *validation.Engine { return f.engine }

// Fields describes every named control in document order. Radio members are
// listed individually.
func (f *Form) Fields() []model.Field {
	controls := dom.Controls(f.root)
	out := make([]model.Field, 0, len(controls))
	for _, node := range controls {
		out = append(out, f.attrs.Describe(node))
	}
	return out
}

// Bindings returns the logical controls, radios sharing a name folded into
// one group.
func (f *Form) Bindings() []value.Binding {
	return value.Bind(dom.Controls(f.root), f.attrs.Describe)
}

// Clear restores every control to the state captured by New and removes
// rendered errors.
func (f *Form) Clear() {
	for _, state := range f.defaults {
		state.Restore()
	}
	f.ClearErrors()
}

// Focus marks the first named control with autofocus and removes it from
// the others.
func (f *Form) Focus() {
	for i, node := range dom.Controls(f.root) {
		dom.ToggleAttr(node, "autofocus", i == 0)
	}
}

// ReportErrors renders errs, keyed by control name, into the tree.
func (f *Form) ReportErrors(errs map[string][]string) error {
	return f.reporter.Report(f.root, errs)
}

// ReportPayload maps a server side error payload onto the form's controls
// and renders it. Unmatched keys become form level messages.
func (f *Form) ReportPayload(payload map[string][]string) error {
	mapping := render.MapErrorPayload(f.Fields(), payload)
	if err := f.reporter.Report(f.root, mapping.Fields); err != nil {
		return err
	}
	return f.reporter.ReportForm(f.root, mapping.Form)
}

// ClearErrors removes rendered errors.
func (f *Form) ClearErrors() {
	f.reporter.Clear(f.root)
}

// Validate clears rendered errors and validates the current control values.
// The control set is read fresh on every call.
func (f *Form) Validate() (model.Result, error) {
	f.ClearErrors()
	return validate(f, f.Bindings(), "form validated")
}

// ValidateSubmission validates submitted values against the form's
// annotations. The tree is left untouched.
func (f *Form) ValidateSubmission(values url.Values) (model.Result, error) {
	return validate(f, submission.Bind(f.Fields(), values), "submission validated")
}

// ValidateRequest parses the request form and validates it.
func (f *Form) ValidateRequest(r *http.Request) (model.Result, error) {
	bound, err := submission.FromRequest(r, f.Fields())
	if err != nil {
		return model.Result{}, fmt.Errorf("informal: %w", err)
	}
	return validate(f, bound, "request validated")
}

func validate[C validation.Control](f *Form, bound []C, event string) (model.Result, error) {
	controls := make([]validation.Control, 0, len(bound))
	for _, control := range bound {
		controls = append(controls, control)
	}
	result, err := f.engine.Validate(controls)
	if err != nil {
		return model.Result{}, fmt.Errorf("informal: %w", err)
	}
	f.logger.Debug().Bool("valid", result.Valid).Int("fields", len(result.Values)).Msg(event)
	return result, nil
}

// Render writes the whole tree, including rendered errors.
func (f *Form) Render(w io.Writer) error {
	return dom.Render(w, f.doc)
}
