package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-informal/pkg/dom"
)

// Defaults for the error chrome.
const (
	DefaultContainerClass  = "form-group"
	DefaultErrorClass      = "has-error"
	DefaultBlockClass      = "help-block"
	DefaultFormErrorsClass = "form-errors"
	DefaultBlockTemplate   = `<div class="{{ class }}">{{ message }}</div>`

	// MarkerAttr tags every node inserted by a Reporter so Clear removes only
	// what it added.
	MarkerAttr = "data-informal-error"

	// InvalidAttr records on a reported control the aria-invalid value it
	// carried before, so Clear can restore it.
	InvalidAttr = "data-informal-invalid"
)

// Theme token keys read by WithTheme.
const (
	TokenContainerClass  = "error-container"
	TokenErrorClass      = "error-class"
	TokenBlockClass      = "error-block"
	TokenFormErrorsClass = "form-errors"
	TokenBlockTemplate   = "error-template"
)

// Option configures a Reporter.
type Option func(*config)

type config struct {
	containerClass  string
	errorClass      string
	blockClass      string
	formErrorsClass string
	template        string
	policy          *bluemonday.Policy
}

// WithContainerClass sets the class of the element receiving the error class.
func WithContainerClass(class string) Option {
	return func(cfg *config) { setIfPresent(&cfg.containerClass, class) }
}

// WithErrorClass sets the class toggled on containers with errors.
func WithErrorClass(class string) Option {
	return func(cfg *config) { setIfPresent(&cfg.errorClass, class) }
}

// WithBlockClass sets the class of inserted message blocks.
func WithBlockClass(class string) Option {
	return func(cfg *config) { setIfPresent(&cfg.blockClass, class) }
}

// WithFormErrorsClass sets the class of the form-level message container.
func WithFormErrorsClass(class string) Option {
	return func(cfg *config) { setIfPresent(&cfg.formErrorsClass, class) }
}

// WithBlockTemplate overrides the pongo2 template used per message. The
// template receives message (sanitised, safe), field and class.
func WithBlockTemplate(src string) Option {
	return func(cfg *config) { setIfPresent(&cfg.template, src) }
}

// WithPolicy overrides the sanitiser applied to messages. The default strips
// every tag.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithTheme reads class names and the block template from theme tokens.
func WithTheme(rc *theme.RendererConfig) Option {
	return func(cfg *config) {
		if rc == nil || len(rc.Tokens) == 0 {
			return
		}
		setIfPresent(&cfg.containerClass, rc.Tokens[TokenContainerClass])
		setIfPresent(&cfg.errorClass, rc.Tokens[TokenErrorClass])
		setIfPresent(&cfg.blockClass, rc.Tokens[TokenBlockClass])
		setIfPresent(&cfg.formErrorsClass, rc.Tokens[TokenFormErrorsClass])
		setIfPresent(&cfg.template, rc.Tokens[TokenBlockTemplate])
	}
}

func setIfPresent(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}

// Reporter renders and clears error chrome on a parsed tree.
type Reporter struct {
	containerClass  string
	errorClass      string
	blockClass      string
	formErrorsClass string
	template        *pongo2.Template
	policy          *bluemonday.Policy
}

// NewReporter compiles the block template and applies options.
func NewReporter(options ...Option) (*Reporter, error) {
	cfg := &config{
		containerClass:  DefaultContainerClass,
		errorClass:      DefaultErrorClass,
		blockClass:      DefaultBlockClass,
		formErrorsClass: DefaultFormErrorsClass,
		template:        DefaultBlockTemplate,
	}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.policy == nil {
		cfg.policy = bluemonday.StrictPolicy()
	}

	tpl, err := pongo2.FromString(cfg.template)
	if err != nil {
		return nil, fmt.Errorf("render: compile block template: %w", err)
	}

	return &Reporter{
		containerClass:  cfg.containerClass,
		errorClass:      cfg.errorClass,
		blockClass:      cfg.blockClass,
		formErrorsClass: cfg.formErrorsClass,
		template:        tpl,
		policy:          cfg.policy,
	}, nil
}

// MustNewReporter panics if the reporter cannot be built.
func MustNewReporter(options ...Option) *Reporter {
	r, err := NewReporter(options...)
	if err != nil {
		panic(err)
	}
	return r
}

// Report clears previous errors, then renders errs keyed by control name.
// Names without a matching control are reported at form level so messages
// are not lost. Fields are processed in sorted order.
func (r *Reporter) Report(root *html.Node, errs map[string][]string) error {
	r.Clear(root)

	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)

	var orphans []string
	for _, name := range names {
		messages := normalizeMessages(errs[name])
		if len(messages) == 0 {
			continue
		}
		input := dom.Named(root, name)
		if input == nil {
			orphans = append(orphans, messages...)
			continue
		}
		if err := r.reportField(input, name, messages); err != nil {
			return err
		}
	}

	if len(orphans) > 0 {
		return r.reportForm(root, orphans)
	}
	return nil
}

// ReportForm renders form-level messages at the top of the form.
func (r *Reporter) ReportForm(root *html.Node, messages []string) error {
	messages = normalizeMessages(messages)
	if len(messages) == 0 {
		return nil
	}
	return r.reportForm(root, messages)
}

func (r *Reporter) reportField(input *html.Node, name string, messages []string) error {
	if container := dom.Closest(input, func(n *html.Node) bool { return dom.HasClass(n, r.containerClass) }); container != nil {
		dom.AddClass(container, r.errorClass)
	}
	if !dom.HasAttr(input, InvalidAttr) {
		dom.SetAttr(input, InvalidAttr, dom.AttrOr(input, "aria-invalid", ""))
	}
	dom.SetAttr(input, "aria-invalid", "true")

	anchor := input
	for _, message := range messages {
		block, err := r.block(name, message)
		if err != nil {
			return err
		}
		dom.InsertAfter(anchor, block)
		anchor = block
	}
	return nil
}

func (r *Reporter) reportForm(root *html.Node, messages []string) error {
	target := dom.FindForm(root)
	if target == nil {
		target = root
	}
	wrapper := dom.Element("div", "class", r.formErrorsClass+" "+r.errorClass, MarkerAttr, "")
	for _, message := range messages {
		block, err := r.block("", message)
		if err != nil {
			return err
		}
		wrapper.AppendChild(block)
	}
	target.InsertBefore(wrapper, target.FirstChild)
	return nil
}

func (r *Reporter) block(field, message string) (*html.Node, error) {
	out, err := r.template.Execute(pongo2.Context{
		"message": pongo2.AsSafeValue(r.policy.Sanitize(message)),
		"field":   field,
		"class":   r.blockClass,
	})
	if err != nil {
		return nil, fmt.Errorf("render: execute block template: %w", err)
	}

	parent := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(out), parent)
	if err != nil {
		return nil, fmt.Errorf("render: parse block markup: %w", err)
	}

	var kept []*html.Node
	for _, node := range nodes {
		if node.Type == html.TextNode && strings.TrimSpace(node.Data) == "" {
			continue
		}
		kept = append(kept, node)
	}

	var block *html.Node
	if len(kept) == 1 && kept[0].Type == html.ElementNode {
		block = kept[0]
	} else {
		block = dom.Element("div", "class", r.blockClass)
		for _, node := range kept {
			block.AppendChild(node)
		}
	}
	dom.SetAttr(block, MarkerAttr, "")
	return block, nil
}

// Clear removes every node a Reporter inserted, the error class and the
// aria-invalid values it set, restoring any the control carried before.
func (r *Reporter) Clear(root *html.Node) {
	for _, node := range dom.FindAll(root, func(n *html.Node) bool { return dom.HasAttr(n, MarkerAttr) }) {
		dom.Remove(node)
	}
	for _, node := range dom.FindAll(root, func(n *html.Node) bool { return dom.HasClass(n, r.errorClass) }) {
		dom.RemoveClass(node, r.errorClass)
	}
	for _, node := range dom.FindAll(root, func(n *html.Node) bool { return dom.HasAttr(n, InvalidAttr) }) {
		prior := dom.AttrOr(node, InvalidAttr, "")
		dom.RemoveAttr(node, InvalidAttr)
		if prior == "" {
			dom.RemoveAttr(node, "aria-invalid")
			continue
		}
		dom.SetAttr(node, "aria-invalid", prior)
	}
}
