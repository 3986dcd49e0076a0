package settings

import (
	"context"
	"regexp"
	"strings"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/schema"
)

// minSubmittedKeys is the smallest submitted bag treated as provided. Smaller
// bags only carry the widget id and type.
const minSubmittedKeys = 3

// dynamicKey holds the dynamic tag of every field bound to one.
const dynamicKey = "__dynamic__"

// Node is one element of a stored page document.
type Node struct {
	ID       string         `json:"id"`
	Settings map[string]any `json:"settings"`
	Elements []Node         `json:"elements"`
}

// DocumentLookup loads the element tree of a page.
type DocumentLookup interface {
	Document(ctx context.Context, pageID string) ([]Node, error)
}

// DocumentLookupFunc adapts a function to DocumentLookup.
type DocumentLookupFunc func(ctx context.Context, pageID string) ([]Node, error)

func (f DocumentLookupFunc) Document(ctx context.Context, pageID string) ([]Node, error) {
	return f(ctx, pageID)
}

// TagResolver expands a dynamic tag bound to field key. It reports false when
// the tag cannot be resolved.
type TagResolver interface {
	ResolveTag(ctx context.Context, key, tag string) (string, bool)
}

type TagResolverFunc func(ctx context.Context, key, tag string) (string, bool)

func (f TagResolverFunc) ResolveTag(ctx context.Context, key, tag string) (string, bool) {
	return f(ctx, key, tag)
}

// SplitChartID splits a combined chart id on its first underscore into the
// element id and the page id. Element ids containing underscores are not
// supported.
func SplitChartID(chartID string) (elementID, pageID string, ok bool) {
	i := strings.IndexByte(chartID, '_')
	if i <= 0 || i == len(chartID)-1 {
		return "", "", false
	}
	return chartID[:i], chartID[i+1:], true
}

// FindNode searches the tree depth first, parents before children.
func FindNode(nodes []Node, id string) *Node {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i]
		}
		if n := FindNode(nodes[i].Elements, id); n != nil {
			return n
		}
	}
	return nil
}

type Option func(*Resolver)

func WithDocumentLookup(l DocumentLookup) Option {
	return func(r *Resolver) {
		r.documents = l
	}
}

func WithTagResolver(t TagResolver) Option {
	return func(r *Resolver) {
		r.tags = t
	}
}

// Resolver builds settings bags from submitted values or stored documents.
type Resolver struct {
	documents DocumentLookup
	tags      TagResolver
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the settings of one widget. Submitted values with fewer
// than three keys fall back to the stored document of the page named by
// chartID. It returns nil when that fallback finds no element.
func (r *Resolver) Resolve(ctx context.Context, t catalog.ChartType, submitted map[string]any, chartID string) *Bag {
	return r.resolve(ctx, t, submitted, chartID, true)
}

// ResolvePublic is Resolve for callers without edit rights. Source fields are
// never read from submitted values: they come from the stored element, or
// keep their defaults when nothing is stored.
func (r *Resolver) ResolvePublic(ctx context.Context, t catalog.ChartType, submitted map[string]any, chartID string) *Bag {
	return r.resolve(ctx, t, submitted, chartID, false)
}

func (r *Resolver) resolve(ctx context.Context, t catalog.ChartType, submitted map[string]any, chartID string, trusted bool) *Bag {
	s := SchemaFor(t)
	raw := submitted
	if len(raw) < minSubmittedKeys {
		raw = r.stored(ctx, chartID)
		if raw == nil {
			return nil
		}
	} else if !trusted {
		raw = r.withStoredSources(ctx, s, raw, chartID)
	}

	values := make(map[string]any, len(raw))
	for k, v := range raw {
		if k == dynamicKey {
			continue
		}
		values[k] = v
	}
	r.resolveTags(ctx, s, raw, values)
	Sanitize(s, values)
	resetHidden(t, s, values)

	return NewBag(t, values)
}

// withStoredSources replaces the source fields of submitted, dynamic tag
// bindings included, with those of the stored element.
func (r *Resolver) withStoredSources(ctx context.Context, s *schema.Schema, submitted map[string]any, chartID string) map[string]any {
	isSource := func(key string) bool {
		f, ok := s.Field(key)
		return ok && f.Source
	}
	stored := r.stored(ctx, chartID)

	out := make(map[string]any, len(submitted))
	for k, v := range submitted {
		if k != dynamicKey && !isSource(k) {
			out[k] = v
		}
	}
	for k, v := range stored {
		if isSource(k) {
			out[k] = v
		}
	}

	bound := map[string]any{}
	if tags, ok := submitted[dynamicKey].(map[string]any); ok {
		for k, v := range tags {
			if !isSource(k) {
				bound[k] = v
			}
		}
	}
	if tags, ok := stored[dynamicKey].(map[string]any); ok {
		for k, v := range tags {
			if isSource(k) {
				bound[k] = v
			}
		}
	}
	out[dynamicKey] = bound
	return out
}

// resetHidden drops the value of every field whose visibility condition
// fails, so the bag reports its default. Conditions are evaluated once
// against the values as submitted.
func resetHidden(t catalog.ChartType, s *schema.Schema, values map[string]any) {
	view := NewBag(t, values)
	for _, f := range s.Fields {
		if f.VisibleWhen != nil && !f.Visible(view) {
			delete(values, f.Key)
		}
	}
}

func (r *Resolver) stored(ctx context.Context, chartID string) map[string]any {
	if r.documents == nil {
		return nil
	}
	elementID, pageID, ok := SplitChartID(chartID)
	if !ok {
		return nil
	}
	doc, err := r.documents.Document(ctx, pageID)
	if err != nil {
		return nil
	}
	node := FindNode(doc, elementID)
	if node == nil {
		return nil
	}
	if node.Settings == nil {
		return map[string]any{}
	}
	return node.Settings
}

var inlineTag = regexp.MustCompile(`\[elementor-tag [^\]]*\]`)

func (r *Resolver) resolveTags(ctx context.Context, s *schema.Schema, raw, values map[string]any) {
	if r.tags == nil {
		return
	}
	if bound, ok := raw[dynamicKey].(map[string]any); ok {
		for key, tag := range bound {
			f, ok := s.Field(key)
			if !ok || !f.Dynamic {
				continue
			}
			tagStr, _ := tag.(string)
			if v, ok := r.tags.ResolveTag(ctx, key, tagStr); ok {
				values[key] = v
			}
		}
	}
	for key, v := range values {
		str, ok := v.(string)
		if !ok || !strings.Contains(str, "[elementor-tag ") {
			continue
		}
		if f, ok := s.Field(key); !ok || !f.Dynamic {
			continue
		}
		values[key] = inlineTag.ReplaceAllStringFunc(str, func(tag string) string {
			if res, ok := r.tags.ResolveTag(ctx, key, tag); ok {
				return res
			}
			return ""
		})
	}
}
