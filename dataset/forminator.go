package dataset

import (
	"context"
	"net/url"
	"strings"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
)

// FormEntries loads the submissions of a form as records.
type FormEntries interface {
	Entries(ctx context.Context, formID string) ([]map[string]interface{}, error)
}

// HTTPFormEntries reads submissions from {BaseURL}/forms/{id}/entries.
type HTTPFormEntries struct {
	BaseURL string
	Fetcher *Fetcher
}

func (h HTTPFormEntries) Entries(ctx context.Context, formID string) ([]map[string]interface{}, error) {
	if h.BaseURL == "" {
		return nil, ErrEmptySource
	}
	u := strings.TrimSuffix(h.BaseURL, "/") + "/forms/" + url.PathEscape(formID) + "/entries"
	data, err := h.Fetcher.Get(ctx, u)
	if err != nil {
		return nil, err
	}
	var entries []map[string]interface{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, ErrBadFormat
	}
	return entries, nil
}

// ForminatorProvider charts form submissions.
type ForminatorProvider struct {
	entries FormEntries
}

func NewForminatorProvider(e FormEntries) *ForminatorProvider {
	return &ForminatorProvider{entries: e}
}

func (p *ForminatorProvider) Name() string {
	return catalog.DataForminator
}

func (p *ForminatorProvider) Fetch(ctx context.Context, req Request) (*common.Table, error) {
	bag := req.Settings
	form := bag.Str("chart_forminator_form")
	if form == "" || p.entries == nil {
		return nil, ErrEmptySource
	}
	entries, err := p.entries.Entries(ctx, form)
	if err != nil {
		return nil, err
	}
	list := make([]interface{}, len(entries))
	for i, e := range entries {
		list[i] = e
	}
	table, err := recordsTable(list)
	if err != nil {
		return nil, err
	}
	return projectXY(table, bag.Str("chart_sql_builder_x_columns"), bag.Str("chart_sql_builder_y_columns"))
}
