package settings

import (
	"strings"

	"github.com/bingLAN/chart_driver/schema"
	strip "github.com/grokify/html-strip-tags-go"
)

// Sanitize rewrites string values in place: HTML fields are kept, URL
// fields are trimmed and script URLs dropped, everything else becomes plain
// text. Repeater rows are copied before they are cleaned.
func Sanitize(s *schema.Schema, values map[string]any) {
	for key, v := range values {
		f, ok := s.Field(key)
		if !ok {
			if str, ok := v.(string); ok {
				values[key] = PlainText(str)
			}
			continue
		}
		values[key] = sanitizeValue(f, v)
	}
}

func sanitizeValue(f schema.Field, v any) any {
	if f.Kind == schema.KindRepeater {
		rows := toRows("", v)
		if rows == nil {
			return v
		}
		sub := make(map[string]schema.Field, len(f.Fields))
		for _, sf := range f.Fields {
			sub[sf.Key] = sf
		}
		res := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			clean := make(map[string]any, len(row.values))
			for k, cell := range row.values {
				if sf, ok := sub[k]; ok {
					clean[k] = sanitizeValue(sf, cell)
				} else if str, ok := cell.(string); ok {
					clean[k] = PlainText(str)
				} else {
					clean[k] = cell
				}
			}
			res = append(res, clean)
		}
		return res
	}

	str, ok := v.(string)
	if !ok {
		return v
	}
	switch {
	case f.HTML:
		return str
	case f.Kind == schema.KindURL:
		return CleanURL(str)
	case f.Kind == schema.KindPassword:
		return str
	}
	return PlainText(str)
}

// PlainText strips markup and surrounding space.
func PlainText(s string) string {
	return strings.TrimSpace(strip.StripTags(s))
}

// CleanURL trims u and rejects script and data URLs.
func CleanURL(u string) string {
	u = strings.TrimSpace(u)
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "vbscript:") {
		return ""
	}
	return u
}
