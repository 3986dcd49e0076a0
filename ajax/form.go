package ajax

import (
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/bingLAN/chart_driver/common"
)

const maxForm = 8 << 20

// Form is a decoded request. Bracketed form keys such as
// fields[values][0][label] become nested maps.
type Form map[string]any

func (f Form) Str(key string) string {
	return strings.TrimSpace(common.CellString(f[key]))
}

// Map returns a nested object, decoding JSON text when the client sent one.
func (f Form) Map(key string) map[string]any {
	switch v := f[key].(type) {
	case map[string]any:
		return v
	case string:
		var m map[string]any
		if strings.HasPrefix(strings.TrimSpace(v), "{") && json.Unmarshal([]byte(v), &m) == nil {
			return m
		}
	}
	return nil
}

// Without returns a copy of f without keys.
func (f Form) Without(keys ...string) map[string]any {
	res := make(map[string]any, len(f))
	for k, v := range f {
		res[k] = v
	}
	for _, k := range keys {
		delete(res, k)
	}
	return res
}

// ParseForm decodes a JSON body or url encoded form values.
func ParseForm(w http.ResponseWriter, r *http.Request) (Form, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		form := Form{}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxForm)).Decode(&form); err != nil {
			return nil, err
		}
		return form, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxForm)
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return Nested(r.Form), nil
}

// Nested folds bracketed keys into nested maps. "a[]" keys keep every
// value as a list; other keys keep their last value.
func Nested(values url.Values) Form {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	root := Form{}
	for _, key := range keys {
		vals := values[key]
		path := splitKey(key)
		if len(path) == 0 || len(vals) == 0 {
			continue
		}
		if path[len(path)-1] == "" {
			list := make([]any, len(vals))
			for i, v := range vals {
				list[i] = v
			}
			setPath(root, path[:len(path)-1], list)
			continue
		}
		setPath(root, path, vals[len(vals)-1])
	}
	return root
}

func splitKey(key string) []string {
	i := strings.IndexByte(key, '[')
	if i <= 0 {
		if key == "" {
			return nil
		}
		return []string{key}
	}
	path := []string{key[:i]}
	rest := key[i:]
	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return []string{key}
		}
		path = append(path, rest[1:end])
		rest = rest[end+1:]
	}
	return path
}

func setPath(node map[string]any, path []string, v any) {
	if len(path) == 0 {
		return
	}
	for _, seg := range path[:len(path)-1] {
		next, ok := node[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			node[seg] = next
		}
		node = next
	}
	node[path[len(path)-1]] = v
}
