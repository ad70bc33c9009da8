// internal/jsonenc/jsonenc.go
package jsonenc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/solatis/domrules/internal/dom"
	"golang.org/x/net/html"
)

/*
 * Form parameters to nested JSON.
 *
 * Request bodies built from form fields are sent as JSON instead of
 * urlencoded pairs. Bracketed field names describe the nesting:
 *
 *   user[name]=ann        {"user": {"name": "ann"}}
 *   tags[0]=a&tags[1]=b   {"tags": ["a", "b"]}       (cleanArrays on)
 *   tags[0]=a&tags[1]=b   {"tags": {"0": "a", ...}}  (cleanArrays off)
 *
 * A field sent once becomes a string, a repeated field an array of strings.
 * Keys are processed in sorted order, so which of two conflicting keys wins
 * does not depend on form order.
 */

// ContentType is the media type of encoded bodies.
const ContentType = "application/json"

// CleanArraysAttr disables integer-keyed object conversion when set to
// "false" on the element that triggers the request.
const CleanArraysAttr = "data-json-enc-clean-arrays"

// Options controls encoding.
type Options struct {
	// CleanArrays turns nested objects whose keys are all integers into
	// arrays ordered by those integers. The top-level object is never
	// converted.
	CleanArrays bool
}

// DefaultOptions returns the encoder defaults.
func DefaultOptions() Options {
	return Options{CleanArrays: true}
}

// OptionsFor returns the options for a request triggered by el, starting
// from def.
func OptionsFor(el *html.Node, def Options) Options {
	opts := def
	if v, ok := (dom.HTML{}).Attr(el, CleanArraysAttr); ok && v == "false" {
		opts.CleanArrays = false
	}
	return opts
}

// ConfigureRequest sets the request content type.
func ConfigureRequest(h http.Header) {
	h.Set("Content-Type", ContentType)
}

// Encode converts params into a JSON document.
func Encode(params url.Values, opts Options) ([]byte, error) {
	body, err := json.Marshal(Nest(params, opts))
	if err != nil {
		return nil, fmt.Errorf("encode parameters: %w", err)
	}
	return body, nil
}

// Nest builds the nested value tree Encode serializes. Objects are
// map[string]any, arrays []any (cleaned) or []string (repeated fields).
func Nest(params url.Values, opts Options) map[string]any {
	result := make(map[string]any)

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		assign(result, k, fieldValue(params[k]))
	}
	if opts.CleanArrays {
		cleanArrays(result)
	}
	return result
}

func fieldValue(values []string) any {
	if len(values) == 1 {
		return values[0]
	}
	return append([]string(nil), values...)
}

// Segments splits a field name into its path. Text outside brackets
// accumulates into one segment, "[" inside a bracket and "]" outside one are
// literal, and "a[]" ends in an empty segment.
func Segments(key string) []string {
	var segments []string
	var current strings.Builder
	inBracket := false

	for _, r := range key {
		switch {
		case r == '[' && !inBracket:
			if current.Len() > 0 {
				segments = append(segments, current.String())
				current.Reset()
			}
			inBracket = true
		case r == ']' && inBracket:
			segments = append(segments, current.String())
			current.Reset()
			inBracket = false
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		segments = append(segments, current.String())
	}
	return segments
}

// assign stores value at the path described by key. Walking through a value
// that is not an object drops the assignment.
func assign(result map[string]any, key string, value any) {
	segments := Segments(key)
	if len(segments) == 0 {
		result[key] = value
		return
	}

	current := result
	for _, seg := range segments[:len(segments)-1] {
		next, ok := current[seg]
		if !ok {
			child := make(map[string]any)
			current[seg] = child
			current = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return
		}
		current = child
	}
	current[segments[len(segments)-1]] = value
}

// cleanArrays converts integer-keyed child objects of obj, depth first.
func cleanArrays(obj map[string]any) {
	for k, v := range obj {
		child, ok := v.(map[string]any)
		if !ok {
			continue
		}
		cleanArrays(child)
		if arr, ok := toArray(child); ok {
			obj[k] = arr
		}
	}
}

func toArray(obj map[string]any) ([]any, bool) {
	if len(obj) == 0 {
		return nil, false
	}
	type entry struct {
		index int
		key   string
	}
	entries := make([]entry, 0, len(obj))
	for k := range obj {
		n, ok := leadingInt(k)
		if !ok {
			return nil, false
		}
		entries = append(entries, entry{n, k})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].index != entries[j].index {
			return entries[i].index < entries[j].index
		}
		return entries[i].key < entries[j].key
	})

	arr := make([]any, len(entries))
	for i, e := range entries {
		arr[i] = obj[e.key]
	}
	return arr, true
}

// leadingInt reads an optionally signed decimal prefix of s after leading
// whitespace: "12abc" is 12, "abc" is not an integer.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for digits < len(s) && '0' <= s[digits] && s[digits] <= '9' {
		if n < 1<<30 {
			n = n*10 + int(s[digits]-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
