package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy   = bluemonday.StrictPolicy()
	richTextPolicy = newRichTextPolicy()
)

// Rich-text fields keep basic formatting, nothing else: no attributes, no
// links, no embeds or iframes.
func newRichTextPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "i", "em", "strong", "p", "br", "ul", "ol", "li")
	return p
}

// Clean returns a sanitized copy of tree. Maps, slices, and scalars are
// walked recursively; only string leaves change value. The containing key
// name decides the policy: keys matching the rich-text allow-list keep a
// small tag set, everything else is fully neutralized.
func Clean(tree any) any {
	return cleanValue("", tree)
}

// CleanString sanitizes a single string with the strict policy. Used for
// file-upload metadata (original and stored names) and other bare values
// that never carry markup legitimately.
func CleanString(s string) string {
	return strictPolicy.Sanitize(s)
}

func cleanValue(key string, v any) any {
	switch t := v.(type) {
	case string:
		if isRichTextKey(key) {
			return richTextPolicy.Sanitize(t)
		}
		return strictPolicy.Sanitize(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cleanValue(k, val)
		}
		return out
	case []any:
		// Array elements inherit the nearest map key, so a "description"
		// list keeps rich text per element.
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cleanValue(key, val)
		}
		return out
	default:
		return v
	}
}

func isRichTextKey(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "description") || strings.Contains(k, "content")
}
