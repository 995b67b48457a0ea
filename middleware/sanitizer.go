package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	goShield "github.com/MrEthical07/goShield"
	"github.com/MrEthical07/goShield/sanitize"
)

// Body larger than this is rejected outright before parsing.
const maxSanitizedBody = 1 << 20

// Sanitize rewrites client-supplied input through the sanitizer before any
// handler runs: URL path segments and the query string are always inspected,
// and JSON or form-encoded bodies are parsed, inspected, and rewritten in
// sanitized form. A suspected injection payload anywhere in path, query, or
// body rejects the whole request with a generic 403 carrying no field detail,
// so a probing client learns nothing about which value tripped the detector.
//
// Bodies with any other content type pass through untouched; handlers that
// accept such bodies must sanitize them with [sanitize.Clean] themselves.
func Sanitize(guard *goShield.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if guard.InspectPayload(r.Context(), pathTree(r.URL.Path)) != nil {
				rejectInjection(w)
				return
			}

			query := r.URL.Query()
			if guard.InspectPayload(r.Context(), queryTree(query)) != nil {
				rejectInjection(w)
				return
			}
			r.URL.RawQuery = cleanQuery(query).Encode()

			switch bodyKind(r) {
			case bodyJSON:
				if !sanitizeJSONBody(guard, w, r) {
					return
				}
			case bodyForm:
				if !sanitizeFormBody(guard, w, r) {
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// sanitizeJSONBody reads, inspects, and rewrites a JSON body in place. It
// reports false after writing the error response itself.
func sanitizeJSONBody(guard *goShield.Guard, w http.ResponseWriter, r *http.Request) bool {
	data, ok := readLimitedBody(w, r)
	if !ok {
		return false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		r.Body = io.NopCloser(bytes.NewReader(nil))
		r.ContentLength = 0
		return true
	}

	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed JSON body"})
		return false
	}

	if guard.InspectPayload(r.Context(), tree) != nil {
		rejectInjection(w)
		return false
	}

	cleaned, err := json.Marshal(sanitize.Clean(tree))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed JSON body"})
		return false
	}

	replaceBody(r, cleaned)
	return true
}

// sanitizeFormBody does the same for application/x-www-form-urlencoded
// bodies: every value is inspected and rewritten through the strict policy.
func sanitizeFormBody(guard *goShield.Guard, w http.ResponseWriter, r *http.Request) bool {
	data, ok := readLimitedBody(w, r)
	if !ok {
		return false
	}

	form, err := url.ParseQuery(string(data))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed form body"})
		return false
	}

	if guard.InspectPayload(r.Context(), queryTree(form)) != nil {
		rejectInjection(w)
		return false
	}

	replaceBody(r, []byte(cleanQuery(form).Encode()))
	return true
}

func readLimitedBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxSanitizedBody+1))
	if err != nil || len(data) > maxSanitizedBody {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "Request body too large"})
		return nil, false
	}
	_ = r.Body.Close()
	return data, true
}

func replaceBody(r *http.Request, data []byte) {
	r.Body = io.NopCloser(bytes.NewReader(data))
	r.ContentLength = int64(len(data))
}

const (
	bodyNone = iota
	bodyJSON
	bodyForm
)

func bodyKind(r *http.Request) int {
	if r.Body == nil || r.Method == http.MethodGet || r.Method == http.MethodHead {
		return bodyNone
	}

	contentType := r.Header.Get("Content-Type")
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	switch strings.TrimSpace(contentType) {
	case "application/json":
		return bodyJSON
	case "application/x-www-form-urlencoded":
		return bodyForm
	default:
		return bodyNone
	}
}

// pathTree exposes the decoded path segments to the injection detector. A
// quote or SQL keyword smuggled into a route parameter is as dangerous as one
// in the body.
func pathTree(path string) []any {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	tree := make([]any, len(segments))
	for i, s := range segments {
		tree[i] = s
	}
	return tree
}

func queryTree(query url.Values) map[string]any {
	tree := make(map[string]any, len(query))
	for key, values := range query {
		leaves := make([]any, len(values))
		for i, v := range values {
			leaves[i] = v
		}
		tree[key] = leaves
	}
	return tree
}

func cleanQuery(query url.Values) url.Values {
	out := make(url.Values, len(query))
	for key, values := range query {
		cleaned := make([]string, len(values))
		for i, v := range values {
			cleaned[i] = sanitize.CleanString(v)
		}
		out[key] = cleaned
	}
	return out
}

func rejectInjection(w http.ResponseWriter) {
	writeJSON(w, http.StatusForbidden, map[string]string{"error": "Invalid input detected"})
}
