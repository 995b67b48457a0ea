package sanitize

import "regexp"

// Whole-word SQL keywords or any quote character. Known false positives
// (apostrophes in names) are accepted: the request-wide rejection is a
// tripwire in front of parameterized queries, not a parser.
var injectionPattern = regexp.MustCompile(`(?i)(\b(select|insert|update|delete|drop|union|exec|declare|cast)\b)|['"]`)

// DetectInjection reports whether any string leaf in tree matches the
// injection pattern. A single match anywhere condemns the whole request;
// callers reject with a generic 403 carrying no field detail.
func DetectInjection(tree any) bool {
	switch t := tree.(type) {
	case string:
		return injectionPattern.MatchString(t)
	case map[string]any:
		for _, v := range t {
			if DetectInjection(v) {
				return true
			}
		}
	case []any:
		for _, v := range t {
			if DetectInjection(v) {
				return true
			}
		}
	}
	return false
}
