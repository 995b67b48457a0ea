package sanitize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule names a reusable validation rule applied to a single field.
type Rule string

// Validation rules shared across endpoints. Handlers reference rules by name
// instead of re-declaring per-field constraints.
const (
	RuleEmail    Rule = "email"
	RulePassword Rule = "password"
	RulePhone    Rule = "phone"
	RuleID       Rule = "id"
	RulePrice    Rule = "price"
	RuleQuantity Rule = "quantity"
)

// Field binds a request field to a validation rule.
type Field struct {
	Name  string
	Rule  Rule
	Value any
}

// FieldError describes one failed field check. All failures for a request are
// reported together so the client fixes everything in one round trip.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

var phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)

// Rules evaluates the named field rules. Safe for concurrent use.
type Rules struct {
	validate *validator.Validate
}

// NewRules builds the shared rule set. The custom validators registered here
// cover the formats validator/v10 has no builtin for.
func NewRules() *Rules {
	v := validator.New()

	_ = v.RegisterValidation("phone_intl", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("password_classes", func(fl validator.FieldLevel) bool {
		return hasPasswordClasses(fl.Field().String())
	})

	return &Rules{validate: v}
}

// Check evaluates every field and collects all failures. Returns nil when the
// request is valid. Evaluation never stops at the first failure.
func (r *Rules) Check(fields ...Field) []FieldError {
	var errs []FieldError
	for _, f := range fields {
		if fe := r.checkOne(f); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

func (r *Rules) checkOne(f Field) *FieldError {
	fail := func(msg string) *FieldError {
		return &FieldError{Field: f.Name, Message: msg}
	}

	switch f.Rule {
	case RuleEmail:
		s, ok := f.Value.(string)
		if !ok || r.validate.Var(NormalizeEmail(s), "required,email") != nil {
			return fail("Invalid email format")
		}
	case RulePassword:
		s, ok := f.Value.(string)
		if !ok {
			return fail("Password must be at least 8 characters long")
		}
		if r.validate.Var(s, "required,min=8") != nil {
			return fail("Password must be at least 8 characters long")
		}
		if r.validate.Var(s, "password_classes") != nil {
			return fail("Password must contain at least one uppercase letter, one lowercase letter, one number and one special character")
		}
	case RulePhone:
		s, ok := f.Value.(string)
		if !ok || r.validate.Var(s, "required,phone_intl") != nil {
			return fail("Invalid phone number format")
		}
	case RuleID:
		s, ok := f.Value.(string)
		if !ok || r.validate.Var(s, "required,uuid4") != nil {
			return fail("Invalid ID format")
		}
	case RulePrice:
		v, ok := asFloat(f.Value)
		if !ok || r.validate.Var(v, "gte=0") != nil {
			return fail("Price must be a positive number")
		}
	case RuleQuantity:
		v, ok := asInt(f.Value)
		if !ok || v < 0 {
			return fail("Quantity must be a positive integer")
		}
	default:
		return fail(fmt.Sprintf("unknown validation rule %q", f.Rule))
	}

	return nil
}

// NormalizeEmail lowercases and trims an email address. Callers must store
// the normalized form, not the raw input, so lookups stay case-insensitive.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// One character from each class, restricted to the class alphabet. Matches
// the registration policy enforced at the API perimeter.
func hasPasswordClasses(s string) bool {
	var lower, upper, digit, special bool
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune("@$!%*?&", c):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	}
	return 0, false
}

func asInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		// JSON numbers decode as float64. Reject fractional quantities.
		if t != float64(int64(t)) {
			return 0, false
		}
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	}
	return 0, false
}
