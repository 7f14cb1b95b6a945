package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ── Errors ───────────────────────────────────────────────────────────────────

// Errors collects rule failures per field.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs, ok := e.Bag[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Error joins every message, fields in alphabetical order.
func (e *Errors) Error() string {
	fields := make([]string, 0, len(e.Bag))
	for f := range e.Bag {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var parts []string
	for _, f := range fields {
		parts = append(parts, e.Bag[f]...)
	}
	return "validation failed: " + strings.Join(parts, " ")
}

// ── Validator ────────────────────────────────────────────────────────────────

// Rules maps a field to its pipe-separated rule string.
// e.g. Rules{"server.port": "required|integer|range:1,65535"}
type Rules map[string]string

// Validator checks a flat map of string values against Rules.
type Validator struct {
	data   map[string]string
	rules  Rules
	errors *Errors
	ran    bool
}

// Make creates a new Validator.
func Make(data map[string]string, rules Rules) *Validator {
	return &Validator{
		data:   data,
		rules:  rules,
		errors: &Errors{},
	}
}

// Validate is Make(data, rules) returning the error bag when a rule fails.
//
//	if err := validation.Validate(values, rules); err != nil { ... }
func Validate(data map[string]string, rules Rules) error {
	v := Make(data, rules)
	if v.Fails() {
		return v.Errors()
	}
	return nil
}

// Fails runs validation and returns true if any rule fails.
func (v *Validator) Fails() bool {
	if !v.ran {
		v.validate()
		v.ran = true
	}
	return v.errors.Has()
}

// Passes runs validation and returns true if all rules pass.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the validation error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// ── Core validation loop ─────────────────────────────────────────────────────

func (v *Validator) validate() {
	for field, ruleStr := range v.rules {
		value := v.data[field]

		for _, rule := range strings.Split(ruleStr, "|") {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}

			name, param, _ := strings.Cut(rule, ":")

			if name == "nullable" {
				if value == "" {
					break
				}
				continue
			}

			check, ok := ruleSet[name]
			if !ok {
				v.errors.add(field, fmt.Sprintf("Unknown rule %q on %s.", name, field))
				break
			}
			if msg := check(value, param); msg != "" {
				v.errors.add(field, fmt.Sprintf(msg, field))
				break // bail on first failure
			}
		}
	}
}

// ── Rules ────────────────────────────────────────────────────────────────────

// rule returns a message with a single %s verb for the field, or "" when the
// value passes.
type rule func(value, param string) string

var ruleSet = map[string]rule{
	"required": func(value, _ string) string {
		if strings.TrimSpace(value) == "" {
			return "The %s field is required."
		}
		return ""
	},

	"integer": func(value, _ string) string {
		if _, err := strconv.Atoi(value); err != nil {
			return "The %s must be an integer."
		}
		return ""
	},

	"numeric": func(value, _ string) string {
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return "The %s must be a number."
		}
		return ""
	},

	"boolean": func(value, _ string) string {
		if _, err := strconv.ParseBool(value); err != nil {
			return "The %s field must be true or false."
		}
		return ""
	},

	"duration": func(value, _ string) string {
		if _, err := time.ParseDuration(value); err != nil {
			return "The %s must be a duration such as 200ms."
		}
		return ""
	},

	"url": func(value, _ string) string {
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "The %s must be a valid URL."
		}
		return ""
	},

	"min": func(value, param string) string {
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) < n {
			return "The %s must be at least " + param + " characters."
		}
		return ""
	},

	"max": func(value, param string) string {
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) > n {
			return "The %s may not be greater than " + param + " characters."
		}
		return ""
	},

	"range": func(value, param string) string {
		lo, hi, ok := strings.Cut(param, ",")
		if !ok {
			return "The %s has a malformed range rule."
		}
		f, err := strconv.ParseFloat(value, 64)
		min, _ := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		max, _ := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if err != nil || f < min || f > max {
			return "The %s must be between " + strings.TrimSpace(lo) + " and " + strings.TrimSpace(hi) + "."
		}
		return ""
	},

	"in": func(value, param string) string {
		for _, a := range strings.Split(param, ",") {
			if strings.TrimSpace(a) == value {
				return ""
			}
		}
		return "The selected %s is invalid."
	},

	"alpha_dash": func(value, _ string) string {
		if !alphaDash.MatchString(value) {
			return "The %s may only contain letters, numbers, dashes and underscores."
		}
		return ""
	},

	"regex": func(value, param string) string {
		re, err := regexp.Compile(param)
		if err != nil || !re.MatchString(value) {
			return "The %s format is invalid."
		}
		return ""
	},
}

var alphaDash = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
