// Package validation checks flat string maps against pipe-separated rules.
//
// It is used on configuration values once every source (defaults, YAML,
// .env, environment) has been merged.
//
//	err := validation.Validate(map[string]string{
//	    "server.port": "8080",
//	    "log.level":   "debug",
//	}, validation.Rules{
//	    "server.port": "required|integer|range:1,65535",
//	    "log.level":   "required|in:debug,info,warn,error",
//	})
//
// # Available Rules
//
//   - required       value must be non-blank
//   - nullable       an empty value skips the remaining rules
//   - integer        parseable as int
//   - numeric        parseable as float64
//   - boolean        accepted by strconv.ParseBool
//   - duration       accepted by time.ParseDuration
//   - url            absolute http(s) URL
//   - min:n / max:n  length bounds in UTF-8 characters
//   - range:lo,hi    numeric value between lo and hi (inclusive)
//   - in:a,b,c       one of the listed values
//   - alpha_dash     letters, numbers, dashes and underscores
//   - regex:pattern  must match the pattern
//
// Processing of a field stops at its first failing rule. An unknown rule
// name is reported as a failure of that field.
//
// # Error Bag
//
// *Errors implements error and serialises as
//
//	{"errors": {"server.port": ["The server.port must be between 1 and 65535."]}}
package validation
