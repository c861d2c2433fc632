// Package config loads process-wide automaton settings from TOML.
//
// A configuration file looks like:
//
//	[automaton]
//	minimize_always = true
//	minimization = "brzozowski"   # or "moore" (the default)
//	allow_mutate = false
//
//	[log]
//	level = "debug"
//	hooks = true                  # log intersections and minimizations
//
// [Load] reads and validates a file, [Config.Apply] installs the settings
// into the [automaton] policy registry and, when log hooks are enabled,
// registers [observability.LogHooks]. Unknown keys are rejected so that a
// misspelled option does not silently fall back to a default.
//
// Errors carry [errors.ErrCodeFileNotFound] when the file is missing and
// [errors.ErrCodeInvalidConfig] for anything that does not parse or
// validate.
//
// [automaton]: github.com/rodneyxr/brics-automaton/pkg/automaton
// [observability.LogHooks]: github.com/rodneyxr/brics-automaton/pkg/observability
// [errors.ErrCodeFileNotFound]: github.com/rodneyxr/brics-automaton/pkg/errors
// [errors.ErrCodeInvalidConfig]: github.com/rodneyxr/brics-automaton/pkg/errors
package config
