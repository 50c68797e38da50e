// Package config holds the formatter configuration record and its loading.
//
// A Config is plain data: the formatter reads it and never mutates it. Load resolves one from,
// highest priority first: explicit overrides (CLI flags), the --config file, RSNFMT_* environment
// variables, rsnfmt config files in the working directory and its ancestors (nearest first), and
// finally the user config directory. Ancestor and user layers only fill keys that are still unset,
// and discovery stops at the first layer that leaves inherit = false.
package config
