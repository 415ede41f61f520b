// Package config loads and persists queuectl's on-disk settings: a
// small JSON document merged over a fixed set of defaults, stored at
// the path given to Load (DefaultPath: ~/.queuectl/config.json).
//
// Unlike the store and lifecycle packages, config intentionally skips
// a general-purpose configuration library: the only behavior it needs
// beyond "read JSON, merge over defaults" is the numeric-auto-coercion
// rule applied by Set, which is local business logic rather than
// something a library like viper would simplify.
package config
