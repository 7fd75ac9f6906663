package rule

import "embed"

// Embedded holds the rules compiled into the binary: the first tier of the
// registry's strict load order, overridable by a filesystem mirror and then
// by user rules.
//
//go:embed embedded/regex/*.toml embedded/ast/*.toml
var Embedded embed.FS

// LoadEmbedded parses every rule baked into the binary.
func LoadEmbedded() ([]*Rule, error) {
	return loadFS(Embedded, "embedded/regex", "embedded/ast")
}
