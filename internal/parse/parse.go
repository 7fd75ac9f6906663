package parse

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/philjestin/ratchet/internal/model"
)

// Parse parses content as lang (resolved against path for the TypeScript
// .tsx split) using a fresh *sitter.Parser bound to the cache's shared
// grammar. Each call gets its own Parser value — tree-sitter parsers are
// not safe to reuse across concurrent parses — but the expensive grammar
// object underneath is shared and constructed at most once.
func Parse(cache *Cache, lang model.Language, path string, content []byte) (*sitter.Tree, error) {
	grammar, err := cache.Grammar(lang, path)
	if err != nil {
		return nil, err
	}
	parser := sitter.NewParser()
	parser.SetLanguage(grammar)
	tree := parser.Parse(nil, content)
	if tree == nil {
		return nil, fmt.Errorf("parser returned no tree for %s", path)
	}
	return tree, nil
}
