// Package parse provides a thread-safe, language-keyed cache of tree-sitter
// grammars. Grammar initialization is expensive relative to per-file
// parsing; the cache is what lets a JS codebase never pay for Python's
// parser, and lets every file of a given language amortize one grammar
// lookup across the whole run.
package parse

import (
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	tstypescript "github.com/smacker/go-tree-sitter/typescript/typescript"
	tstsx "github.com/smacker/go-tree-sitter/typescript/tsx"

	"github.com/philjestin/ratchet/internal/model"
)

// grammarKey distinguishes TypeScript's two concrete grammars (plain .ts
// vs. JSX-flavored .tsx) even though both answer to model.LangTypeScript.
type grammarKey string

const (
	keyRust       grammarKey = "rust"
	keyJavaScript grammarKey = "javascript"
	keyPython     grammarKey = "python"
	keyGo         grammarKey = "go"
	keyTypeScript grammarKey = "typescript"
	keyTSX        grammarKey = "tsx"
)

var grammarConstructors = map[grammarKey]func() *sitter.Language{
	keyRust:       rust.GetLanguage,
	keyJavaScript: javascript.GetLanguage,
	keyPython:     python.GetLanguage,
	keyGo:         golang.GetLanguage,
	keyTypeScript: tstypescript.GetLanguage,
	keyTSX:        tstsx.GetLanguage,
}

// Cache is a many-reader/exclusive-writer map of grammarKey to grammar.
// Construction (the "writer" path) happens only on a key's first use and is
// serialized per key; all subsequent lookups are read-only.
type Cache struct {
	mu       sync.RWMutex
	grammars map[grammarKey]*sitter.Language
	building map[grammarKey]*sync.Once
}

// NewCache returns an empty, ready-to-use cache.
func NewCache() *Cache {
	return &Cache{
		grammars: make(map[grammarKey]*sitter.Language),
		building: make(map[grammarKey]*sync.Once),
	}
}

func (c *Cache) onceFor(key grammarKey) *sync.Once {
	c.mu.Lock()
	defer c.mu.Unlock()
	once, ok := c.building[key]
	if !ok {
		once = &sync.Once{}
		c.building[key] = once
	}
	return once
}

func (c *Cache) get(key grammarKey) (*sitter.Language, error) {
	ctor, ok := grammarConstructors[key]
	if !ok {
		return nil, fmt.Errorf("no grammar registered for %q", key)
	}
	c.onceFor(key).Do(func() {
		lang := ctor()
		c.mu.Lock()
		c.grammars[key] = lang
		c.mu.Unlock()
	})
	c.mu.RLock()
	defer c.mu.RUnlock()
	lang, ok := c.grammars[key]
	if !ok || lang == nil {
		return nil, fmt.Errorf("grammar for %q failed to initialize", key)
	}
	return lang, nil
}

// keyFor resolves the concrete grammar key for a language, taking the file
// extension into account for TypeScript's .tsx split.
func keyFor(lang model.Language, path string) (grammarKey, error) {
	switch lang {
	case model.LangRust:
		return keyRust, nil
	case model.LangJavaScript:
		return keyJavaScript, nil
	case model.LangPython:
		return keyPython, nil
	case model.LangGo:
		return keyGo, nil
	case model.LangTypeScript:
		if isTSX(path) {
			return keyTSX, nil
		}
		return keyTypeScript, nil
	default:
		return "", fmt.Errorf("unsupported language %q", lang)
	}
}

func isTSX(path string) bool {
	n := len(path)
	return n >= 4 && path[n-4:] == ".tsx"
}

// Grammar returns the cached grammar for lang (keyed on path to pick the
// right TypeScript flavor), constructing it on first use.
func (c *Cache) Grammar(lang model.Language, path string) (*sitter.Language, error) {
	key, err := keyFor(lang, path)
	if err != nil {
		return nil, err
	}
	return c.get(key)
}
