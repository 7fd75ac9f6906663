package model

import (
	"path/filepath"
	"strings"
)

// Language is a closed enumeration of the grammars Ratchet can parse.
// Absence of a grammar for a language is only fatal when a rule demands it.
type Language string

const (
	LangRust       Language = "rust"
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangPython     Language = "python"
	LangGo         Language = "go"
)

// Languages is the full set of grammars known at build time.
var Languages = []Language{LangRust, LangTypeScript, LangJavaScript, LangPython, LangGo}

// Valid reports whether l is one of the enumerated languages.
func (l Language) Valid() bool {
	for _, known := range Languages {
		if l == known {
			return true
		}
	}
	return false
}

var extLanguage = map[string]Language{
	".rs":  LangRust,
	".ts":  LangTypeScript,
	".tsx": LangTypeScript,
	".js":  LangJavaScript,
	".jsx": LangJavaScript,
	".mjs": LangJavaScript,
	".cjs": LangJavaScript,
	".py":  LangPython,
	".go":  LangGo,
}

// DetectLanguage maps a file's extension to a known language. The second
// return value is false when the extension isn't recognized; such files are
// still walked and remain eligible for language-agnostic regex rules.
func DetectLanguage(path string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := extLanguage[ext]
	return lang, ok
}
