// Package source models a discovered file: its path, detected language,
// content, and the lazily-built caches (line index, syntax tree) that rules
// evaluating the same file share.
package source

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/philjestin/ratchet/internal/model"
)

// FileEntry is immutable once constructed except for its lazily-filled
// caches, which are safe for concurrent use: each cache is filled at most
// once, and a second caller observing an in-flight fill waits for it.
type FileEntry struct {
	// Path is the repo-relative, forward-slash path used for region
	// attribution and output.
	Path string
	// AbsPath is the path actually opened on disk.
	AbsPath string
	// Language is the detected language; HasLanguage is false for files
	// with no recognized extension (they remain eligible for
	// language-agnostic regex rules).
	Language    model.Language
	HasLanguage bool
	Content     []byte

	lineIndexOnce sync.Once
	lineIndex     []int

	treeMu sync.Mutex
	trees  map[model.Language]*treeSlot
}

type treeSlot struct {
	once sync.Once
	tree *sitter.Tree
	err  error
}

// New constructs a FileEntry for an already-read file.
func New(repoRelPath, absPath string, content []byte) *FileEntry {
	lang, ok := model.DetectLanguage(repoRelPath)
	return &FileEntry{
		Path:        repoRelPath,
		AbsPath:     absPath,
		Language:    lang,
		HasLanguage: ok,
		Content:     content,
		trees:       make(map[model.Language]*treeSlot),
	}
}

// LineIndex returns the byte offset of the start of each line, built lazily
// on first demand and cached thereafter. lineIndex[i] is the byte offset at
// which line i+1 (1-based) begins.
func (f *FileEntry) LineIndex() []int {
	f.lineIndexOnce.Do(func() {
		idx := []int{0}
		for i, b := range f.Content {
			if b == '\n' {
				idx = append(idx, i+1)
			}
		}
		f.lineIndex = idx
	})
	return f.lineIndex
}

// LineCol converts a 0-based byte offset to a 1-based (line, column) pair.
// Column counts UTF-8 code units from the line's first byte.
func (f *FileEntry) LineCol(offset int) (line, col int) {
	idx := f.LineIndex()
	line = 1
	for i, start := range idx {
		if start > offset {
			break
		}
		line = i + 1
	}
	lineStart := idx[line-1]
	return line, offset - lineStart + 1
}

// treeSlotFor returns (creating if necessary) the one-shot slot that will
// hold the parsed tree for language lang. The slot itself, not the map, is
// what callers wait on; only the map lookup/insert needs the mutex.
func (f *FileEntry) treeSlotFor(lang model.Language) *treeSlot {
	f.treeMu.Lock()
	defer f.treeMu.Unlock()
	slot, ok := f.trees[lang]
	if !ok {
		slot = &treeSlot{}
		f.trees[lang] = slot
	}
	return slot
}

// Tree returns the cached parsed tree for lang, invoking parse exactly once
// per (file, language) even when multiple AST rules target the same file.
func (f *FileEntry) Tree(lang model.Language, parse func([]byte) (*sitter.Tree, error)) (*sitter.Tree, error) {
	slot := f.treeSlotFor(lang)
	slot.once.Do(func() {
		slot.tree, slot.err = parse(f.Content)
	})
	return slot.tree, slot.err
}
