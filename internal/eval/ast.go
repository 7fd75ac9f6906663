package eval

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/philjestin/ratchet/internal/model"
	"github.com/philjestin/ratchet/internal/parse"
	"github.com/philjestin/ratchet/internal/source"
)

// violationCapture is the query capture name whose node, when present,
// locates the reported violation. Absent it, the match's own outermost
// capture is used instead.
const violationCapture = "violation"

// AST runs a compiled query for language lang against fe's cached syntax
// tree, yielding one match per top-level query match (not per capture,
// unless the query author distinguishes captures some other way downstream).
// If fe's language doesn't match lang it yields nothing and no error: that's
// the file simply being out of scope for this rule. If parsing failed it
// yields no matches and a *model.ParseFailed error.
func AST(query *sitter.Query, lang model.Language, fe *source.FileEntry, cache *parse.Cache) ([]Match, error) {
	if !fe.HasLanguage || fe.Language != lang {
		return nil, nil
	}

	tree, err := fe.Tree(lang, func(content []byte) (*sitter.Tree, error) {
		return parse.Parse(cache, lang, fe.Path, content)
	})
	if err != nil {
		return nil, &model.ParseFailed{Path: fe.Path, Language: lang, Diagnostic: err.Error()}
	}

	cursor := sitter.NewQueryCursor()
	cursor.Exec(query, tree.RootNode())

	var matches []Match
	for {
		m, ok := cursor.NextMatch()
		if !ok {
			break
		}
		m = cursor.FilterPredicates(m, fe.Content)
		if len(m.Captures) == 0 {
			continue
		}
		node := violationNode(query, m)
		if node == nil {
			continue
		}
		matches = append(matches, matchFromNode(fe, node))
	}
	return matches, nil
}

func violationNode(query *sitter.Query, m *sitter.QueryMatch) *sitter.Node {
	for _, c := range m.Captures {
		if query.CaptureNameForId(c.Index) == violationCapture {
			return c.Node
		}
	}
	return m.Captures[0].Node
}

func matchFromNode(fe *source.FileEntry, n *sitter.Node) Match {
	start, end := int(n.StartByte()), int(n.EndByte())
	startLine, startCol := fe.LineCol(start)
	endOffset := end
	if endOffset > start {
		endOffset--
	}
	endLine, endCol := fe.LineCol(endOffset)
	snippet := strings.TrimSpace(string(fe.Content[start:end]))
	return Match{
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   endLine,
		EndCol:    endCol,
		Snippet:   truncateSnippet(snippet),
	}
}

// CompileQuery compiles an s-expression query against lang's grammar.
func CompileQuery(cache *parse.Cache, lang model.Language, querySrc string) (*sitter.Query, error) {
	grammar, err := cache.Grammar(lang, dummyPathFor(lang))
	if err != nil {
		return nil, err
	}
	return sitter.NewQuery([]byte(querySrc), grammar)
}

// dummyPathFor produces a representative extension so the cache resolves
// TypeScript's plain-vs-tsx grammar split when compiling a query ahead of
// any real file (queries compile once at registry build time, not per-file).
func dummyPathFor(lang model.Language) string {
	switch lang {
	case model.LangTypeScript:
		return "query.ts"
	default:
		return "query"
	}
}
