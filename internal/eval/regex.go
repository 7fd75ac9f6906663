package eval

import (
	"regexp"
	"strings"

	"github.com/philjestin/ratchet/internal/source"
)

// Regex applies a compiled text pattern to a file's content, yielding a
// match for every non-overlapping occurrence. Byte offsets are converted to
// 1-based (line, column) pairs using the file's lazily-built line index.
func Regex(pattern *regexp.Regexp, fe *source.FileEntry) []Match {
	indices := pattern.FindAllIndex(fe.Content, -1)
	if len(indices) == 0 {
		return nil
	}
	matches := make([]Match, 0, len(indices))
	for _, loc := range indices {
		start, end := loc[0], loc[1]
		startLine, startCol := fe.LineCol(start)
		endOffset := end
		if endOffset > start {
			endOffset--
		}
		endLine, endCol := fe.LineCol(endOffset)
		snippet := strings.TrimSpace(string(fe.Content[start:end]))
		matches = append(matches, Match{
			StartLine: startLine,
			StartCol:  startCol,
			EndLine:   endLine,
			EndCol:    endCol,
			Snippet:   truncateSnippet(snippet),
		})
	}
	return matches
}
