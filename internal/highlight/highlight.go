// Package highlight tokenizes snippet source into colored segments
// using the theme's syntax palette.
package highlight

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/snipframe-cloud/snipframe/internal/theme"
	"github.com/snipframe-cloud/snipframe/pkg/apperr"
)

// Segment is a run of text with a single style.
type Segment struct {
	Text   string `json:"text"`
	Color  string `json:"color"`
	Bold   bool   `json:"bold"`
	Italic bool   `json:"italic"`
}

// Line is one source line of styled segments.
type Line struct {
	Number   int       `json:"number"`
	Segments []Segment `json:"segments"`
}

// Result is the styled form of a snippet.
type Result struct {
	Lines      []Line `json:"lines"`
	Language   string `json:"language"`
	TotalLines int    `json:"total_lines"`
}

// Highlighter turns source code into styled lines. Lexer lookups are
// cached per language name.
type Highlighter struct {
	mu     sync.Mutex
	lexers map[string]chroma.Lexer
}

// New returns a ready highlighter.
func New() *Highlighter {
	return &Highlighter{lexers: map[string]chroma.Lexer{}}
}

// Highlight tokenizes code as the given language and colors each token
// from the theme's syntax palette. An unknown language falls back to
// plain text rather than failing.
func (h *Highlighter) Highlight(code, language string, syn theme.Syntax) (*Result, error) {
	lexer := h.lexer(language)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, apperr.ImageGeneration("tokenizing %s source", language).Wrap(err)
	}

	result := &Result{Language: language}
	current := Line{Number: 1}

	for _, token := range iterator.Tokens() {
		class := classOf(token.Type)
		color := syn.SyntaxColor(class)
		bold := class == "keyword"
		italic := class == "comment"

		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				result.Lines = append(result.Lines, current)
				current = Line{Number: current.Number + 1}
			}
			if part == "" {
				continue
			}
			current.Segments = append(current.Segments, Segment{
				Text:   part,
				Color:  color,
				Bold:   bold,
				Italic: italic,
			})
		}
	}
	result.Lines = append(result.Lines, current)

	// a trailing newline in the source yields an empty final line
	if n := len(result.Lines); n > 1 && len(result.Lines[n-1].Segments) == 0 {
		result.Lines = result.Lines[:n-1]
	}
	result.TotalLines = len(result.Lines)

	return result, nil
}

// lexer resolves and caches the chroma lexer for a language name.
func (h *Highlighter) lexer(language string) chroma.Lexer {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cached, ok := h.lexers[language]; ok {
		return cached
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	h.lexers[language] = lexer
	return lexer
}

// classOf buckets a chroma token type into the theme's palette slots.
func classOf(t chroma.TokenType) string {
	switch {
	case t == chroma.KeywordType:
		return "type"
	case t.InCategory(chroma.Keyword):
		return "keyword"
	case t.InSubCategory(chroma.LiteralString):
		return "string"
	case t.InCategory(chroma.Comment):
		return "comment"
	case t.InSubCategory(chroma.LiteralNumber):
		return "number"
	case t == chroma.NameFunction || t == chroma.NameFunctionMagic:
		return "function"
	case t == chroma.NameClass || t == chroma.NameNamespace:
		return "type"
	case t.InCategory(chroma.Name):
		return "variable"
	case t.InCategory(chroma.Operator):
		return "operator"
	default:
		return "text"
	}
}
