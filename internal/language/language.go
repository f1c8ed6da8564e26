// Package language resolves the syntax language for a snippet from an
// explicit hint, a filename, or the content itself.
package language

import (
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// Fallback is used when nothing Detect sees identifies a language.
const Fallback = "plaintext"

// Detection names the chosen language and how it was chosen.
type Detection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// Detect picks the language for content. An explicit hint always wins,
// then the filename, then content analysis, then Fallback.
func Detect(content, filename, hint string) Detection {
	if hint != "" {
		if lexer := lexers.Get(hint); lexer != nil {
			return Detection{
				Language:   canonical(lexer.Config().Name),
				Confidence: 1.0,
				Source:     "hint",
			}
		}
	}

	if filename != "" {
		if lexer := lexers.Match(filename); lexer != nil {
			return Detection{
				Language:   canonical(lexer.Config().Name),
				Confidence: 0.9,
				Source:     "filename",
			}
		}
	}

	if lexer := lexers.Analyse(content); lexer != nil {
		return Detection{
			Language:   canonical(lexer.Config().Name),
			Confidence: 0.6,
			Source:     "content",
		}
	}

	return Detection{Language: Fallback, Confidence: 0.1, Source: "fallback"}
}

// Supported reports whether name resolves to a known language.
func Supported(name string) bool {
	return lexers.Get(name) != nil
}

// Info describes one supported language.
type Info struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

// List returns every supported language sorted by id.
func List() []Info {
	names := lexers.Names(false)

	out := make([]Info, 0, len(names))
	for _, name := range names {
		lexer := lexers.Get(name)
		if lexer == nil {
			continue
		}
		cfg := lexer.Config()
		out = append(out, Info{
			ID:      canonical(cfg.Name),
			Name:    cfg.Name,
			Aliases: cfg.Aliases,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// canonical lowercases a lexer display name into the id used on the
// wire, e.g. "Go" becomes "go".
func canonical(name string) string {
	return strings.ToLower(name)
}
