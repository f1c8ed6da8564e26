// Package snippet validates and normalizes incoming snippet source
// before it reaches the export pipeline.
package snippet

import (
	"strings"

	"github.com/snipframe-cloud/snipframe/internal/language"
	"github.com/snipframe-cloud/snipframe/pkg/apperr"
)

const (
	// MaxChars bounds snippet size in characters.
	MaxChars = 100_000
	// MaxLines bounds snippet size in lines.
	MaxLines = 10_000

	tabWidth = 4
)

// Snippet is the processed form of incoming source.
type Snippet struct {
	Code      string             `json:"code"`
	Language  string             `json:"language"`
	Detection language.Detection `json:"detection"`
	Lines     int                `json:"lines"`
	Chars     int                `json:"chars"`
}

// Validate checks raw source against the size bounds.
func Validate(code string) error {
	if strings.TrimSpace(code) == "" {
		return apperr.Validation("snippet code cannot be empty")
	}
	if n := len([]rune(code)); n > MaxChars {
		return apperr.Validation("snippet exceeds %d characters, got %d", MaxChars, n)
	}
	if n := strings.Count(code, "\n") + 1; n > MaxLines {
		return apperr.Validation("snippet exceeds %d lines, got %d", MaxLines, n)
	}
	return nil
}

// Process validates and normalizes code, resolving its language from
// the optional hint and filename.
func Process(code, filename, languageHint string) (*Snippet, error) {
	if err := Validate(code); err != nil {
		return nil, err
	}

	normalized := normalize(code)
	detection := language.Detect(normalized, filename, languageHint)

	return &Snippet{
		Code:      normalized,
		Language:  detection.Language,
		Detection: detection,
		Lines:     strings.Count(normalized, "\n") + 1,
		Chars:     len([]rune(normalized)),
	}, nil
}

// normalize converts line endings, expands tabs and strips trailing
// whitespace per line and trailing blank lines.
func normalize(code string) string {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	code = strings.ReplaceAll(code, "\r", "\n")
	code = strings.ReplaceAll(code, "\t", strings.Repeat(" ", tabWidth))

	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}

	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}

	return strings.Join(lines[:end], "\n")
}
