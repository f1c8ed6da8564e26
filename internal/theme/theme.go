// Package theme defines the visual styling model for rendered snippet
// cards and the catalog managing preset and custom themes.
package theme

import (
	"github.com/snipframe-cloud/snipframe/pkg/apperr"
)

// BackgroundType enumerates how a card background is filled.
type BackgroundType string

const (
	BackgroundSolid    BackgroundType = "solid"
	BackgroundGradient BackgroundType = "gradient"
	BackgroundPattern  BackgroundType = "pattern"
)

// WindowStyle enumerates the chrome drawn around the code area.
type WindowStyle string

const (
	WindowMacOS    WindowStyle = "macos"
	WindowWindows  WindowStyle = "windows"
	WindowTerminal WindowStyle = "terminal"
	WindowClean    WindowStyle = "clean"
)

// Type partitions the catalog into dark and light themes.
type Type string

const (
	TypeDark  Type = "dark"
	TypeLight Type = "light"
)

// Theme is the full styling description for a snippet card.
type Theme struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Type       Type       `json:"type" yaml:"type"`
	Background Background `json:"background" yaml:"background"`
	Syntax     Syntax     `json:"syntax" yaml:"syntax"`
	Window     Window     `json:"window" yaml:"window"`
	Typography Typography `json:"typography" yaml:"typography"`
}

// Background styles the card behind the code.
type Background struct {
	Type      BackgroundType `json:"type" yaml:"type"`
	Primary   string         `json:"primary" yaml:"primary"`
	Secondary string         `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Opacity   float64        `json:"opacity" yaml:"opacity"`
}

// Syntax carries the token colors applied by the highlighter.
type Syntax struct {
	Keyword  string `json:"keyword" yaml:"keyword"`
	String   string `json:"string" yaml:"string"`
	Comment  string `json:"comment" yaml:"comment"`
	Number   string `json:"number" yaml:"number"`
	Operator string `json:"operator" yaml:"operator"`
	Function string `json:"function" yaml:"function"`
	Variable string `json:"variable" yaml:"variable"`
	TypeName string `json:"type_name" yaml:"type_name"`
}

// Window styles the optional chrome around the code area.
type Window struct {
	Style        WindowStyle `json:"style" yaml:"style"`
	ShowTitleBar bool        `json:"show_title_bar" yaml:"show_title_bar"`
	Title        string      `json:"title,omitempty" yaml:"title,omitempty"`
	ShowControls bool        `json:"show_controls" yaml:"show_controls"`
	BorderRadius float64     `json:"border_radius" yaml:"border_radius"`
	Shadow       bool        `json:"shadow" yaml:"shadow"`
}

// Typography styles the rendered text.
type Typography struct {
	FontFamily      string  `json:"font_family" yaml:"font_family"`
	FontSize        float64 `json:"font_size" yaml:"font_size"`
	LineHeight      float64 `json:"line_height" yaml:"line_height"`
	LetterSpacing   float64 `json:"letter_spacing" yaml:"letter_spacing"`
	ShowLineNumbers bool    `json:"show_line_numbers" yaml:"show_line_numbers"`
}

// Validate checks colors, opacity and typography bounds.
func (t *Theme) Validate() error {
	if t.Background.Opacity < 0 || t.Background.Opacity > 1 {
		return apperr.Theme("background opacity must be between 0.0 and 1.0")
	}

	colors := []string{
		t.Background.Primary,
		t.Syntax.Keyword,
		t.Syntax.String,
		t.Syntax.Comment,
		t.Syntax.Number,
		t.Syntax.Operator,
		t.Syntax.Function,
		t.Syntax.Variable,
		t.Syntax.TypeName,
	}
	for _, c := range colors {
		if !ValidHex(c) {
			return apperr.Theme("invalid color format: %s", c)
		}
	}
	if t.Background.Secondary != "" && !ValidHex(t.Background.Secondary) {
		return apperr.Theme("invalid secondary color format: %s", t.Background.Secondary)
	}

	if t.Typography.FontSize <= 0 {
		return apperr.Theme("font size must be greater than 0")
	}
	if t.Typography.LineHeight <= 0 {
		return apperr.Theme("line height must be greater than 0")
	}
	if t.Window.BorderRadius < 0 {
		return apperr.Theme("border radius cannot be negative")
	}

	return nil
}

// SyntaxColor returns the configured color for a highlighter token
// class, falling back to the operator color for unknown classes.
func (s Syntax) SyntaxColor(class string) string {
	switch class {
	case "keyword":
		return s.Keyword
	case "string":
		return s.String
	case "comment":
		return s.Comment
	case "number":
		return s.Number
	case "function":
		return s.Function
	case "variable":
		return s.Variable
	case "type":
		return s.TypeName
	default:
		return s.Operator
	}
}
