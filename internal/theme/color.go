package theme

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/snipframe-cloud/snipframe/pkg/apperr"
)

// ValidHex reports whether s is a #rgb, #rrggbb or #rrggbbaa color.
func ValidHex(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 && len(hex) != 8 {
		return false
	}
	for _, c := range hex {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// ParseHex converts a #rgb, #rrggbb or #rrggbbaa string to an RGBA
// color.
func ParseHex(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, apperr.Theme("invalid color format: %s", s)
	}

	hex := s[1:]
	var r, g, b, a uint64
	var err error
	a = 255

	switch len(hex) {
	case 3:
		if r, err = strconv.ParseUint(strings.Repeat(hex[0:1], 2), 16, 8); err == nil {
			if g, err = strconv.ParseUint(strings.Repeat(hex[1:2], 2), 16, 8); err == nil {
				b, err = strconv.ParseUint(strings.Repeat(hex[2:3], 2), 16, 8)
			}
		}
	case 6, 8:
		if r, err = strconv.ParseUint(hex[0:2], 16, 8); err == nil {
			if g, err = strconv.ParseUint(hex[2:4], 16, 8); err == nil {
				b, err = strconv.ParseUint(hex[4:6], 16, 8)
			}
		}
		if err == nil && len(hex) == 8 {
			a, err = strconv.ParseUint(hex[6:8], 16, 8)
		}
	default:
		return color.RGBA{}, apperr.Theme("invalid hex color length: %s", s)
	}

	if err != nil {
		return color.RGBA{}, apperr.Theme("invalid hex color: %s", s)
	}

	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}

// ColorValidation is the outcome of validating a user-supplied color,
// with a suggestion when the input is close to a valid form.
type ColorValidation struct {
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Message    string `json:"message,omitempty"`
}

// ValidateColor checks a user-supplied color string and suggests a
// correction for common mistakes such as a missing leading '#'.
func ValidateColor(input string) ColorValidation {
	trimmed := strings.TrimSpace(input)

	if ValidHex(trimmed) {
		return ColorValidation{Valid: true, Normalized: strings.ToLower(trimmed)}
	}

	if trimmed != "" && !strings.HasPrefix(trimmed, "#") && ValidHex("#"+trimmed) {
		return ColorValidation{
			Valid:      false,
			Suggestion: strings.ToLower("#" + trimmed),
			Message:    "colors must start with '#'",
		}
	}

	return ColorValidation{
		Valid:   false,
		Message: fmt.Sprintf("%q is not a hex color such as #1e1e1e", input),
	}
}
