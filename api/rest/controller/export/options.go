package export

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/internal/export"
)

// Capabilities describes what the export pipeline accepts.
type Capabilities struct {
	Formats     []export.Format     `json:"formats"`
	Resolutions []export.Resolution `json:"resolutions"`
	Quality     Bounds              `json:"quality"`
	Compression Bounds              `json:"compression_level"`
	Dimensions  Bounds              `json:"dimensions"`
}

// Bounds is an inclusive integer range.
type Bounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Options advertises the supported formats and option bounds.
func Options() echo.HandlerFunc {
	capabilities := Capabilities{
		Formats:     []export.Format{export.FormatPNG, export.FormatJPEG, export.FormatSVG},
		Resolutions: []export.Resolution{export.ResolutionStandard, export.ResolutionHigh, export.ResolutionUltra},
		Quality:     Bounds{Min: 1, Max: 100},
		Compression: Bounds{Min: 0, Max: 9},
		Dimensions:  Bounds{Min: 100, Max: 8000},
	}

	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, capabilities)
	}
}
