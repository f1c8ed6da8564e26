package export

import (
	"github.com/snipframe-cloud/snipframe/pkg/apperr"
)

// Format is the requested artifact encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
)

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the artifact file extension for f, without a dot.
func (f Format) Extension() string {
	return string(f)
}

// Resolution is the requested output density tier.
type Resolution string

const (
	ResolutionStandard Resolution = "standard"
	ResolutionHigh     Resolution = "high"
	ResolutionUltra    Resolution = "ultra"
)

// Scale returns the raster multiplier for r. Unknown values render at
// the standard tier.
func (r Resolution) Scale() float64 {
	switch r {
	case ResolutionHigh:
		return 2
	case ResolutionUltra:
		return 3
	default:
		return 1
	}
}

// Options describes one export request. Pointer fields distinguish
// client-provided values from absent ones. DPI is accepted but has no
// effect on the output: raster pixels are sized by Resolution and the
// encoders write no density metadata, and SVG ignores it along with
// CompressionLevel.
type Options struct {
	Format           Format     `json:"format"`
	Resolution       Resolution `json:"resolution,omitempty"`
	Quality          *int       `json:"quality,omitempty"`
	Width            int        `json:"width,omitempty"`
	Height           int        `json:"height,omitempty"`
	CompressionLevel *int       `json:"compression_level,omitempty"`
	DPI              int        `json:"dpi,omitempty"`
	Progressive      bool       `json:"progressive,omitempty"`
	IncludeMetadata  bool       `json:"include_metadata,omitempty"`
}

const (
	defaultJPEGQuality = 90

	minDimension = 100
	maxDimension = 8000
)

// Validate checks format-specific bounds. It performs no work beyond
// validation so a rejection leaves no partial state anywhere.
func (o Options) Validate() error {
	switch o.Format {
	case FormatPNG, FormatJPEG, FormatSVG:
	default:
		return apperr.Validation("unsupported export format: %q", o.Format)
	}

	switch o.Resolution {
	case "", ResolutionStandard, ResolutionHigh, ResolutionUltra:
	default:
		return apperr.Validation("unsupported resolution: %q", o.Resolution)
	}

	if o.Quality != nil && (*o.Quality < 1 || *o.Quality > 100) {
		return apperr.Validation("jpeg quality must be between 1 and 100, got %d", *o.Quality)
	}

	if o.CompressionLevel != nil && (*o.CompressionLevel < 0 || *o.CompressionLevel > 9) {
		return apperr.Validation("png compression level must be between 0 and 9, got %d", *o.CompressionLevel)
	}

	for _, dim := range []struct {
		name  string
		value int
	}{{"width", o.Width}, {"height", o.Height}} {
		if dim.value != 0 && (dim.value < minDimension || dim.value > maxDimension) {
			return apperr.Validation(
				"%s must be between %d and %d, got %d",
				dim.name, minDimension, maxDimension, dim.value,
			)
		}
	}

	return nil
}

// quality returns the effective JPEG quality.
func (o Options) quality() int {
	if o.Quality != nil {
		return *o.Quality
	}
	return defaultJPEGQuality
}
