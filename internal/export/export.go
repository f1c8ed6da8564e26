// Package export runs the synchronous pipeline turning snippet source
// into an encoded artifact in the requested format.
package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"time"

	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	"github.com/snipframe-cloud/snipframe/internal/highlight"
	"github.com/snipframe-cloud/snipframe/internal/theme"
	"github.com/snipframe-cloud/snipframe/pkg/apperr"
	"github.com/snipframe-cloud/snipframe/pkg/cache"
	"github.com/snipframe-cloud/snipframe/pkg/log"
)

// Highlighter tokenizes source into styled lines.
type Highlighter interface {
	Highlight(code, language string, syn theme.Syntax) (*highlight.Result, error)
}

// Rasterizer draws styled lines into an image at the given scale.
type Rasterizer interface {
	Render(result *highlight.Result, th theme.Theme, scale float64) (image.Image, error)
}

// Result is one encoded artifact.
type Result struct {
	Bytes    []byte `json:"-"`
	Format   Format `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	ByteSize int    `json:"byte_size"`
	ExportID string `json:"export_id"`
}

// Exporter composes the highlighting and raster adapters behind a
// render cache keyed by the full request fingerprint.
type Exporter struct {
	highlighter Highlighter
	rasterizer  Rasterizer
	renderCache *cache.Cache[string, Result]
}

// New returns an exporter. cacheSize 0 disables result caching.
func New(h Highlighter, r Rasterizer, cacheSize int, cacheTTL time.Duration) *Exporter {
	var c *cache.Cache[string, Result]
	if cacheSize > 0 {
		c = cache.WithTTLAndMaxSize[string, Result](cacheTTL, cacheSize)
	}
	return &Exporter{highlighter: h, rasterizer: r, renderCache: c}
}

// Export validates opts and runs the pipeline for the requested
// format. Validation failures reject before any rendering happens.
func (e *Exporter) Export(code, language string, th theme.Theme, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, apperr.Validation("snippet code cannot be empty")
	}

	key := cacheKey(code, language, th, opts)
	if e.renderCache != nil {
		if cached, ok := e.renderCache.Get(key); ok {
			fresh := cached
			fresh.ExportID = uuid.New().String()
			return &fresh, nil
		}
	}

	styled, err := e.highlighter.Highlight(code, language, th.Syntax)
	if err != nil {
		return nil, err
	}

	var result *Result
	switch opts.Format {
	case FormatSVG:
		result, err = e.exportSVG(styled, th, opts)
	default:
		result, err = e.exportRaster(styled, th, opts)
	}
	if err != nil {
		return nil, err
	}

	result.ByteSize = len(result.Bytes)
	result.ExportID = uuid.New().String()

	if e.renderCache != nil {
		e.renderCache.Set(key, *result)
	}
	return result, nil
}

// SweepCache drops expired render cache entries and returns how many
// were removed.
func (e *Exporter) SweepCache() int {
	if e.renderCache == nil {
		return 0
	}
	return e.renderCache.SweepExpired()
}

func (e *Exporter) exportRaster(styled *highlight.Result, th theme.Theme, opts Options) (*Result, error) {
	img, err := e.rasterizer.Render(styled, th, opts.Resolution.Scale())
	if err != nil {
		return nil, err
	}

	if opts.Width != 0 || opts.Height != 0 {
		img = resize(img, opts.Width, opts.Height)
	}

	if opts.Progressive {
		log.Warn("progressive jpeg encoding is not supported, emitting baseline")
	}

	var buf bytes.Buffer
	switch opts.Format {
	case FormatJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.quality()})
	default:
		if opts.CompressionLevel != nil {
			encoder := png.Encoder{CompressionLevel: pngLevel(*opts.CompressionLevel)}
			err = encoder.Encode(&buf, img)
		} else {
			err = png.Encode(&buf, img)
		}
	}
	if err != nil {
		return nil, apperr.ImageGeneration("encoding %s artifact", opts.Format).Wrap(err)
	}

	bounds := img.Bounds()
	return &Result{
		Bytes:  buf.Bytes(),
		Format: opts.Format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// pngLevel buckets the 0-9 request scale onto the encoder's levels.
func pngLevel(level int) png.CompressionLevel {
	switch {
	case level == 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// resize scales img to the requested dimensions. A single zero
// dimension is derived from the source aspect ratio.
func resize(img image.Image, width, height int) image.Image {
	src := img.Bounds()
	if width == 0 {
		width = src.Dx() * height / src.Dy()
	}
	if height == 0 {
		height = src.Dy() * width / src.Dx()
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
	return dst
}

// cacheKey fingerprints the full request. Two requests with the same
// key produce byte-identical artifacts.
func cacheKey(code, language string, th theme.Theme, opts Options) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00", code, language, th.ID)
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00%d\x00%d\x00%v\x00", opts.Format, opts.Resolution, opts.Width, opts.Height, opts.DPI, opts.Progressive)
	if opts.Quality != nil {
		fmt.Fprintf(h, "q%d", *opts.Quality)
	}
	if opts.CompressionLevel != nil {
		fmt.Fprintf(h, "c%d", *opts.CompressionLevel)
	}
	fmt.Fprintf(h, "\x00%+v%+v%+v%+v", th.Background, th.Syntax, th.Window, th.Typography)
	return hex.EncodeToString(h.Sum(nil))
}
