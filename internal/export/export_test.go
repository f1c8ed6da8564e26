package export

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/snipframe-cloud/snipframe/internal/highlight"
	"github.com/snipframe-cloud/snipframe/internal/render"
	"github.com/snipframe-cloud/snipframe/internal/theme"
	"github.com/snipframe-cloud/snipframe/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func intPtr(v int) *int { return &v }

type ExportTestSuite struct {
	suite.Suite
	exporter *Exporter
	th       theme.Theme
}

func (s *ExportTestSuite) SetupTest() {
	s.exporter = New(highlight.New(), render.New(), 16, time.Minute)
	s.th = theme.DefaultDark()
}

func (s *ExportTestSuite) TestPNGExport() {
	res, err := s.exporter.Export("package main", "go", s.th, Options{Format: FormatPNG})

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), FormatPNG, res.Format)
	assert.Equal(s.T(), len(res.Bytes), res.ByteSize)
	assert.NotEmpty(s.T(), res.ExportID)

	img, err := png.Decode(bytes.NewReader(res.Bytes))
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), res.Width, img.Bounds().Dx())
	assert.Equal(s.T(), res.Height, img.Bounds().Dy())
}

func (s *ExportTestSuite) TestCompressionLevelAloneTakesEffect() {
	uncompressed, err := s.exporter.Export("package main", "go", s.th, Options{
		Format:           FormatPNG,
		CompressionLevel: intPtr(0),
	})
	assert.Nil(s.T(), err)

	compressed, err := s.exporter.Export("package main", "go", s.th, Options{
		Format:           FormatPNG,
		CompressionLevel: intPtr(9),
	})
	assert.Nil(s.T(), err)

	assert.Greater(s.T(), uncompressed.ByteSize, compressed.ByteSize)

	_, err = png.Decode(bytes.NewReader(uncompressed.Bytes))
	assert.Nil(s.T(), err)
}

func (s *ExportTestSuite) TestJPEGExport() {
	res, err := s.exporter.Export("package main", "go", s.th, Options{
		Format:  FormatJPEG,
		Quality: intPtr(75),
	})

	assert.Nil(s.T(), err)
	_, err = jpeg.Decode(bytes.NewReader(res.Bytes))
	assert.Nil(s.T(), err)
}

func (s *ExportTestSuite) TestSVGExport() {
	res, err := s.exporter.Export(`if a < b { c = "x&y" }`, "go", s.th, Options{Format: FormatSVG})

	assert.Nil(s.T(), err)
	doc := string(res.Bytes)
	assert.True(s.T(), strings.HasPrefix(doc, "<svg"))
	assert.Contains(s.T(), doc, "&lt;")
	assert.Contains(s.T(), doc, "&amp;")
	assert.Contains(s.T(), doc, "#ff5f57")
	assert.Contains(s.T(), doc, "linearGradient")
	assert.NotContains(s.T(), doc, `c = "x&y"`)
}

func (s *ExportTestSuite) TestSVGScalesGeometry() {
	std, err := s.exporter.Export("package main", "go", s.th, Options{Format: FormatSVG})
	assert.Nil(s.T(), err)
	high, err := s.exporter.Export("package main", "go", s.th, Options{Format: FormatSVG, Resolution: ResolutionHigh})
	assert.Nil(s.T(), err)

	assert.Equal(s.T(), std.Width*2, high.Width)
	assert.Equal(s.T(), std.Height*2, high.Height)
}

func (s *ExportTestSuite) TestValidationRejectsBeforeWork() {
	cases := []Options{
		{Format: "gif"},
		{Format: FormatJPEG, Quality: intPtr(150)},
		{Format: FormatJPEG, Quality: intPtr(0)},
		{Format: FormatPNG, CompressionLevel: intPtr(10)},
		{Format: FormatPNG, CompressionLevel: intPtr(-1)},
		{Format: FormatPNG, Width: 50},
		{Format: FormatPNG, Height: 9000},
		{Format: FormatPNG, Resolution: "retina"},
	}
	for _, opts := range cases {
		_, err := s.exporter.Export("package main", "go", s.th, opts)
		assert.True(s.T(), apperr.Is(err, apperr.KindValidation), "%+v", opts)
	}
}

func (s *ExportTestSuite) TestBoundaryValuesAccepted() {
	for _, opts := range []Options{
		{Format: FormatJPEG, Quality: intPtr(1)},
		{Format: FormatJPEG, Quality: intPtr(100)},
		{Format: FormatPNG, CompressionLevel: intPtr(0)},
		{Format: FormatPNG, CompressionLevel: intPtr(9)},
	} {
		assert.Nil(s.T(), opts.Validate(), "%+v", opts)
	}
}

func (s *ExportTestSuite) TestEmptyCodeRejected() {
	_, err := s.exporter.Export("", "go", s.th, Options{Format: FormatPNG})
	assert.True(s.T(), apperr.Is(err, apperr.KindValidation))
}

func (s *ExportTestSuite) TestExplicitDimensions() {
	res, err := s.exporter.Export("package main", "go", s.th, Options{
		Format: FormatPNG,
		Width:  800,
		Height: 400,
	})

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), 800, res.Width)
	assert.Equal(s.T(), 400, res.Height)
}

func (s *ExportTestSuite) TestCacheHitGetsFreshExportID() {
	opts := Options{Format: FormatPNG}

	first, err := s.exporter.Export("package main", "go", s.th, opts)
	assert.Nil(s.T(), err)
	second, err := s.exporter.Export("package main", "go", s.th, opts)
	assert.Nil(s.T(), err)

	assert.Equal(s.T(), first.Bytes, second.Bytes)
	assert.NotEqual(s.T(), first.ExportID, second.ExportID)
}

func (s *ExportTestSuite) TestDifferentOptionsMissCache() {
	a, err := s.exporter.Export("package main", "go", s.th, Options{Format: FormatJPEG, Quality: intPtr(10)})
	assert.Nil(s.T(), err)
	b, err := s.exporter.Export("package main", "go", s.th, Options{Format: FormatJPEG, Quality: intPtr(95)})
	assert.Nil(s.T(), err)

	assert.NotEqual(s.T(), a.Bytes, b.Bytes)
}

type failingRasterizer struct{}

func (failingRasterizer) Render(*highlight.Result, theme.Theme, float64) (image.Image, error) {
	return nil, apperr.ImageGeneration("canvas allocation failed")
}

func (s *ExportTestSuite) TestRasterizerFailureIsRetryable() {
	e := New(highlight.New(), failingRasterizer{}, 0, 0)

	_, err := e.Export("package main", "go", s.th, Options{Format: FormatPNG})
	assert.True(s.T(), apperr.Is(err, apperr.KindImageGeneration))
	assert.True(s.T(), apperr.Retryable(err))
}

func (s *ExportTestSuite) TestSVGBypassesRasterizer() {
	e := New(highlight.New(), failingRasterizer{}, 0, 0)

	res, err := e.Export("package main", "go", s.th, Options{
		Format:           FormatSVG,
		CompressionLevel: intPtr(5),
		DPI:              300,
	})
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), FormatSVG, res.Format)
}

func TestExportTestSuite(t *testing.T) {
	suite.Run(t, new(ExportTestSuite))
}

func TestFormatContentType(t *testing.T) {
	assert.Equal(t, "image/png", FormatPNG.ContentType())
	assert.Equal(t, "image/jpeg", FormatJPEG.ContentType())
	assert.Equal(t, "image/svg+xml", FormatSVG.ContentType())
}

func TestResolutionScale(t *testing.T) {
	assert.Equal(t, 1.0, ResolutionStandard.Scale())
	assert.Equal(t, 2.0, ResolutionHigh.Scale())
	assert.Equal(t, 3.0, ResolutionUltra.Scale())
	assert.Equal(t, 1.0, Resolution("").Scale())
}
