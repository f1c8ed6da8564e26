// Package render rasterizes highlighted snippets into images styled by
// a theme. Cards are composed at base resolution and upscaled for the
// higher resolution tiers.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/snipframe-cloud/snipframe/internal/highlight"
	"github.com/snipframe-cloud/snipframe/internal/theme"
	"github.com/snipframe-cloud/snipframe/pkg/apperr"
)

const (
	charWidth  = 7
	charHeight = 13
	padding    = 40
	titleBarH  = 30
	minWidth   = 320

	maxDimension = 8000
)

// Renderer composes highlighted lines into a themed card image.
type Renderer struct {
	face font.Face
}

// New returns a renderer using the built-in monospace face.
func New() *Renderer {
	return &Renderer{face: basicfont.Face7x13}
}

// Render draws result as a card styled by th and returns the image
// upscaled by scale. Scale 1 is the standard tier.
func (r *Renderer) Render(result *highlight.Result, th theme.Theme, scale float64) (image.Image, error) {
	if scale <= 0 {
		return nil, apperr.ImageGeneration("invalid render scale %v", scale)
	}

	layout := computeLayout(result, th)

	if float64(layout.width)*scale > maxDimension || float64(layout.height)*scale > maxDimension {
		return nil, apperr.ImageGeneration(
			"rendered image %dx%d at scale %v exceeds the %dpx limit",
			layout.width, layout.height, scale, maxDimension,
		)
	}

	img := image.NewRGBA(image.Rect(0, 0, layout.width, layout.height))

	if err := r.drawBackground(img, th.Background); err != nil {
		return nil, err
	}
	r.drawChrome(img, layout, th)
	if err := r.drawCode(img, layout, result, th); err != nil {
		return nil, err
	}

	if scale == 1 {
		return img, nil
	}
	return upscale(img, scale), nil
}

type layout struct {
	width      int
	height     int
	chromeH    int
	gutterW    int
	lineH      int
	textX      int
	textY      int
	showChrome bool
}

func computeLayout(result *highlight.Result, th theme.Theme) layout {
	l := layout{
		lineH:      int(float64(charHeight) * th.Typography.LineHeight),
		showChrome: th.Window.Style != theme.WindowClean && th.Window.ShowTitleBar,
	}
	if l.lineH < charHeight {
		l.lineH = charHeight
	}
	if l.showChrome {
		l.chromeH = titleBarH
	}

	if th.Typography.ShowLineNumbers {
		digits := 1
		for n := result.TotalLines; n >= 10; n /= 10 {
			digits++
		}
		l.gutterW = digits*charWidth + 2*charWidth
	}

	longest := 0
	for _, line := range result.Lines {
		length := 0
		for _, seg := range line.Segments {
			length += len(seg.Text)
		}
		if length > longest {
			longest = length
		}
	}

	l.width = 2*padding + l.gutterW + longest*charWidth
	if l.width < minWidth {
		l.width = minWidth
	}
	l.height = 2*padding + l.chromeH + result.TotalLines*l.lineH
	l.textX = padding + l.gutterW
	l.textY = padding + l.chromeH

	return l
}

func (r *Renderer) drawBackground(img *image.RGBA, bg theme.Background) error {
	primary, err := theme.ParseHex(bg.Primary)
	if err != nil {
		return err
	}
	primary.A = uint8(bg.Opacity * 255)

	bounds := img.Bounds()

	if bg.Type == theme.BackgroundGradient && bg.Secondary != "" {
		secondary, err := theme.ParseHex(bg.Secondary)
		if err != nil {
			return err
		}
		secondary.A = primary.A

		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			t := float64(y) / float64(bounds.Dy())
			row := lerp(primary, secondary, t)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				img.SetRGBA(x, y, row)
			}
		}
		return nil
	}

	draw.Draw(img, bounds, &image.Uniform{C: primary}, image.Point{}, draw.Src)
	return nil
}

var trafficLights = []color.RGBA{
	{R: 0xff, G: 0x5f, B: 0x57, A: 0xff},
	{R: 0xff, G: 0xbd, B: 0x2e, A: 0xff},
	{R: 0x28, G: 0xca, B: 0x42, A: 0xff},
}

func (r *Renderer) drawChrome(img *image.RGBA, l layout, th theme.Theme) {
	if !l.showChrome {
		return
	}

	if th.Window.ShowControls && th.Window.Style == theme.WindowMacOS {
		for i, c := range trafficLights {
			fillCircle(img, 15+i*20, titleBarH/2, 6, c)
		}
	}

	if th.Window.Title != "" {
		titleColor, err := theme.ParseHex(th.Syntax.Comment)
		if err != nil {
			return
		}
		x := (l.width - len(th.Window.Title)*charWidth) / 2
		if x < 70 {
			x = 70
		}
		r.drawString(img, th.Window.Title, x, titleBarH/2+charHeight/2, titleColor, false)
	}
}

func (r *Renderer) drawCode(img *image.RGBA, l layout, result *highlight.Result, th theme.Theme) error {
	gutterColor, err := theme.ParseHex(th.Syntax.Comment)
	if err != nil {
		return err
	}

	for i, line := range result.Lines {
		baseline := l.textY + i*l.lineH + charHeight

		if th.Typography.ShowLineNumbers {
			num := strconv.Itoa(line.Number)
			x := padding + l.gutterW - 2*charWidth - len(num)*charWidth
			if x < padding {
				x = padding
			}
			r.drawString(img, num, x, baseline, gutterColor, false)
		}

		x := l.textX
		for _, seg := range line.Segments {
			c, err := theme.ParseHex(seg.Color)
			if err != nil {
				return err
			}
			r.drawString(img, seg.Text, x, baseline, c, seg.Bold)
			x += len(seg.Text) * charWidth
		}
	}

	return nil
}

// drawString draws s at the given baseline. Bold is approximated by
// double-striking one pixel to the right.
func (r *Renderer) drawString(img *image.RGBA, s string, x, baseline int, c color.RGBA, bold bool) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: c},
		Face: r.face,
		Dot:  fixed.P(x, baseline),
	}
	drawer.DrawString(s)

	if bold {
		drawer.Dot = fixed.P(x+1, baseline)
		drawer.DrawString(s)
	}
}

func fillCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				img.SetRGBA(cx+dx, cy+dy, c)
			}
		}
	}
}

func upscale(img *image.RGBA, scale float64) image.Image {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(
		0, 0,
		int(float64(bounds.Dx())*scale),
		int(float64(bounds.Dy())*scale),
	))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: a.A,
	}
}
