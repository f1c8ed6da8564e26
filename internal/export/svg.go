package export

import (
	"fmt"
	"strings"

	"github.com/snipframe-cloud/snipframe/internal/highlight"
	"github.com/snipframe-cloud/snipframe/internal/theme"
)

const (
	svgPadding    = 40.0
	svgTitleBarH  = 30.0
	svgMinWidth   = 320.0
	charAdvance   = 0.6
	trafficLightR = 6.0
)

var svgTrafficLights = []string{"#ff5f57", "#ffbd2e", "#28ca42"}

// exportSVG emits a self-contained vector document. The raster adapter
// is bypassed entirely, so the density tiers scale the geometry here.
func (e *Exporter) exportSVG(styled *highlight.Result, th theme.Theme, opts Options) (*Result, error) {
	scale := opts.Resolution.Scale()
	geo := svgGeometry(styled, th, scale)

	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		int(geo.width), int(geo.height), int(geo.width), int(geo.height),
	)
	b.WriteString("\n")

	writeSVGBackground(&b, th, geo)
	writeSVGChrome(&b, th, geo)
	writeSVGCode(&b, styled, th, geo)

	b.WriteString("</svg>\n")

	return &Result{
		Bytes:  []byte(b.String()),
		Format: FormatSVG,
		Width:  int(geo.width),
		Height: int(geo.height),
	}, nil
}

type svgGeo struct {
	width      float64
	height     float64
	padding    float64
	chromeH    float64
	gutterW    float64
	fontSize   float64
	charW      float64
	lineH      float64
	textX      float64
	textY      float64
	showChrome bool
}

func svgGeometry(styled *highlight.Result, th theme.Theme, scale float64) svgGeo {
	g := svgGeo{
		padding:    svgPadding * scale,
		fontSize:   th.Typography.FontSize * scale,
		showChrome: th.Window.Style != theme.WindowClean && th.Window.ShowTitleBar,
	}
	g.charW = g.fontSize * charAdvance
	g.lineH = g.fontSize * th.Typography.LineHeight
	if g.showChrome {
		g.chromeH = svgTitleBarH * scale
	}

	if th.Typography.ShowLineNumbers {
		digits := len(fmt.Sprint(styled.TotalLines))
		g.gutterW = float64(digits+2) * g.charW
	}

	longest := 0
	for _, line := range styled.Lines {
		length := 0
		for _, seg := range line.Segments {
			length += len(seg.Text)
		}
		if length > longest {
			longest = length
		}
	}

	g.width = 2*g.padding + g.gutterW + float64(longest)*g.charW
	if g.width < svgMinWidth*scale {
		g.width = svgMinWidth * scale
	}
	g.height = 2*g.padding + g.chromeH + float64(styled.TotalLines)*g.lineH
	g.textX = g.padding + g.gutterW
	g.textY = g.padding + g.chromeH

	return g
}

func writeSVGBackground(b *strings.Builder, th theme.Theme, g svgGeo) {
	fill := th.Background.Primary

	if th.Background.Type == theme.BackgroundGradient && th.Background.Secondary != "" {
		fmt.Fprintf(b,
			`<defs><linearGradient id="bg" x1="0" y1="0" x2="0" y2="1">`+
				`<stop offset="0%%" stop-color="%s"/>`+
				`<stop offset="100%%" stop-color="%s"/>`+
				`</linearGradient></defs>`+"\n",
			th.Background.Primary, th.Background.Secondary,
		)
		fill = "url(#bg)"
	}

	fmt.Fprintf(b,
		`<rect width="%d" height="%d" rx="%g" fill="%s" fill-opacity="%g"/>`+"\n",
		int(g.width), int(g.height), th.Window.BorderRadius, fill, th.Background.Opacity,
	)
}

func writeSVGChrome(b *strings.Builder, th theme.Theme, g svgGeo) {
	if !g.showChrome {
		return
	}

	if th.Window.ShowControls && th.Window.Style == theme.WindowMacOS {
		for i, c := range svgTrafficLights {
			fmt.Fprintf(b,
				`<circle cx="%g" cy="%g" r="%g" fill="%s"/>`+"\n",
				15.0+float64(i)*20.0, g.chromeH/2, trafficLightR, c,
			)
		}
	}

	if th.Window.Title != "" {
		fmt.Fprintf(b,
			`<text x="%g" y="%g" text-anchor="middle" font-family="%s" font-size="%g" fill="%s">%s</text>`+"\n",
			g.width/2, g.chromeH/2+g.fontSize/3,
			escapeXML(th.Typography.FontFamily), g.fontSize*0.85,
			th.Syntax.Comment, escapeXML(th.Window.Title),
		)
	}
}

func writeSVGCode(b *strings.Builder, styled *highlight.Result, th theme.Theme, g svgGeo) {
	fmt.Fprintf(b,
		`<g font-family="%s" font-size="%g" xml:space="preserve">`+"\n",
		escapeXML(th.Typography.FontFamily), g.fontSize,
	)

	for i, line := range styled.Lines {
		baseline := g.textY + float64(i)*g.lineH + g.fontSize

		if th.Typography.ShowLineNumbers {
			fmt.Fprintf(b,
				`<text x="%g" y="%g" text-anchor="end" fill="%s">%d</text>`+"\n",
				g.padding+g.gutterW-2*g.charW, baseline, th.Syntax.Comment, line.Number,
			)
		}

		x := g.textX
		for _, seg := range line.Segments {
			style := ""
			if seg.Bold {
				style += ` font-weight="bold"`
			}
			if seg.Italic {
				style += ` font-style="italic"`
			}
			fmt.Fprintf(b,
				`<text x="%g" y="%g" fill="%s"%s>%s</text>`+"\n",
				x, baseline, seg.Color, style, escapeXML(seg.Text),
			)
			x += float64(len(seg.Text)) * g.charW
		}
	}

	b.WriteString("</g>\n")
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlReplacer.Replace(s)
}
