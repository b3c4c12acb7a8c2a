// Package docgen renders formdesk documents as raster images using the
// configured font table.
package docgen

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/louisbranch/formdesk/internal/platform/assets/fonts"
)

const (
	pageWidth  = 640
	marginX    = 48
	marginTop  = 64
	titleSize  = 26
	bodySize   = 14
	footerSize = 11
	renderDPI  = 96
)

// Document is one text document to rasterize.
//
// The title is set in the bold weight, body lines in regular, and the footer
// in medium.
type Document struct {
	Title  string
	Lines  []string
	Footer string
}

// Renderer draws documents with the three configured font weights.
//
// A Renderer is immutable after New and safe for concurrent use.
type Renderer struct {
	title  font.Face
	body   font.Face
	footer font.Face
}

// New builds a renderer from a populated font table.
//
// The table must carry every weight; a table produced by fonts.Load always
// does.
func New(table *fonts.Table) (*Renderer, error) {
	title, err := newFace(table, fonts.WeightBold, titleSize)
	if err != nil {
		return nil, err
	}
	body, err := newFace(table, fonts.WeightRegular, bodySize)
	if err != nil {
		return nil, err
	}
	footer, err := newFace(table, fonts.WeightMedium, footerSize)
	if err != nil {
		return nil, err
	}
	return &Renderer{title: title, body: body, footer: footer}, nil
}

func newFace(table *fonts.Table, weight fonts.Weight, size float64) (font.Face, error) {
	parsed := table.Font(weight)
	if parsed == nil {
		return nil, fmt.Errorf("font table is missing the %s weight", weight)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     renderDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build %s face: %w", weight, err)
	}
	return face, nil
}

// RenderPNG rasterizes the document and writes it as PNG.
func (r *Renderer) RenderPNG(w io.Writer, doc Document) error {
	titleHeight := lineHeight(r.title)
	bodyHeight := lineHeight(r.body)
	footerHeight := lineHeight(r.footer)

	height := marginTop + titleHeight + bodyHeight // gap below the title
	height += bodyHeight * len(doc.Lines)
	if doc.Footer != "" {
		height += footerHeight * 2
	}
	height += marginTop / 2

	canvas := image.NewRGBA(image.Rect(0, 0, pageWidth, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	ink := image.NewUniform(color.RGBA{R: 0x1f, G: 0x26, B: 0x2e, A: 0xff})
	y := marginTop

	drawLine(canvas, r.title, ink, doc.Title, y)
	y += titleHeight + bodyHeight

	for _, line := range doc.Lines {
		drawLine(canvas, r.body, ink, line, y)
		y += bodyHeight
	}

	if doc.Footer != "" {
		y += footerHeight
		faded := image.NewUniform(color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff})
		drawLine(canvas, r.footer, faded, doc.Footer, y)
	}

	if err := png.Encode(w, canvas); err != nil {
		return fmt.Errorf("encode document png: %w", err)
	}
	return nil
}

func drawLine(dst draw.Image, face font.Face, src image.Image, text string, baseline int) {
	if text == "" {
		return
	}
	drawer := font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot:  fixed.P(marginX, baseline),
	}
	drawer.DrawString(text)
}

func lineHeight(face font.Face) int {
	metrics := face.Metrics()
	return (metrics.Height + metrics.Descent).Ceil()
}
