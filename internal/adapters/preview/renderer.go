// Package preview draws design previews as PNG images.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/barakadvert/storefront/internal/domain"
)

const size = 400

var (
	canvasBg = color.RGBA{0xF3, 0xF4, 0xF6, 0xFF}
	accent   = color.RGBA{0xFF, 0x6A, 0x00, 0xFF}
)

// Renderer is a stateless PNG renderer; safe for concurrent use.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

func (r *Renderer) Render(ctx context.Context, cfg domain.ProductDesignConfig) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fill, err := parseHex(cfg.Color)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{canvasBg}, image.Point{}, draw.Src)

	body := productShape(cfg.ProductType)
	draw.Draw(img, body, &image.Uniform{fill}, image.Point{}, draw.Src)
	if cfg.ProductType == domain.ProductMug {
		// handle
		draw.Draw(img, image.Rect(body.Max.X, body.Min.Y+40, body.Max.X+30, body.Max.Y-60), &image.Uniform{fill}, image.Point{}, draw.Src)
	}

	ink := contrast(fill)
	switch cfg.DesignStyle {
	case domain.DesignLogo:
		mark := image.Rect(size/2-30, body.Min.Y+40, size/2+30, body.Min.Y+100)
		draw.Draw(img, mark, &image.Uniform{accent}, image.Point{}, draw.Src)
	case domain.DesignPattern:
		for y := body.Min.Y; y < body.Max.Y; y += 24 {
			stripe := image.Rect(body.Min.X, y, body.Max.X, min(y+8, body.Max.Y))
			draw.Draw(img, stripe, &image.Uniform{accent}, image.Point{}, draw.Over)
		}
	}
	drawCentered(img, cfg.Text, body.Min.Y+(body.Dy()/2)+20, ink)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func productShape(t domain.ProductType) image.Rectangle {
	if t == domain.ProductMug {
		return image.Rect(110, 100, 270, 320)
	}
	return image.Rect(90, 70, 310, 350)
}

func drawCentered(img draw.Image, text string, baseline int, c color.Color) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P((size-width)/2, baseline),
	}
	d.DrawString(text)
}

func parseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

// contrast picks black or white ink for a background.
func contrast(bg color.RGBA) color.Color {
	lum := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if lum > 150 {
		return color.Black
	}
	return color.White
}
