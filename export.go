package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/math/fixed"
)

var (
	ErrExportBusy  = errors.New("export already in progress")
	ErrEmptyCanvas = errors.New("base illustration has no pixels")
)

type ExportFormat string

const (
	FormatPNG  ExportFormat = "png"
	FormatWebP ExportFormat = "webp"
)

func (f ExportFormat) Ext() string {
	return "." + string(f)
}

// BeginExport prepares a flatten. The selection is cleared first so no
// affordance can end up in the image, and a deep copy of the scene is
// returned for the rasterizer to work on. Only one export runs at a time.
func (s *Session) BeginExport() ([]Bubble, error) {
	if s.exporting {
		return nil, ErrExportBusy
	}
	s.Select("")
	s.exporting = true
	return s.scene.Snapshot(), nil
}

func (s *Session) EndExport() {
	s.exporting = false
}

func (s *Session) Exporting() bool {
	return s.exporting
}

// Export flattens the session synchronously and returns the encoded image.
// A failure leaves the scene untouched and can be retried.
func (s *Session) Export(format ExportFormat) ([]byte, error) {
	bubbles, err := s.BeginExport()
	if err != nil {
		return nil, err
	}
	defer s.EndExport()

	data, err := renderExport(s.base, bubbles, format)
	if err != nil {
		s.log.WithError(err).Warn("export failed")
		return nil, err
	}
	s.log.WithField("bytes", len(data)).Info("export finished")
	return data, nil
}

func renderExport(base image.Image, bubbles []Bubble, format ExportFormat) ([]byte, error) {
	img, err := Flatten(base, bubbles, exportScale)
	if err != nil {
		return nil, err
	}
	return Encode(img, format)
}

// Encode writes img as PNG or lossless WebP.
func Encode(img image.Image, format ExportFormat) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatPNG, "":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode png: %w", err)
		}
	case FormatWebP:
		if err := webp.Encode(&buf, img, &webp.Options{Lossless: true}); err != nil {
			return nil, fmt.Errorf("failed to encode webp: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	return buf.Bytes(), nil
}

// upscale enlarges the base by an integer factor with nearest-neighbor
// sampling, so every source pixel maps to an exact scale x scale block.
func upscale(base image.Image, scale int) *image.NRGBA {
	b := base.Bounds()
	return imaging.Resize(base, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)
}

// Flatten composites the base illustration and the bubbles into a new image
// scale times the base's size. The base stays non-premultiplied and bubbles
// are rasterized onto a separate overlay, so base pixels no bubble touches
// come out exactly as they went in, alpha included.
func Flatten(base image.Image, bubbles []Bubble, scale int) (img *image.NRGBA, err error) {
	if base == nil || base.Bounds().Empty() {
		return nil, ErrEmptyCanvas
	}
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = fmt.Errorf("rasterize: %v", r)
		}
	}()

	out := upscale(base, scale)
	if len(bubbles) == 0 {
		return out, nil
	}

	overlay := image.NewRGBA(out.Bounds())
	dc := gg.NewContextForRGBA(overlay)
	for _, b := range bubbles {
		if err := drawBubble(dc, b, float64(scale)); err != nil {
			return nil, fmt.Errorf("bubble %s: %w", b.ID, err)
		}
	}
	compositeOver(out, overlay)
	return out, nil
}

// compositeOver blends overlay onto dst with the over operator. Pixels where
// the overlay is fully transparent are not written.
func compositeOver(dst *image.NRGBA, overlay *image.RGBA) {
	b := dst.Bounds().Intersect(overlay.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			src := overlay.RGBAAt(x, y)
			if src.A == 0 {
				continue
			}
			if src.A == 0xff {
				dst.SetNRGBA(x, y, color.NRGBAModel.Convert(src).(color.NRGBA))
				continue
			}
			dr, dg, db, da := dst.NRGBAAt(x, y).RGBA()
			inv := 0xffff - uint32(src.A)*0x101
			dst.Set(x, y, color.RGBA64{
				R: uint16(uint32(src.R)*0x101 + dr*inv/0xffff),
				G: uint16(uint32(src.G)*0x101 + dg*inv/0xffff),
				B: uint16(uint32(src.B)*0x101 + db*inv/0xffff),
				A: uint16(uint32(src.A)*0x101 + da*inv/0xffff),
			})
		}
	}
}

// parseColor accepts "transparent", #rgb, #rrggbb and #rrggbbaa.
func parseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == colorTransparent {
		return color.Transparent, nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func drawBubble(dc *gg.Context, b Bubble, scale float64) error {
	v := Render(b, false)
	x, y := b.X*scale, b.Y*scale
	w, h := b.Width*scale, b.Height*scale

	fill, err := parseColor(v.Shape.Fill)
	if err != nil {
		return err
	}
	border, err := parseColor(v.Shape.BorderColor)
	if err != nil {
		return err
	}

	dc.Push()
	defer dc.Pop()
	if v.Shape.Rotation != 0 {
		dc.RotateAbout(gg.Radians(v.Shape.Rotation), x+w/2, y+h/2)
	}

	bw := v.Shape.BorderWidth * scale
	switch {
	case len(v.Shape.Clip) > 0:
		if v.Shape.OutlineShadow && bw > 0 {
			dc.SetColor(border)
			for _, off := range []Point{{bw, 0}, {-bw, 0}, {0, bw}, {0, -bw}} {
				polygonPath(dc, v.Shape.Clip, x+off.X, y+off.Y, w, h)
				dc.Fill()
			}
		}
		polygonPath(dc, v.Shape.Clip, x, y, w, h)
		dc.SetColor(fill)
		dc.Fill()
	default:
		inset := 0.0
		if v.Shape.Border != BorderNone && bw > 0 {
			inset = bw / 2
		}
		bodyPath(dc, v.Shape, x+inset, y+inset, w-2*inset, h-2*inset, scale)
		dc.SetColor(fill)
		if inset == 0 {
			dc.Fill()
			break
		}
		dc.FillPreserve()
		if v.Shape.Border == BorderDashed {
			dc.SetDash(6*scale, 4*scale)
		}
		dc.SetLineWidth(bw)
		dc.SetColor(border)
		dc.Stroke()
		dc.SetDash()
	}

	return drawText(dc, v.Text, x, y, w, h, scale)
}

func polygonPath(dc *gg.Context, pts []Point, x, y, w, h float64) {
	dc.NewSubPath()
	for i, p := range pts {
		px, py := x+p.X*w, y+p.Y*h
		if i == 0 {
			dc.MoveTo(px, py)
		} else {
			dc.LineTo(px, py)
		}
	}
	dc.ClosePath()
}

func bodyPath(dc *gg.Context, shape Shape, x, y, w, h, scale float64) {
	if shape.Ellipse {
		dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
		return
	}
	limit := math.Min(w, h) / 2
	var r [4]float64
	for i, c := range shape.Corners {
		r[i] = math.Min(c*scale, limit)
	}

	dc.NewSubPath()
	dc.MoveTo(x+r[0], y)
	dc.LineTo(x+w-r[1], y)
	if r[1] > 0 {
		dc.DrawArc(x+w-r[1], y+r[1], r[1], -math.Pi/2, 0)
	}
	dc.LineTo(x+w, y+h-r[2])
	if r[2] > 0 {
		dc.DrawArc(x+w-r[2], y+h-r[2], r[2], 0, math.Pi/2)
	}
	dc.LineTo(x+r[3], y+h)
	if r[3] > 0 {
		dc.DrawArc(x+r[3], y+h-r[3], r[3], math.Pi/2, math.Pi)
	}
	dc.LineTo(x, y+r[0])
	if r[0] > 0 {
		dc.DrawArc(x+r[0], y+r[0], r[0], math.Pi, 3*math.Pi/2)
	}
	dc.ClosePath()
}

func drawText(dc *gg.Context, t TextLayer, x, y, w, h, scale float64) error {
	textColor, err := parseColor(t.TextColor)
	if err != nil {
		return err
	}
	face, err := newFace(t.FontFamily, t.FontWeight, t.FontSize*scale)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	spacing := t.LetterSpacing * scale
	pad := t.Padding * scale
	measure := func(s string) float64 {
		return measureSpaced(dc, s, spacing)
	}
	lines := wrapText(t.Content, w-2*pad, measure)

	metrics := face.Metrics()
	ascent := fixedToFloat(metrics.Ascent)
	descent := fixedToFloat(metrics.Descent)
	lineH := t.FontSize * scale * t.LineHeight
	top := y + (h-lineH*float64(len(lines)))/2
	cx := x + w/2

	var stroke color.Color
	sw := t.TextStrokeWidth * scale
	if sw > 0 {
		if stroke, err = parseColor(t.TextStrokeColor); err != nil {
			return err
		}
	}

	for i, line := range lines {
		baseline := top + lineH*(float64(i)+0.5) + (ascent-descent)/2
		left := cx - measure(line)/2
		if sw > 0 {
			dc.SetColor(stroke)
			for k := 0; k < 8; k++ {
				a := float64(k) * math.Pi / 4
				drawSpaced(dc, line, left+sw*math.Cos(a), baseline+sw*math.Sin(a), spacing)
			}
		}
		dc.SetColor(textColor)
		drawSpaced(dc, line, left, baseline, spacing)
	}
	return nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// measureSpaced is the width of s with extra spacing after every rune but
// the last.
func measureSpaced(dc *gg.Context, s string, spacing float64) float64 {
	if spacing == 0 {
		w, _ := dc.MeasureString(s)
		return w
	}
	total := 0.0
	n := 0
	for _, r := range s {
		w, _ := dc.MeasureString(string(r))
		total += w
		n++
	}
	if n > 1 {
		total += spacing * float64(n-1)
	}
	return total
}

func drawSpaced(dc *gg.Context, s string, x, baseline, spacing float64) {
	if spacing == 0 {
		dc.DrawString(s, x, baseline)
		return
	}
	for _, r := range s {
		ch := string(r)
		dc.DrawString(ch, x, baseline)
		w, _ := dc.MeasureString(ch)
		x += w + spacing
	}
}

// wrapText breaks text into lines no wider than maxWidth. Explicit newlines
// are kept, and a single word wider than maxWidth gets a line of its own.
func wrapText(text string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if measure(candidate) <= maxWidth {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}
