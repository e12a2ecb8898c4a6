// Package export rasterizes diagrams to PNG.
package export

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/inamate/diagrammer/internal/document"
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/style"
)

// MaxSide bounds either side of the output image in pixels.
const MaxSide = 16384

var ErrEmpty = errors.New("nothing to render")

type Options struct {
	Scale    float64 // pixels per model unit; zero means 1
	Margin   float64 // pixels around the canvas
	FontSize float64 // model units; zero means 12
	Styles   *style.Sheet
}

var parseFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

// Render paints d back to front onto a white background. The canvas is the
// diagram's declared size, or the extent of its views when it has none.
func Render(d *document.Diagram, opts Options) (image.Image, error) {
	dc, err := paint(d, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG renders d and encodes the image to w.
func WritePNG(w io.Writer, d *document.Diagram, opts Options) error {
	dc, err := paint(d, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

type painter struct {
	dc     *gg.Context
	d      *document.Diagram
	styles *style.Sheet
	scale  float64
	origin geom.Point // model point at the top-left pixel
	margin float64
}

func paint(d *document.Diagram, opts Options) (*gg.Context, error) {
	if d == nil {
		return nil, ErrEmpty
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 12
	}
	if opts.Styles == nil {
		opts.Styles = style.Default()
	}

	area := extent(d)
	if area.IsEmpty() {
		return nil, ErrEmpty
	}
	w := int(math.Ceil(area.Width()*opts.Scale + 2*opts.Margin))
	h := int(math.Ceil(area.Height()*opts.Scale + 2*opts.Margin))
	if w > MaxSide || h > MaxSide {
		return nil, fmt.Errorf("image %dx%d exceeds %d pixels", w, h, MaxSide)
	}

	f, err := parseFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{
		Size:    opts.FontSize * opts.Scale,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	p := &painter{
		dc:     dc,
		d:      d,
		styles: opts.Styles,
		scale:  opts.Scale,
		origin: geom.Pt(area.X1, area.Y1),
		margin: opts.Margin,
	}
	for _, id := range d.Root {
		p.view(id)
	}
	return dc, nil
}

func extent(d *document.Diagram) geom.Rect {
	if d.Width > 0 && d.Height > 0 {
		return d.Bounds()
	}
	var area geom.Rect
	first := true
	for _, id := range d.Root {
		v := d.View(id)
		if v == nil {
			continue
		}
		if first {
			area, first = v.BoundingBox(), false
		} else {
			area = area.Union(v.BoundingBox())
		}
	}
	return area
}

// px maps a model point to pixels.
func (p *painter) px(pt geom.Point) (float64, float64) {
	return (pt.X-p.origin.X)*p.scale + p.margin, (pt.Y-p.origin.Y)*p.scale + p.margin
}

func (p *painter) setColor(hex string) {
	c, err := style.ParseColor(hex)
	if err != nil {
		c, _ = style.ParseColor("#000")
	}
	p.dc.SetColor(c)
}

func (p *painter) view(id string) {
	n := p.d.Node(id)
	v := p.d.View(id)
	if n == nil || v == nil {
		return
	}
	st := p.styles.For(n.Category)

	switch n.Kind {
	case document.ViewKindNode:
		r := v.BoundingBox()
		x, y := p.px(geom.Pt(r.X1, r.Y1))
		w, h := r.Width()*p.scale, r.Height()*p.scale

		p.dc.DrawRectangle(x, y, w, h)
		p.setColor(st.Fill)
		p.dc.FillPreserve()
		p.setColor(st.Stroke)
		p.dc.SetLineWidth(p.scale)
		p.dc.Stroke()

		if n.Name != "" {
			p.setColor(st.Stroke)
			p.dc.DrawStringAnchored(n.Name, x+w/2, y+4*p.scale, 0.5, 1)
		}
	case document.ViewKindEdge:
		p.edge(n.Points, st.Stroke)
	case document.ViewKindLabel:
		if n.Name != "" {
			x, y := p.px(v.BoundingBox().Center())
			p.setColor(st.Stroke)
			p.dc.DrawStringAnchored(n.Name, x, y, 0.5, 0.5)
		}
	}

	for _, child := range n.Children {
		p.view(child)
	}
}

// edge strokes the polyline and puts an arrowhead on its last segment.
func (p *painter) edge(pts geom.Points, stroke string) {
	if len(pts) < 2 {
		return
	}
	p.setColor(stroke)
	p.dc.SetLineWidth(p.scale)
	for i, pt := range pts {
		x, y := p.px(pt)
		if i == 0 {
			p.dc.MoveTo(x, y)
		} else {
			p.dc.LineTo(x, y)
		}
	}
	p.dc.Stroke()

	fx, fy := p.px(pts[len(pts)-2])
	tx, ty := p.px(pts[len(pts)-1])
	dx, dy := tx-fx, ty-fy
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	size := 8 * p.scale
	spread := 0.5
	p.dc.MoveTo(tx, ty)
	p.dc.LineTo(tx-size*dx+size*dy*spread, ty-size*dy-size*dx*spread)
	p.dc.LineTo(tx-size*dx-size*dy*spread, ty-size*dy+size*dx*spread)
	p.dc.ClosePath()
	p.dc.Fill()
}
