package render

import (
	"math"

	"github.com/fogleman/gg"

	"github.com/ytget/icon-generator/internal/model"
)

const (
	// squircleExponent is the superellipse exponent of the squircle shape
	squircleExponent = 5.0
	squircleSegments = 128
)

// shapePath adds the outline of shape inside the x,y,w,h box to the current path
func shapePath(dc *gg.Context, shape model.Shape, x, y, w, h, radius float64) {
	switch shape {
	case model.ShapeCircle:
		dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
	case model.ShapeSquircle:
		superellipse(dc, x+w/2, y+h/2, w/2, h/2, squircleExponent)
	case model.ShapeRounded:
		if radius > 0 {
			dc.DrawRoundedRectangle(x, y, w, h, math.Min(radius, math.Min(w, h)/2))
			return
		}
		dc.DrawRectangle(x, y, w, h)
	default:
		dc.DrawRectangle(x, y, w, h)
	}
}

// superellipse traces |x/a|^n + |y/b|^n = 1 around cx,cy
func superellipse(dc *gg.Context, cx, cy, a, b, n float64) {
	dc.NewSubPath()
	for i := 0; i < squircleSegments; i++ {
		t := 2 * math.Pi * float64(i) / squircleSegments
		cos, sin := math.Cos(t), math.Sin(t)
		px := cx + a*sign(cos)*math.Pow(math.Abs(cos), 2/n)
		py := cy + b*sign(sin)*math.Pow(math.Abs(sin), 2/n)
		if i == 0 {
			dc.MoveTo(px, py)
		} else {
			dc.LineTo(px, py)
		}
	}
	dc.ClosePath()
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// setFill sets the fill style for a background over the x,y,w,h box
func setFill(dc *gg.Context, fill model.Fill, x, y, w, h float64) {
	cx, cy := x+w/2, y+h/2

	switch fill.Kind {
	case model.FillLinear:
		rad := fill.Angle * math.Pi / 180
		dx := math.Cos(rad) * w / 2
		dy := math.Sin(rad) * h / 2
		grad := gg.NewLinearGradient(cx-dx, cy-dy, cx+dx, cy+dy)
		grad.AddColorStop(0, fill.From.NRGBA())
		grad.AddColorStop(1, fill.To.NRGBA())
		dc.SetFillStyle(grad)
	case model.FillRadial:
		r := math.Hypot(w, h) / 2
		grad := gg.NewRadialGradient(cx, cy, 0, cx, cy, r)
		grad.AddColorStop(0, fill.From.NRGBA())
		grad.AddColorStop(1, fill.To.NRGBA())
		dc.SetFillStyle(grad)
	default:
		dc.SetColor(fill.From.NRGBA())
	}
}
