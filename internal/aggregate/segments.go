package aggregate

import "github.com/shopspring/decimal"

// FullCircle is the span covered by a non-empty segment list.
const FullCircle = 360.0

// DefaultPalette holds the chart colors in the order they are assigned.
var DefaultPalette = []string{
	"#1CAC78",
	"#50C878",
	"#40E0D0",
	"#f97373",
	"#fb923c",
	"#6366f1",
}

// Segment is one slice of the proportional chart, in degrees.
type Segment struct {
	Category   string
	Color      string
	StartAngle float64
	EndAngle   float64
	Percent    float64
}

// Span returns the angular width of the segment.
func (s Segment) Span() float64 {
	return s.EndAngle - s.StartAngle
}

// ProportionalSegments lays the category totals out as contiguous arcs that
// start at 0 and end at exactly FullCircle. Colors cycle through palette; an
// empty palette falls back to DefaultPalette. A zero grand total yields no
// segments.
func ProportionalSegments(totals []CategoryTotal, palette []string) []Segment {
	grand := GrandTotal(totals)
	if !grand.IsPositive() {
		return nil
	}
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	hundred := decimal.NewFromInt(100)
	out := make([]Segment, 0, len(totals))
	start := 0.0
	for i, ct := range totals {
		share := ct.Total.Div(grand)
		end := start + share.InexactFloat64()*FullCircle
		if i == len(totals)-1 {
			end = FullCircle
		}
		out = append(out, Segment{
			Category:   ct.Category,
			Color:      palette[i%len(palette)],
			StartAngle: start,
			EndAngle:   end,
			Percent:    share.Mul(hundred).InexactFloat64(),
		})
		start = end
	}
	return out
}
