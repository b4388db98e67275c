package layout

// This file defines unit helpers shared by the layout engine and the canvas
// compositor. All layout arithmetic happens in CSS pixels; the canvas backend
// creates font faces in points and converts at the boundary.

// Conversion constants between pt and px (one canvas unit is one pixel).
const (
	PtToPx = 0.352777
	PxToPt = 1.0 / PtToPx
)

// DimKind tags a Dimension as auto, absolute pixels or a percentage.
type DimKind int

const (
	DimAuto DimKind = iota
	DimPx
	DimPercent
)

// Dimension is a box size or edge offset: auto, pixels, or percent of the
// containing frame.
type Dimension struct {
	Kind  DimKind `json:"kind"`
	Value float64 `json:"value,omitempty"`
}

// Px returns an absolute pixel dimension.
func Px(v float64) Dimension { return Dimension{Kind: DimPx, Value: v} }

// Percent returns a dimension resolved against the containing frame.
func Percent(v float64) Dimension { return Dimension{Kind: DimPercent, Value: v} }

// Auto is the unset dimension.
var Auto = Dimension{}

// IsAuto reports whether the dimension is unset.
func (d Dimension) IsAuto() bool { return d.Kind == DimAuto }

// Resolve computes the dimension in pixels against base. The second return is
// false for auto dimensions.
func (d Dimension) Resolve(base float64) (float64, bool) {
	switch d.Kind {
	case DimPx:
		return d.Value, true
	case DimPercent:
		return base * d.Value / 100.0, true
	default:
		return 0, false
	}
}
