package panel

import (
	"fmt"
	"strconv"
	"strings"
)

// Sheet indexes into SnapPoints; SheetHidden keeps the sheet off screen.
const (
	SheetHidden    = -1
	SheetCollapsed = 0
	SheetExpanded  = 1
)

// SnapPoints are sheet heights as percentages of the screen height.
type SnapPoints []float64

// DefaultSnapPoints is the minimized summary and the route option list.
var DefaultSnapPoints = SnapPoints{15, 60}

// ParseSnapPoints reads values like "15%,60%". Points must be in (0,100]
// and strictly increasing.
func ParseSnapPoints(s string) (SnapPoints, error) {
	var out SnapPoints
	prev := 0.0
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSuffix(strings.TrimSpace(part), "%")
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid snap point %q", part)
		}
		if v <= 0 || v > 100 || v <= prev {
			return nil, fmt.Errorf("snap point %v out of order or range", v)
		}
		out = append(out, v)
		prev = v
	}
	return out, nil
}

// Offset returns the sheet height in pixels for index on a screen of
// screenHeight pixels. Hidden and out-of-range indexes yield 0.
func (p SnapPoints) Offset(index int, screenHeight float64) float64 {
	if index < 0 || index >= len(p) || screenHeight <= 0 {
		return 0
	}
	return screenHeight * p[index] / 100
}
