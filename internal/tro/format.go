package tro

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Justification aligns a value inside its column.
type Justification int

const (
	Left Justification = iota
	Center
	Right
)

// RowFormat lays out table rows as fixed-width columns.
// Columns past the last width are appended unpadded.
type RowFormat struct {
	Widths []int
	Justs  []Justification
}

// Format renders one row. Values wider than their column are not truncated.
func (f RowFormat) Format(cols ...any) string {
	var sb strings.Builder
	for i, col := range cols {
		s := fmt.Sprint(col)
		if i >= len(f.Widths) {
			sb.WriteString(s)
			continue
		}
		just := Left
		if i < len(f.Justs) {
			just = f.Justs[i]
		}
		sb.WriteString(pad(s, f.Widths[i], just))
	}
	return sb.String()
}

func pad(s string, width int, just Justification) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	switch just {
	case Right:
		return strings.Repeat(" ", gap) + s
	case Center:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

// ArmorRowFormat lays out the armor table: location then value.
var ArmorRowFormat = RowFormat{
	Widths: []int{20, 10},
	Justs:  []Justification{Left, Center},
}

// EquipmentRowFormat lays out the equipment table with the name column sized to nameWidth.
// The last column is spare.
func EquipmentRowFormat(nameWidth int) RowFormat {
	return RowFormat{
		Widths: []int{nameWidth, 12, 8, 8, 5, 5, 5, 5, 5},
		Justs:  []Justification{Left, Center, Center, Center, Center, Center, Center, Center, Center},
	}
}
