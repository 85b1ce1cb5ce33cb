package sstv

import "fmt"

// SegmentKind tags the variant held by a ScanSegment.
type SegmentKind int

const (
	SegmentLuminance SegmentKind = iota
	SegmentRedDiff
	SegmentBlueDiff
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentLuminance:
		return "Y"
	case SegmentRedDiff:
		return "R-Y"
	case SegmentBlueDiff:
		return "B-Y"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

// ScanSegment is one of the four scans of a line pair.
// Luminance uses Row only.  The difference variants read both OddRow and
// EvenRow and average them.
type ScanSegment struct {
	Kind    SegmentKind
	Row     int
	OddRow  int
	EvenRow int
}

func LuminanceSegment(row int) ScanSegment {
	return ScanSegment{Kind: SegmentLuminance, Row: row}
}

func RedDiffSegment(oddRow, evenRow int) ScanSegment {
	return ScanSegment{Kind: SegmentRedDiff, OddRow: oddRow, EvenRow: evenRow}
}

func BlueDiffSegment(oddRow, evenRow int) ScanSegment {
	return ScanSegment{Kind: SegmentBlueDiff, OddRow: oddRow, EvenRow: evenRow}
}

func (s ScanSegment) String() string {
	if s.Kind == SegmentLuminance {
		return fmt.Sprintf("%s(%d)", s.Kind, s.Row)
	}

	return fmt.Sprintf("%s(%d,%d)", s.Kind, s.OddRow, s.EvenRow)
}

// Frequency computes the tone for pixel x of this segment.
func (s ScanSegment) Frequency(src PixelSource, x int) uint32 {
	switch s.Kind {
	case SegmentRedDiff:
		var r1, g1, b1 = src.Pixel(x, s.OddRow)
		var r2, g2, b2 = src.Pixel(x, s.EvenRow)
		var _, ry1, _ = ConvertToSSTV(r1, g1, b1)
		var _, ry2, _ = ConvertToSSTV(r2, g2, b2)

		return MapDifference((ry1 + ry2) / 2.0)

	case SegmentBlueDiff:
		var r1, g1, b1 = src.Pixel(x, s.OddRow)
		var r2, g2, b2 = src.Pixel(x, s.EvenRow)
		var _, _, by1 = ConvertToSSTV(r1, g1, b1)
		var _, _, by2 = ConvertToSSTV(r2, g2, b2)

		return MapDifference((by1 + by2) / 2.0)

	case SegmentLuminance:
		return MapLuminance(Luminance(src.Pixel(x, s.Row)))

	default:
		// Not a segment kind.  Black keeps the line timing intact.
		return FreqBlack
	}
}
