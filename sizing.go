package jterm

import "fmt"

// Unbounded marks an available dimension that places no constraint on measurement.
const Unbounded = -1

// SizingMode selects how a widget dimension is derived.
type SizingMode int

const (
	// SizeAuto shrinks the dimension to the content.
	SizeAuto SizingMode = iota
	// SizeFixed uses an exact number of cells, border included.
	SizeFixed
	// SizeFill expands to whatever the parent has available.
	SizeFill
)

// String returns the mode name.
func (m SizingMode) String() string {
	switch m {
	case SizeAuto:
		return "auto"
	case SizeFixed:
		return "fixed"
	case SizeFill:
		return "fill"
	}
	return fmt.Sprintf("SizingMode(%d)", int(m))
}

// Sizing is a sizing policy for one dimension. It is not a size: the
// computed result of applying it lives in Size.
type Sizing struct {
	Mode  SizingMode
	Value int
}

// Fixed returns a policy of exactly n cells.
func Fixed(n int) Sizing { return Sizing{Mode: SizeFixed, Value: max(0, n)} }

// Auto returns a shrink-to-content policy.
func Auto() Sizing { return Sizing{Mode: SizeAuto} }

// Fill returns an expand-to-available policy.
func Fill() Sizing { return Sizing{Mode: SizeFill} }

// String returns a readable form like "fixed(3)".
func (s Sizing) String() string {
	if s.Mode == SizeFixed {
		return fmt.Sprintf("fixed(%d)", s.Value)
	}
	return s.Mode.String()
}

// resolve applies the policy to one content dimension. natural is the
// content's own extent, avail the content space offered by the parent
// (or Unbounded) and border the cells this widget's border takes on
// that axis.
func (s Sizing) resolve(natural, avail, border int) int {
	var v int
	switch s.Mode {
	case SizeFixed:
		v = max(0, s.Value-border)
	case SizeAuto:
		v = natural
	case SizeFill:
		if avail == Unbounded {
			v = natural
		} else {
			v = avail
		}
	default:
		panic(fmt.Sprintf("jterm: unknown sizing mode %d", int(s.Mode)))
	}
	if avail != Unbounded {
		v = min(v, avail)
	}
	return max(0, v)
}

// Overflow governs clipping and scrollbars for a widget's content.
type Overflow int

const (
	// OverflowVisible never shows a scrollbar.
	OverflowVisible Overflow = iota
	// OverflowHidden clips content without a scrollbar.
	OverflowHidden
	// OverflowScroll always shows a scrollbar.
	OverflowScroll
	// OverflowAuto shows a scrollbar only when content exceeds the viewport.
	OverflowAuto
)

// String returns the overflow name.
func (o Overflow) String() string {
	switch o {
	case OverflowVisible:
		return "visible"
	case OverflowHidden:
		return "hidden"
	case OverflowScroll:
		return "scroll"
	case OverflowAuto:
		return "auto"
	}
	return fmt.Sprintf("Overflow(%d)", int(o))
}

// PositionMode is reserved for anchored positioning. Layout only knows flow.
type PositionMode int

const (
	PositionFlow PositionMode = iota
	PositionFixed
)

// Position is stored on every widget but not consumed by layout.
type Position struct {
	Mode                     PositionMode
	Top, Right, Bottom, Left *int
}
