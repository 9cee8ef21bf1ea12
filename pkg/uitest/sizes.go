package uitest

// Size is a terminal size in cells.
type Size struct {
	Width  int
	Height int
}

// Terminal sizes used across UI tests. With the default cell width of 8,
// [Narrow] is below the 600px breakpoint and the others are above it.
var (
	Narrow   = Size{Width: 60, Height: 30}
	Compact  = Size{Width: 80, Height: 24}
	Standard = Size{Width: 120, Height: 40}
)
