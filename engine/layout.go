package engine

// Box is an on-screen bounding box in container coordinates. Only the
// vertical extent matters for popover auto-scroll.
type Box struct {
	Top    float64
	Bottom float64
}

// LayoutQuery is the measurement capability the view layer provides: the
// rendered box of a popover anchored to a word, and the box of the scroll
// container it lives in.
type LayoutQuery interface {
	AnchorBox(id string) (Box, bool)
	ContainerBox() (Box, bool)
}

// Popover scroll margins. The top margin is larger because a sticky header
// overlays the first rows of the container.
const (
	popoverBottomPadding = 20
	popoverBottomBuffer  = 40
	popoverHeaderMargin  = 80
	popoverTopTarget     = 100
)

// ScrollDelta computes how far the scroll container must move so the
// popover box is fully visible. Zero means no scrolling is needed.
// Positive scrolls down, negative scrolls up.
func ScrollDelta(popover, container Box) float64 {
	if popover.Bottom > container.Bottom-popoverBottomPadding {
		return popover.Bottom - container.Bottom + popoverBottomBuffer
	}
	if popover.Top < container.Top+popoverHeaderMargin {
		return popover.Top - (container.Top + popoverTopTarget)
	}
	return 0
}

// Scroller applies a scroll delta to the drill's scroll container (not the
// page). The host may ignore requests it cannot honor.
type Scroller interface {
	ScrollBy(delta float64)
}
