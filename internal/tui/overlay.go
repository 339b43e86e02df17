package tui

// OverlayKind names the surface presented above the list overview.
type OverlayKind int

const (
	OverlayNone OverlayKind = iota
	OverlayCreate
	OverlayUpdate
	OverlayDetail
)

// String returns a readable overlay name.
func (k OverlayKind) String() string {
	switch k {
	case OverlayCreate:
		return "create"
	case OverlayUpdate:
		return "update"
	case OverlayDetail:
		return "detail"
	default:
		return "none"
	}
}

// overlay is the tagged variant over the controller's overlays.
// Only update and detail carry a selection, so at most one overlay can ever be visible.
type overlay interface {
	kind() OverlayKind
}

type noOverlay struct{}

type createOverlay struct{}

// updateOverlay edits lists[index]; id pins the list across removals of other lists.
type updateOverlay struct {
	index int
	id    string
}

// detailOverlay inspects lists[index].
type detailOverlay struct {
	index int
	id    string
}

func (noOverlay) kind() OverlayKind     { return OverlayNone }
func (createOverlay) kind() OverlayKind { return OverlayCreate }
func (updateOverlay) kind() OverlayKind { return OverlayUpdate }
func (detailOverlay) kind() OverlayKind { return OverlayDetail }

// selection returns the index and id captured by the overlay, or -1 when it carries none.
func selection(o overlay) (int, string) {
	switch o := o.(type) {
	case updateOverlay:
		return o.index, o.id
	case detailOverlay:
		return o.index, o.id
	default:
		return -1, ""
	}
}

// withIndex rebinds a selecting overlay to a new index.
func withIndex(o overlay, index int) overlay {
	switch o := o.(type) {
	case updateOverlay:
		o.index = index
		return o
	case detailOverlay:
		o.index = index
		return o
	default:
		return o
	}
}
