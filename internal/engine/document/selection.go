package document

import "fmt"

// Selection is an anchor/focus pair over block-relative offsets.
// Backward records gesture direction: when true the focus sits before
// the anchor in document order, so Start* return the focus side.
// Selection is an immutable value type.
type Selection struct {
	AnchorKey    string
	AnchorOffset int
	FocusKey     string
	FocusOffset  int
	Backward     bool
}

// Collapsed returns a caret selection at the given position.
func Collapsed(key string, offset int) Selection {
	return Selection{
		AnchorKey:    key,
		AnchorOffset: offset,
		FocusKey:     key,
		FocusOffset:  offset,
	}
}

// NewRange returns a selection spanning start to end in document order.
// When backward is true the anchor is placed at the end, recording that
// the gesture ran right-to-left.
func NewRange(startKey string, startOffset int, endKey string, endOffset int, backward bool) Selection {
	if backward {
		return Selection{
			AnchorKey:    endKey,
			AnchorOffset: endOffset,
			FocusKey:     startKey,
			FocusOffset:  startOffset,
			Backward:     true,
		}
	}
	return Selection{
		AnchorKey:    startKey,
		AnchorOffset: startOffset,
		FocusKey:     endKey,
		FocusOffset:  endOffset,
	}
}

// IsCollapsed reports whether anchor and focus coincide.
func (s Selection) IsCollapsed() bool {
	return s.AnchorKey == s.FocusKey && s.AnchorOffset == s.FocusOffset
}

// StartKey returns the block key of the selection start in document order.
func (s Selection) StartKey() string {
	if s.Backward {
		return s.FocusKey
	}
	return s.AnchorKey
}

// StartOffset returns the offset of the selection start in document order.
func (s Selection) StartOffset() int {
	if s.Backward {
		return s.FocusOffset
	}
	return s.AnchorOffset
}

// EndKey returns the block key of the selection end in document order.
func (s Selection) EndKey() string {
	if s.Backward {
		return s.AnchorKey
	}
	return s.FocusKey
}

// EndOffset returns the offset of the selection end in document order.
func (s Selection) EndOffset() int {
	if s.Backward {
		return s.AnchorOffset
	}
	return s.FocusOffset
}

// CollapseToStart returns a caret at the selection start.
func (s Selection) CollapseToStart() Selection {
	return Collapsed(s.StartKey(), s.StartOffset())
}

// CollapseToEnd returns a caret at the selection end.
func (s Selection) CollapseToEnd() Selection {
	return Collapsed(s.EndKey(), s.EndOffset())
}

// SingleBlock reports whether the selection starts and ends in the same
// block.
func (s Selection) SingleBlock() bool {
	return s.StartKey() == s.EndKey()
}

// Equals reports whether two selections are identical, including
// direction.
func (s Selection) Equals(other Selection) bool {
	return s == other
}

// SameRange reports whether two selections cover the same range,
// regardless of direction.
func (s Selection) SameRange(other Selection) bool {
	return s.StartKey() == other.StartKey() &&
		s.StartOffset() == other.StartOffset() &&
		s.EndKey() == other.EndKey() &&
		s.EndOffset() == other.EndOffset()
}

// String returns a debug representation.
func (s Selection) String() string {
	if s.IsCollapsed() {
		return fmt.Sprintf("Caret(%s:%d)", s.AnchorKey, s.AnchorOffset)
	}
	dir := "forward"
	if s.Backward {
		dir = "backward"
	}
	return fmt.Sprintf("Selection(%s:%d..%s:%d %s)",
		s.StartKey(), s.StartOffset(), s.EndKey(), s.EndOffset(), dir)
}
