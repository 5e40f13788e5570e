package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// StaticRangeInit holds the boundary points of a static range.
type StaticRangeInit struct {
	StartContainer *Node
	StartOffset    int
	EndContainer   *Node
	EndOffset      int
}

// StaticRange is a pair of boundary points which does not follow mutations.
type StaticRange struct {
	start, end BoundaryPoint
}

// NewStaticRange creates a static range. Doctypes cannot be boundary nodes;
// offsets are not checked.
func NewStaticRange(init StaticRangeInit) (*StaticRange, error) {
	if init.StartContainer == nil || init.EndContainer == nil {
		return nil, raise(ErrType, "boundary nodes must not be nil")
	}
	if NodeIsDoctype(init.StartContainer) || NodeIsDoctype(init.EndContainer) {
		return nil, raise(ErrInvalidNodeType, "doctype cannot contain a boundary point")
	}
	return &StaticRange{
		start: BoundaryPoint{init.StartContainer, init.StartOffset},
		end:   BoundaryPoint{init.EndContainer, init.EndOffset},
	}, nil
}

// StartContainer returns the node of the start boundary point.
func (r *StaticRange) StartContainer() *Node { return r.start.Node }

// StartOffset returns the offset of the start boundary point.
func (r *StaticRange) StartOffset() int { return r.start.Offset }

// EndContainer returns the node of the end boundary point.
func (r *StaticRange) EndContainer() *Node { return r.end.Node }

// EndOffset returns the offset of the end boundary point.
func (r *StaticRange) EndOffset() int { return r.end.Offset }

// Collapsed is true if start and end are equal.
func (r *StaticRange) Collapsed() bool { return r.start == r.end }

// IsValid is true if both boundary points are in range, share a root and the
// start is not after the end. Mutations may invalidate a static range.
func (r *StaticRange) IsValid() bool {
	if r.start.Offset < 0 || r.start.Offset > r.start.Node.Length() ||
		r.end.Offset < 0 || r.end.Offset > r.end.Node.Length() {
		return false
	}
	return r.start.Node.Root() == r.end.Node.Root() && position(r.start, r.end) != After
}

// ToRange creates a live range from a valid static range.
func (r *StaticRange) ToRange() (*Range, error) {
	if !r.IsValid() {
		return nil, raise(ErrInvalidState, "static range is not valid")
	}
	live := r.start.Node.OwnerDocument().CreateRange()
	live.start, live.end = r.start, r.end
	return live, nil
}
