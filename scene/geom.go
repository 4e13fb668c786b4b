package scene

// Vec2 is a 2D point or extent in logical pixels.
type Vec2 struct {
	X, Y float32
}

// Add returns v+o component-wise.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Rect is an axis-aligned rectangle spanning [Min, Max) on both axes.
// The half-open convention matters: rects that only touch do not overlap.
type Rect struct {
	Min, Max Vec2
}

// R is shorthand for building a Rect from position and size.
func R(x, y, w, h float32) Rect {
	return Rect{Min: Vec2{x, y}, Max: Vec2{x + w, y + h}}
}

// Empty reports whether the rect spans no area.
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Overlaps reports whether r and o share interior area. Touching edges
// do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.Max.X > o.Min.X && r.Min.X < o.Max.X &&
		r.Max.Y > o.Min.Y && r.Min.Y < o.Max.Y
}

// Intersect returns the shared area of r and o. The result may be empty.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		Min: Vec2{max(r.Min.X, o.Min.X), max(r.Min.Y, o.Min.Y)},
		Max: Vec2{min(r.Max.X, o.Max.X), min(r.Max.Y, o.Max.Y)},
	}
}

// Contains reports whether p lies inside r, with the same half-open
// convention: the Min edges are inside, the Max edges are not.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}
