package recycler

import "math"

// Vec2 represents a 2D vector for positions, sizes and scroll deltas.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Rect represents a rectangle with position and size.
// The origin is the top-left corner and Y grows downward.
type Rect struct {
	X, Y float32 // Top-left position
	W, H float32 // Width and height
}

// Min returns the top-left corner.
func (r Rect) Min() Vec2 { return Vec2{X: r.X, Y: r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Vec2 { return Vec2{X: r.X + r.W, Y: r.Y + r.H} }

// Size returns the rectangle extent.
func (r Rect) Size() Vec2 { return Vec2{X: r.W, Y: r.H} }

// Translate returns the rectangle moved by d.
func (r Rect) Translate(d Vec2) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersects returns true if two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && r.X+r.W > other.X &&
		r.Y < other.Y+other.H && r.Y+r.H > other.Y
}

// Corners returns the four corners in clockwise order starting top-left.
func (r Rect) Corners() Corners {
	return Corners{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
}

// Corners holds the four screen-space corner points of a possibly rotated or
// scaled rectangle.
type Corners [4]Vec2

// CalcBounds returns the axis-aligned bounding box enclosing the four corners.
func CalcBounds(c Corners) Rect {
	minV := Vec2{X: math.MaxFloat32, Y: math.MaxFloat32}
	maxV := Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32}
	for _, p := range c {
		minV.X = minf(minV.X, p.X)
		minV.Y = minf(minV.Y, p.Y)
		maxV.X = maxf(maxV.X, p.X)
		maxV.Y = maxf(maxV.Y, p.Y)
	}
	return Rect{X: minV.X, Y: minV.Y, W: maxV.X - minV.X, H: maxV.Y - minV.Y}
}

// Padding is the inset between the content edges and the first/last cells.
type Padding struct {
	Top, Bottom, Left, Right float32
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clampi clamps an int value to a range.
func clampi(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// maxf returns the maximum of two float32 values.
func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// minf returns the minimum of two float32 values.
func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// ceilDiv returns ceil(a/b) for non-negative a and positive b.
func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
