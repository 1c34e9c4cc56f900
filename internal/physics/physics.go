// Package physics provides hit testing and edge reflection utilities.
package physics

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// PointInSquare checks if a point lies strictly inside the axis-aligned
// square with top-left corner (x, y) and the given side length.
// Points exactly on an edge are outside.
func PointInSquare(px, py, x, y, size float64) bool {
	return px > x && px < x+size && py > y && py < y+size
}

// Reflect returns the velocity component after testing a box edge against
// [0, limit]. When pos is below zero or pos+size is past limit the velocity
// is negated; position is never clamped, so a box that overshoots turns
// around on the following steps.
func Reflect(pos, size, limit, velocity float64) float64 {
	if pos+size > limit || pos < 0 {
		return -velocity
	}
	return velocity
}
