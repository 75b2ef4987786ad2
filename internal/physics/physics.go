// Package physics provides distance, contact and heading utilities.
package physics

import "math"

// ContactThreshold is the gap below which two circles are considered touching.
// Circles count as touching slightly before their edges meet.
const ContactThreshold = 1.0

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Gap returns the distance between the edges of two circles.
// Negative when the circles overlap.
func Gap(x1, y1, r1, x2, y2, r2 float64) float64 {
	return Distance(x1, y1, x2, y2) - r1 - r2
}

// CirclesTouch reports whether the gap between two circles is below ContactThreshold.
func CirclesTouch(x1, y1, r1, x2, y2, r2 float64) bool {
	return Gap(x1, y1, r1, x2, y2, r2) < ContactThreshold
}

// Heading returns the angle in radians of the vector pointing from (fromX, fromY)
// to (toX, toY). Coincident points yield 0.
func Heading(fromX, fromY, toX, toY float64) float64 {
	dx := toX - fromX
	dy := toY - fromY
	if dx == 0 && dy == 0 {
		return 0
	}
	return math.Atan2(dy, dx)
}

// Velocity converts a heading and speed into velocity components.
func Velocity(angle, speed float64) (vx, vy float64) {
	return math.Cos(angle) * speed, math.Sin(angle) * speed
}

// Toward returns a velocity of the given speed aimed from one point at another.
func Toward(fromX, fromY, toX, toY, speed float64) (vx, vy float64) {
	return Velocity(Heading(fromX, fromY, toX, toY), speed)
}

// OutsideRect reports whether a circle lies entirely outside [0,w]x[0,h].
func OutsideRect(x, y, r, w, h float64) bool {
	return x+r < 0 || x-r > w || y+r < 0 || y-r > h
}
