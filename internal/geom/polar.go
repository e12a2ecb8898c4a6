package geom

import "math"

// PolarOffset returns the angle and distance of target relative to the
// anchor line p1->p2, measured from p1. The angle is relative to the line's
// direction so that the offset follows the line when it rotates. A
// degenerate line is treated as pointing along +X.
func PolarOffset(p1, p2, target Point) (angle, distance float64) {
	base := lineAngle(p1, p2)
	d := target.Sub(p1)
	distance = math.Hypot(d.X, d.Y)
	if distance < Epsilon {
		return 0, 0
	}
	angle = normalizeAngle(math.Atan2(d.Y, d.X) - base)
	return angle, distance
}

// PointAwayLine is the inverse of PolarOffset.
func PointAwayLine(p1, p2 Point, angle, distance float64) Point {
	theta := lineAngle(p1, p2) + angle
	return Point{
		X: p1.X + distance*math.Cos(theta),
		Y: p1.Y + distance*math.Sin(theta),
	}
}

func lineAngle(p1, p2 Point) float64 {
	if p1.Distance(p2) < Epsilon {
		return 0
	}
	return math.Atan2(p2.Y-p1.Y, p2.X-p1.X)
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
