package scoring

import (
	"PresenceCoach/internal/entity"
	"fmt"
	"math"
)

// DefaultBoxMargin expands the face box on every side, in normalized units.
const DefaultBoxMargin = 0.05

// Box is an axis-aligned rectangle in normalized frame coordinates.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains reports whether p lies inside b, edges included.
func (b Box) Contains(p entity.Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Centroid returns the mean point of the set.
func Centroid(points entity.LandmarkSet) (entity.Point, error) {
	if len(points) == 0 {
		return entity.Point{}, fmt.Errorf("centroid of empty set: %w", ErrDegenerateGeometry)
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	c := entity.Point{X: sumX / float64(len(points)), Y: sumY / float64(len(points))}
	if !finite(c) {
		return entity.Point{}, fmt.Errorf("centroid is not finite: %w", ErrDegenerateGeometry)
	}
	return c, nil
}

// BoundingBox returns the min/max extent of the set grown by margin on all four sides.
func BoundingBox(points entity.LandmarkSet, margin float64) (Box, error) {
	if len(points) == 0 {
		return Box{}, fmt.Errorf("bounding box of empty set: %w", ErrDegenerateGeometry)
	}

	b := Box{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	b.MinX -= margin
	b.MinY -= margin
	b.MaxX += margin
	b.MaxY += margin

	if !finite(entity.Point{X: b.MinX, Y: b.MinY}) || !finite(entity.Point{X: b.MaxX, Y: b.MaxY}) {
		return Box{}, fmt.Errorf("bounding box is not finite: %w", ErrDegenerateGeometry)
	}
	return b, nil
}

// pick reads the given anatomical indices from set, in order.
func pick(set entity.LandmarkSet, indices ...int) ([]entity.Point, error) {
	out := make([]entity.Point, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(set) {
			return nil, fmt.Errorf("index %d of %d points: %w", idx, len(set), ErrLandmarkIndex)
		}
		if !finite(set[idx]) {
			return nil, fmt.Errorf("point %d is not finite: %w", idx, ErrDegenerateGeometry)
		}
		out[i] = set[idx]
	}
	return out, nil
}

func finite(p entity.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// clampScore truncates v into the [0,100] score range. NaN maps to 0.
func clampScore(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 100 {
		return 100
	}
	return int(v)
}
