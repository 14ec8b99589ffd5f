// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package masks

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// BBoxToMask returns a mask of the given size with the pixels inside the box occluded.
func BBoxToMask(size ImageSize, box BBox) (*Mask, error) {
	return BBoxesToMask(size, box)
}

// BBoxesToMask returns a mask of the given size with the pixels inside any of the boxes occluded.
func BBoxesToMask(size ImageSize, boxes ...BBox) (*Mask, error) {
	m := New(size)
	for _, box := range boxes {
		if err := box.Validate(size); err != nil {
			return nil, err
		}
		for y := box.Top; y < box.Top+box.Height; y++ {
			row := m.Data[y*size.Width : (y+1)*size.Width]
			for x := box.Left; x < box.Left+box.Width; x++ {
				row[x] = 1
			}
		}
	}
	return m, nil
}

// Point in image coordinates: X is the column and Y the row.
type Point struct {
	X, Y float64
}

// coverageThreshold is the minimum alpha coverage for a pixel to be considered inside a polygon.
const coverageThreshold = 0x80

// FillPolygon marks as occluded the pixels of m covered by at least half by the closed polygon.
// Parts of the polygon outside the mask are ignored.
func (m *Mask) FillPolygon(points []Point) {
	if len(points) < 3 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	bounds := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY))).
		Intersect(image.Rect(0, 0, m.Size.Width, m.Size.Height))
	if bounds.Empty() {
		return
	}

	// Rasterize only over the polygon bounding box, clipped to the mask.
	points = clipPolygon(points, float64(bounds.Min.X), float64(bounds.Min.Y),
		float64(bounds.Max.X), float64(bounds.Max.Y))
	if len(points) < 3 {
		return
	}
	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	z.DrawOp = draw.Src
	offsetX, offsetY := float64(bounds.Min.X), float64(bounds.Min.Y)
	z.MoveTo(float32(points[0].X-offsetX), float32(points[0].Y-offsetY))
	for _, p := range points[1:] {
		z.LineTo(float32(p.X-offsetX), float32(p.Y-offsetY))
	}
	z.ClosePath()
	coverage := image.NewAlpha(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	z.Draw(coverage, coverage.Bounds(), image.Opaque, image.Point{})

	for y := range bounds.Dy() {
		row := m.Data[(y+bounds.Min.Y)*m.Size.Width+bounds.Min.X:]
		alphas := coverage.Pix[y*coverage.Stride:]
		for x := range bounds.Dx() {
			if alphas[x] >= coverageThreshold {
				row[x] = 1
			}
		}
	}
}

// clipPolygon clips the polygon to the rectangle [minX, maxX] x [minY, maxY] (Sutherland-Hodgman).
func clipPolygon(points []Point, minX, minY, maxX, maxY float64) []Point {
	type edge struct {
		inside    func(p Point) bool
		intersect func(a, b Point) Point
	}
	atX := func(a, b Point, x float64) Point {
		return Point{X: x, Y: a.Y + (b.Y-a.Y)*(x-a.X)/(b.X-a.X)}
	}
	atY := func(a, b Point, y float64) Point {
		return Point{X: a.X + (b.X-a.X)*(y-a.Y)/(b.Y-a.Y), Y: y}
	}
	edges := [4]edge{
		{func(p Point) bool { return p.X >= minX }, func(a, b Point) Point { return atX(a, b, minX) }},
		{func(p Point) bool { return p.X <= maxX }, func(a, b Point) Point { return atX(a, b, maxX) }},
		{func(p Point) bool { return p.Y >= minY }, func(a, b Point) Point { return atY(a, b, minY) }},
		{func(p Point) bool { return p.Y <= maxY }, func(a, b Point) Point { return atY(a, b, maxY) }},
	}
	for _, e := range edges {
		if len(points) == 0 {
			break
		}
		input := points
		points = make([]Point, 0, len(input)+4)
		prev := input[len(input)-1]
		for _, p := range input {
			switch {
			case e.inside(p) && e.inside(prev):
				points = append(points, p)
			case e.inside(p):
				points = append(points, e.intersect(prev, p), p)
			case e.inside(prev):
				points = append(points, e.intersect(prev, p))
			}
			prev = p
		}
	}
	return points
}

// circleSegments is the number of sides of the polygons used to approximate discs.
const circleSegments = 24

// FillDisc marks as occluded the pixels covered by the disc of the given center and radius.
func (m *Mask) FillDisc(center Point, radius float64) {
	if radius <= 0 {
		return
	}
	points := make([]Point, circleSegments)
	for ii := range points {
		angle := 2 * math.Pi * float64(ii) / circleSegments
		points[ii] = Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	m.FillPolygon(points)
}

// DrawLine marks as occluded a line segment from p0 to p1 with the given width and rounded ends.
func (m *Mask) DrawLine(p0, p1 Point, width float64) {
	halfWidth := width / 2
	m.FillDisc(p0, halfWidth)
	m.FillDisc(p1, halfWidth)
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Normal to the segment, scaled to half the width.
	nx, ny := -dy/length*halfWidth, dx/length*halfWidth
	m.FillPolygon([]Point{
		{p0.X + nx, p0.Y + ny},
		{p1.X + nx, p1.Y + ny},
		{p1.X - nx, p1.Y - ny},
		{p0.X - nx, p0.Y - ny},
	})
}

// DrawPolyline draws consecutive line segments through the given points, with round joins.
func (m *Mask) DrawPolyline(points []Point, width float64) {
	if len(points) == 1 {
		m.FillDisc(points[0], width/2)
		return
	}
	for ii := 1; ii < len(points); ii++ {
		m.DrawLine(points[ii-1], points[ii], width)
	}
}
