package labs

import (
	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-labs"
)

type DrawMode int

const (
	ModePoint DrawMode = iota
	ModeTriangle
	ModeCircle
)

func (m DrawMode) String() string {
	switch m {
	case ModePoint:
		return "point"
	case ModeTriangle:
		return "triangle"
	case ModeCircle:
		return "circle"
	}
	return "unknown"
}

// Palette is shared by the draw and clear colour selections; index 7 is
// the default background.
var Palette = [8]mgl32.Vec3{
	{0, 0, 0},
	{1, 0, 0},
	{1, 1, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 0, 1},
	{0, 1, 1},
	{0.3921, 0.5843, 0.9294},
}

const PaintPointPixels = 20

type shapeKind int

const (
	shapePoint shapeKind = iota
	shapeTriangle
	shapeCircle
)

type paintVertex struct {
	p mgl32.Vec2
	c mgl32.Vec3
}

type paintShape struct {
	kind   shapeKind
	v      [3]paintVertex
	radius float32
}

// Canvas is the paint program state. Clicks are in clip space.
type Canvas struct {
	Mode       DrawMode
	DrawColor  int
	ClearColor int

	shapes       []paintShape
	pendingTri   []paintVertex
	circleCenter *paintVertex
	version      uint64
}

func NewCanvas() *Canvas {
	return &Canvas{ClearColor: 7}
}

// SetMode switches the drawing mode; half-finished shapes are kept.
func (c *Canvas) SetMode(m DrawMode) {
	c.Mode = m
}

func (c *Canvas) SetDrawColor(i int) {
	if i >= 0 && i < len(Palette) {
		c.DrawColor = i
	}
}

func (c *Canvas) SetClearColor(i int) {
	if i >= 0 && i < len(Palette) {
		c.ClearColor = i
	}
}

func (c *Canvas) Click(p mgl32.Vec2) {
	v := paintVertex{p: p, c: Palette[c.DrawColor]}
	switch c.Mode {
	case ModePoint:
		c.shapes = append(c.shapes, paintShape{kind: shapePoint, v: [3]paintVertex{v}})
	case ModeTriangle:
		c.pendingTri = append(c.pendingTri, v)
		if len(c.pendingTri) == 3 {
			c.shapes = append(c.shapes, paintShape{kind: shapeTriangle, v: [3]paintVertex(c.pendingTri)})
			c.pendingTri = c.pendingTri[:0]
		}
	case ModeCircle:
		if c.circleCenter == nil {
			c.circleCenter = &v
		} else {
			center := *c.circleCenter
			c.shapes = append(c.shapes, paintShape{
				kind:   shapeCircle,
				v:      [3]paintVertex{center, v},
				radius: p.Sub(center.p).Len(),
			})
			c.circleCenter = nil
		}
	}
	c.version++
}

// Clear drops finished and pending shapes.
func (c *Canvas) Clear() {
	c.shapes = nil
	c.pendingTri = nil
	c.circleCenter = nil
	c.version++
}

func (c *Canvas) ShapeCount() int { return len(c.shapes) }

func (c *Canvas) PendingCount() int {
	n := len(c.pendingTri)
	if c.circleCenter != nil {
		n++
	}
	return n
}

// Version changes whenever the vertex data would.
func (c *Canvas) Version() uint64 { return c.version }

// Vertices flattens all shapes into a triangle list. Pending triangle
// corners and a pending circle centre are drawn as points.
func (c *Canvas) Vertices(pointSize float32) ([]mgl32.Vec2, []mgl32.Vec3) {
	var positions []mgl32.Vec2
	var colors []mgl32.Vec3
	addPoint := func(v paintVertex) {
		quad := gekko.PointQuad(v.p, pointSize)
		positions = append(positions, quad...)
		for range quad {
			colors = append(colors, v.c)
		}
	}
	for _, s := range c.shapes {
		switch s.kind {
		case shapePoint:
			addPoint(s.v[0])
		case shapeTriangle:
			for _, v := range s.v {
				positions = append(positions, v.p)
				colors = append(colors, v.c)
			}
		case shapeCircle:
			p, col := gekko.CircleFan(s.v[0].p, s.radius, gekko.DefaultCircleSegments, s.v[0].c, s.v[1].c)
			positions = append(positions, p...)
			colors = append(colors, col...)
		}
	}
	for _, v := range c.pendingTri {
		addPoint(v)
	}
	if c.circleCenter != nil {
		addPoint(*c.circleCenter)
	}
	return positions, colors
}
