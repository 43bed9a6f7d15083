package domain

import "fmt"

// Envelope is an axis aligned bounding box. Coordinates are stored in the
// order given by the SRID's axis definition until normalised by the
// geometry handler, after which X is always easting/longitude.
type Envelope struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
	SRID int
}

func NewEnvelope(x1, y1, x2, y2 float64, srid int) Envelope {
	e := Envelope{MinX: x1, MinY: y1, MaxX: x2, MaxY: y2, SRID: srid}
	if e.MinX > e.MaxX {
		e.MinX, e.MaxX = e.MaxX, e.MinX
	}
	if e.MinY > e.MaxY {
		e.MinY, e.MaxY = e.MaxY, e.MinY
	}
	return e
}

func NewPointEnvelope(x, y float64, srid int) Envelope {
	return Envelope{MinX: x, MinY: y, MaxX: x, MaxY: y, SRID: srid}
}

func (e Envelope) IsPoint() bool {
	return e.MinX == e.MaxX && e.MinY == e.MaxY
}

// Union returns the smallest envelope containing both e and other. Both
// envelopes must share a reference system.
func (e Envelope) Union(other Envelope) (Envelope, error) {
	if e.SRID != other.SRID {
		return Envelope{}, fmt.Errorf("cannot union envelopes with srid %d and %d", e.SRID, other.SRID)
	}
	return Envelope{
		MinX: min(e.MinX, other.MinX),
		MinY: min(e.MinY, other.MinY),
		MaxX: max(e.MaxX, other.MaxX),
		MaxY: max(e.MaxY, other.MaxY),
		SRID: e.SRID,
	}, nil
}

func (e Envelope) Contains(other Envelope) bool {
	return other.MinX >= e.MinX && other.MaxX <= e.MaxX &&
		other.MinY >= e.MinY && other.MaxY <= e.MaxY
}

func (e Envelope) Intersects(other Envelope) bool {
	return !(other.MinX > e.MaxX || other.MaxX < e.MinX ||
		other.MinY > e.MaxY || other.MaxY < e.MinY)
}

// ExpandEnvelope is a nil tolerant union used when accumulating extents
func ExpandEnvelope(acc *Envelope, e *Envelope) *Envelope {
	if e == nil {
		return acc
	}
	if acc == nil {
		cpy := *e
		return &cpy
	}
	u, err := acc.Union(*e)
	if err != nil {
		return acc
	}
	return &u
}
