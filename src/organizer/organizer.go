package organizer

import (
	"errors"
	"math"
)

const (
	DefaultLines   = 5
	DefaultColumns = 6
)

var (
	ErrInvalidID     = errors.New("pokemon id can't be under 1")
	ErrInvalidLayout = errors.New("box must have at least one line and one column and fit in an int")
)

// Placement locates a national pokedex id in storage boxes. All fields are 1-based.
type Placement struct {
	Box    int `json:"box"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Place files ids in national order, filling each box line by line.
func Place(id, lines, columns int) (Placement, error) {
	if id < 1 {
		return Placement{}, ErrInvalidID
	}
	if lines < 1 || columns < 1 || lines > math.MaxInt/columns {
		return Placement{}, ErrInvalidLayout
	}
	perBox := lines * columns
	position := (id - 1) % perBox
	return Placement{
		Box:    (id-1)/perBox + 1,
		Line:   position/columns + 1,
		Column: position%columns + 1,
	}, nil
}
