// Package move defines the four slide directions. A direction is the
// entirety of a player move in this game; everything else about a move
// (resulting board, points, legality) is derived by the simulator.
package move

import (
	"fmt"
	"strings"
)

// Direction is one of the four slides. The numeric order is the fixed
// enumeration order used everywhere results are reported, and it is
// the deterministic tiebreak between equally scored directions.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// All lists the directions in enumeration order.
var All = [4]Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// Parse accepts a direction name or its first letter, case-insensitive.
func Parse(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}
