package game

// Direction is a cardinal movement command as it arrives on the wire.
type Direction string

const (
	DirUp    Direction = "UP"
	DirDown  Direction = "DOWN"
	DirLeft  Direction = "LEFT"
	DirRight Direction = "RIGHT"
)

type vec struct {
	dx int
	dy int
}

var directions = map[Direction]vec{
	DirUp:    {0, -1},
	DirDown:  {0, 1},
	DirLeft:  {-1, 0},
	DirRight: {1, 0},
}

// Opposite returns the reversing direction, or "" for an unknown one.
func Opposite(d Direction) Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return ""
}

type ItemType string

const (
	ItemBone ItemType = "bone"
	ItemPoop ItemType = "poop"
)

// Dog is one player's avatar on the grid, addressed by slot.
type Dog struct {
	PlayerID int    `json:"playerId"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Color    string `json:"color"`
	DogName  string `json:"dogName"`
}

// Move shifts the dog one cell with toroidal wraparound. Unknown
// directions are ignored rather than rejected.
func (d *Dog) Move(dir Direction, width, height int) {
	v, ok := directions[dir]
	if !ok {
		return
	}
	d.X = ((d.X+v.dx)%width + width) % width
	d.Y = ((d.Y+v.dy)%height + height) % height
}

type Item struct {
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Type  ItemType `json:"type"`
	Value int      `json:"value"`
}

// Snapshot is the wire representation of a match, rebuilt every tick.
type Snapshot struct {
	Dogs          []Dog  `json:"dogs"`
	Items         []Item `json:"items"`
	Scores        [2]int `json:"scores"`
	TimeRemaining int    `json:"timeRemaining"`
	GameOver      bool   `json:"gameOver"`
	Winner        *int   `json:"winner"`
}
