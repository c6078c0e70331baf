package component

import "fringe-client/internal/ecs"

const CPosition ecs.ComponentType = 1

// Position is an actor's world pixel position: the bottom-center of the
// tile it stands on.
type Position struct {
	X, Y int
}

func (Position) Type() ecs.ComponentType { return CPosition }

// Tile returns the tile holding the position.
func (p Position) Tile(tileSize int) (int, int) {
	return p.X / tileSize, (p.Y - 1) / tileSize
}

// AtTile returns the position of an actor standing on tile (x, y).
func AtTile(x, y, tileSize int) Position {
	return Position{X: x*tileSize + tileSize/2, Y: (y + 1) * tileSize}
}
