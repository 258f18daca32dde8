package domain

// Point is a draggable pin in the puzzle graph. Z is a cosmetic depth
// offset used by the renderer to layer ropes; tangle math only reads X, Y.
type Point struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z,omitempty"`
	Color string  `json:"color,omitempty"`
}

// Edge is an unordered rope between two pins. The edge set is fixed for
// the lifetime of a level; only the tangled flag derived from it changes.
type Edge struct {
	ID string `json:"id"`
	P1 string `json:"p1"`
	P2 string `json:"p2"`
}

// Level is a generated puzzle: points in ring order plus the edge list.
type Level struct {
	ID        string  `json:"id,omitempty"`
	Index     int     `json:"index"`
	Seed      int64   `json:"seed,omitempty"`
	Points    []Point `json:"points"`
	Edges     []Edge  `json:"edges"`
	CreatedAt int64   `json:"createdAt,omitempty"`
	// Optional user metadata
	Name string `json:"name,omitempty"`
}

// LevelMeta is a lightweight listing entry for saved levels.
type LevelMeta struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Index     int    `json:"index"`
	CreatedAt int64  `json:"createdAt"`
}

// Fault describes one structural problem found in a Level.
type Fault struct {
	Ref    string `json:"ref"` // offending point or edge id
	Reason string `json:"reason"`
}

// Hint suggests a pin to drag and why.
type Hint struct {
	Message string `json:"message,omitempty"`
	PointID string `json:"pointId,omitempty"`
	EdgeID  string `json:"edgeId,omitempty"`
}

// Progress is the host-side record of how far a player has come.
type Progress struct {
	Unlocked  int   `json:"unlocked"`
	UpdatedAt int64 `json:"updatedAt,omitempty"`
}
