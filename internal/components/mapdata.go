package components

import "nova-arena/internal/ecs"

// MapData drives map scrolling for a room. There is at most one active
// MapData entity per room.
type MapData struct {
	MapID        string  `json:"mapId"`
	DisplayName  string  `json:"displayName"`
	ScrollSpeed  float64 `json:"scrollSpeed"` // px/s
	Background   string  `json:"background"`
	Parallax     float64 `json:"parallax,omitempty"`
	SpawnScript  string  `json:"spawnScript,omitempty"`
	Duration     float64 `json:"duration"` // 0 = infinite
	NextMapID    string  `json:"nextMapId,omitempty"`
	ElapsedTime  float64 `json:"elapsedTime"`
	Completed    bool    `json:"completed"`
}

func (*MapData) Type() ecs.ComponentType { return ecs.CMapData }
