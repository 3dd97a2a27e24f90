package components

import "nova-arena/internal/ecs"

// AnimationClip describes one named clip within an AnimationSet.
type AnimationClip struct {
	Frames       []int   `json:"frames"`
	FrameSeconds float64 `json:"frameSeconds"`
	Loop         bool    `json:"loop"`
	NextClip     string  `json:"nextClip,omitempty"`
}

// AnimationSet maps clip names to their playback definition. It is
// effectively an opaque asset-table reference replicated to clients.
type AnimationSet struct {
	Clips map[string]AnimationClip `json:"clips"`
}

func (*AnimationSet) Type() ecs.ComponentType { return ecs.CAnimationSet }

// Animation is the per-entity playback cursor into an AnimationSet.
type Animation struct {
	CurrentClip string  `json:"currentClip"`
	FrameIndex  int     `json:"frameIndex"`
	FrameTimer  float64 `json:"frameTimer"`
	Playing     bool    `json:"playing"`
	Looping     bool    `json:"looping"`
}

func (*Animation) Type() ecs.ComponentType { return ecs.CAnimation }
