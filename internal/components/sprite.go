package components

import "nova-arena/internal/ecs"

// Sprite is opaque rendering state replicated to clients; the server
// never interprets it beyond storing and forwarding it.
type Sprite struct {
	TextureKey string  `json:"textureKey"`
	SrcX       int     `json:"srcX"`
	SrcY       int     `json:"srcY"`
	SrcW       int     `json:"srcW"`
	SrcH       int     `json:"srcH"`
	ScaleX     float64 `json:"scaleX"`
	ScaleY     float64 `json:"scaleY"`
	Rotation   float64 `json:"rotation"`
	FlipX      bool    `json:"flipX"`
	FlipY      bool    `json:"flipY"`
	ZLayer     int     `json:"zLayer"`
}

func (*Sprite) Type() ecs.ComponentType { return ecs.CSprite }
