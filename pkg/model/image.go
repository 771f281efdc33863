package model

// ImageInfo describes the carrier capacity of a bitmap
type ImageInfo struct {
	Width        uint32    `json:"width"`
	Height       uint32    `json:"height"`
	Depth        uint8     `json:"depth"`
	Masks        [4]uint32 `json:"masks"`
	ChannelMasks [4]uint32 `json:"channel_masks"`
	BitsPerPixel uint8     `json:"bits_per_pixel"`
	// Capacity is the largest payload that fits once the length prefix is accounted for
	Capacity uint64 `json:"capacity"`
}
