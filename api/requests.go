package api

import "bitsteg/pkg/model"

type HideRequest struct {
	// Image is a bitmap file, 24 bit uncompressed or bitfields
	Image []byte `json:"image" binding:"required"`
	// Message is hidden as UTF-8 text unless Payload is set
	Message string `json:"message"`
	Payload []byte `json:"payload,omitempty"`
}

type HideResponse struct {
	Image []byte            `json:"image"`
	Stats model.EncodeStats `json:"stats"`
}

type ShowRequest struct {
	Image []byte `json:"image" binding:"required"`
}

type ShowResponse struct {
	Message []byte `json:"message"`
	// Text is only set when the hidden payload is valid UTF-8
	Text *string `json:"text,omitempty"`
}

type InfoRequest struct {
	Image []byte `json:"image" binding:"required"`
}

type InfoResponse struct {
	model.ImageInfo
	CapacityHuman string `json:"capacity_human"`
}
