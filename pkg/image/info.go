package image

import (
	"bitsteg/pkg/bitmap"
	"bitsteg/pkg/lsb"
	"bitsteg/pkg/model"
)

// Info summarises how much an image can hide
func Info(bm *bitmap.Bitmap) model.ImageInfo {
	channel := lsb.NewChannel(bm)
	format := bm.PixelFormat()

	return model.ImageInfo{
		Width:        bm.Width(),
		Height:       bm.Height(),
		Depth:        format.Depth,
		Masks:        format.Masks(),
		ChannelMasks: channel.Masks(),
		BitsPerPixel: channel.BitsPerPixel(),
		Capacity:     payloadCapacity(channel),
	}
}
