package server

import (
	"bitsteg/api"
	"bitsteg/api/bitsteg/Steg"
	"bitsteg/internal/logging"
	"bitsteg/pkg/bitmap"
	stegImage "bitsteg/pkg/image"
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	flatbuffers "github.com/google/flatbuffers/go"
)

const octetStream = "application/octet-stream"

var errMalformedFlatbuffer = errors.New("request body is not a HideRequest flatbuffer")

// HideBMPHandler godoc
//
// @Summary Hide a payload in a bitmap
// @Description Hides the message, or the raw payload when one is given, in the least significant bits of the supplied bitmap and returns the modified bitmap. A request sent as application/octet-stream must be a HideRequest flatbuffer and is answered with a HideResponse flatbuffer, all errors are returned as JSON
// @Tags bmp
// @Accept json,octet-stream
// @Produce json,octet-stream
// @Param requestBody body api.HideRequest true "Body with the bitmap and the payload to hide in it"
// @Success 200 {object} api.HideResponse
// @Failure 400 {object} api.Error
// @Failure 413 {object} api.Error
// @Failure 500 {object} api.Error
// @Router /hide/bmp [post]
func (h *handlers) HideBMPHandler(ctx *gin.Context) {
	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("Processing bitmap hide request")

	binaryBody := ctx.ContentType() == octetStream
	var imageToEncode, payload []byte
	if binaryBody {
		body, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			abortWithBodyError(ctx, logger, err)
			return
		}
		if imageToEncode, payload, err = readHideRequest(body); err != nil {
			abortWithBodyError(ctx, logger, err)
			return
		}
	} else {
		var requestBody api.HideRequest
		if err := ctx.ShouldBindJSON(&requestBody); err != nil {
			abortWithBodyError(ctx, logger, err)
			return
		}
		imageToEncode, payload = requestBody.Image, requestBody.Payload
		if payload == nil {
			payload = []byte(requestBody.Message)
		}
	}

	bm, err := bitmap.FromBytes(imageToEncode)
	if err != nil {
		abortWithImageError(ctx, logger, err)
		return
	}

	imageEncoder := stegImage.NewImageEncoder(bm, h.config.Encode)
	if err = imageEncoder.Encode(payload); err != nil {
		abortWithEncodeError(ctx, logger, err)
		return
	}

	encodedImageBuffer := bytes.NewBuffer(make([]byte, 0, len(imageToEncode)))
	if err = imageEncoder.WriteEncodedBMP(encodedImageBuffer); err != nil {
		abortWithEncodeError(ctx, logger, err)
		return
	}

	logger.With("stats", toHumanizedEncodeStats(imageEncoder.Stats())).Info("Bitmap hide was successful")

	if binaryBody {
		ctx.Data(http.StatusOK, octetStream, buildHideResponse(encodedImageBuffer.Bytes()))
		return
	}
	ctx.JSON(http.StatusOK, api.HideResponse{Image: encodedImageBuffer.Bytes(), Stats: imageEncoder.Stats()})
}

// readHideRequest reads the vectors of a HideRequest flatbuffer. Offsets in the body are not trusted, a body that
// points outside of itself is reported as malformed.
func readHideRequest(body []byte) (image, message []byte, err error) {
	if len(body) < flatbuffers.SizeUOffsetT {
		return nil, nil, errMalformedFlatbuffer
	}
	defer func() {
		if r := recover(); r != nil {
			image, message, err = nil, nil, errMalformedFlatbuffer
		}
	}()

	request := Steg.GetRootAsHideRequest(body, 0)
	return request.ImageBytes(), request.MessageBytes(), nil
}

func buildHideResponse(encodedImage []byte) []byte {
	builder := flatbuffers.NewBuilder(len(encodedImage) + 64)
	imageOffset := builder.CreateByteVector(encodedImage)
	Steg.HideResponseStart(builder)
	Steg.HideResponseAddImage(builder, imageOffset)
	Steg.FinishHideResponseBuffer(builder, Steg.HideResponseEnd(builder))
	return builder.FinishedBytes()
}
