package server

import (
	"bitsteg/api"
	"bitsteg/internal/logging"
	"bitsteg/pkg/bitmap"
	stegImage "bitsteg/pkg/image"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	errRequestBodyDecode   = api.Error{Code: "invalid_body", Error: "Error reading request body"}
	errRequestBodyTooLarge = api.Error{Code: "body_too_large", Error: "Request body exceeds the configured size limit"}
	errInvalidImage        = api.Error{Code: "invalid_image", Error: "Invalid bitmap supplied in request body"}
	errImageNotBigEnough   = api.Error{Code: "image_too_small", Error: "Supplied image is not big enough to hide the payload"}
	errEmptyPayload        = api.Error{Code: "empty_payload", Error: "Payload to hide is empty"}
	errDecode              = api.Error{Code: "decode_error", Error: "Image does not contain a decodable payload"}
	errEncode              = api.Error{Code: "encode_error", Error: "An error occurred while hiding the payload"}
	errInternal            = api.Error{Error: "Internal server error"}
)

func abortWithBodyError(ctx *gin.Context, logger *logging.Logger, err error) {
	logger.WithError(err).Error("Error reading request body")

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		ctx.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, errRequestBodyTooLarge)
		return
	}
	ctx.AbortWithStatusJSON(http.StatusBadRequest, errRequestBodyDecode)
}

func abortWithImageError(ctx *gin.Context, logger *logging.Logger, err error) {
	logger.WithError(err).Error("Error opening request image")

	if errors.Is(err, bitmap.ErrFormat) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errInvalidImage)
		return
	}
	ctx.AbortWithStatusJSON(http.StatusInternalServerError, errInternal)
}

func abortWithEncodeError(ctx *gin.Context, logger *logging.Logger, err error) {
	logger.WithError(err).Error("Error hiding payload in image")

	switch {
	case errors.Is(err, stegImage.ErrImageNotBigEnough):
		ctx.AbortWithStatusJSON(http.StatusBadRequest, api.Error{Code: errImageNotBigEnough.Code, Error: err.Error()})
	case errors.Is(err, stegImage.ErrEmptyPayload):
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errEmptyPayload)
	default:
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, errEncode)
	}
}

func abortWithDecodeError(ctx *gin.Context, logger *logging.Logger, err error) {
	logger.WithError(err).Error("Error decoding payload from image")

	if errors.Is(err, stegImage.ErrDecodeFileBounds) || errors.Is(err, stegImage.ErrMaxAllocExceeded) {
		ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, errDecode)
		return
	}
	ctx.AbortWithStatusJSON(http.StatusInternalServerError, errInternal)
}
