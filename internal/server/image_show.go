package server

import (
	"bitsteg/api"
	"bitsteg/internal/logging"
	"bitsteg/pkg/bitmap"
	stegImage "bitsteg/pkg/image"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

// ShowBMPHandler godoc
//
// @Summary Show the payload hidden in a bitmap
// @Description Decodes the payload previously hidden in the supplied bitmap. The text field is only present when the payload is valid UTF-8
// @Tags bmp
// @Accept json
// @Produce json
// @Param requestBody body api.ShowRequest true "Body with the bitmap to decode"
// @Success 200 {object} api.ShowResponse
// @Failure 400 {object} api.Error
// @Failure 413 {object} api.Error
// @Failure 422 {object} api.Error
// @Failure 500 {object} api.Error
// @Router /show/bmp [post]
func (h *handlers) ShowBMPHandler(ctx *gin.Context) {
	var requestBody api.ShowRequest

	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("Processing bitmap show request")

	if err := ctx.ShouldBindJSON(&requestBody); err != nil {
		abortWithBodyError(ctx, logger, err)
		return
	}

	bm, err := bitmap.FromBytes(requestBody.Image)
	if err != nil {
		abortWithImageError(ctx, logger, err)
		return
	}

	imageDecoder := stegImage.NewImageDecoder(bm, h.config.Decode)
	payload, err := imageDecoder.Decode()
	if err != nil {
		abortWithDecodeError(ctx, logger, err)
		return
	}

	logger.With("stats", toHumanizedDecodeStats(imageDecoder.Stats())).Info("Bitmap show was successful")

	response := api.ShowResponse{Message: payload}
	if utf8.Valid(payload) {
		text := string(payload)
		response.Text = &text
	}
	ctx.JSON(http.StatusOK, response)
}
