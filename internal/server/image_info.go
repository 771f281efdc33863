package server

import (
	"bitsteg/api"
	"bitsteg/internal/logging"
	"bitsteg/pkg/bitmap"
	stegImage "bitsteg/pkg/image"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
)

// InfoBMPHandler godoc
//
// @Summary Describe a bitmap
// @Description Returns the dimensions, pixel format and hiding capacity of the supplied bitmap
// @Tags bmp
// @Accept json
// @Produce json
// @Param requestBody body api.InfoRequest true "Body with the bitmap to describe"
// @Success 200 {object} api.InfoResponse
// @Failure 400 {object} api.Error
// @Failure 413 {object} api.Error
// @Router /info/bmp [post]
func (h *handlers) InfoBMPHandler(ctx *gin.Context) {
	var requestBody api.InfoRequest

	logger := logging.BuildLoggerFromCtx(ctx)

	if err := ctx.ShouldBindJSON(&requestBody); err != nil {
		abortWithBodyError(ctx, logger, err)
		return
	}

	bm, err := bitmap.FromBytes(requestBody.Image)
	if err != nil {
		abortWithImageError(ctx, logger, err)
		return
	}

	info := stegImage.Info(bm)
	ctx.JSON(http.StatusOK, api.InfoResponse{ImageInfo: info, CapacityHuman: humanize.IBytes(info.Capacity)})
}
