package server

import (
	"bitsteg/pkg/config"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "bitsteg/docs"
)

const (
	RFC3339Millis = "2006-01-02T15:04:05.000Z07:00"
)

type handlers struct {
	config config.ServerConfig
}

// StartServer godoc
// @title bitsteg API
// @version 1.0
// @description An API to hide data in the least significant bits of bitmap images
// @BasePath /api/v1
func StartServer(sConfig config.ServerConfig) error {
	sConfig.PopulateUnsetConfigVars()
	return NewRouter(sConfig).Run(fmt.Sprintf(":%d", sConfig.Port))
}

func NewRouter(sConfig config.ServerConfig) *gin.Engine {
	sConfig.PopulateUnsetConfigVars()
	h := &handlers{config: sConfig}

	r := gin.New()
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{Formatter: logFormatter}), gin.Recovery())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1", limitBodySize(sConfig.MaxBodyBytes))
	v1.POST("/hide/bmp", h.HideBMPHandler)
	v1.POST("/show/bmp", h.ShowBMPHandler)
	v1.POST("/info/bmp", h.InfoBMPHandler)

	return r
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxBytes)
		ctx.Next()
	}
}

type accessLog struct {
	Timestamp       string `json:"timestamp"`
	StatusCode      int    `json:"status_code"`
	Latency         string `json:"latency"`
	LatencyRaw      int64  `json:"latency_raw"`
	ResponseSize    string `json:"response_size"`
	ResponseSizeRaw int    `json:"response_size_raw"`
	ClientIP        string `json:"client_ip"`
	Method          string `json:"method"`
	Path            string `json:"path"`
	Error           string `json:"error"`
}

func logFormatter(param gin.LogFormatterParams) string {
	if param.Latency > time.Minute {
		param.Latency = param.Latency.Truncate(time.Second)
	}

	size := param.BodySize
	if size < 0 {
		size = 0
	}
	line, err := json.Marshal(accessLog{
		Timestamp:       param.TimeStamp.Format(RFC3339Millis),
		StatusCode:      param.StatusCode,
		Latency:         param.Latency.String(),
		LatencyRaw:      int64(param.Latency),
		ResponseSize:    humanize.Bytes(uint64(size)),
		ResponseSizeRaw: param.BodySize,
		ClientIP:        param.ClientIP,
		Method:          param.Method,
		Path:            param.Path,
		Error:           param.ErrorMessage,
	})
	if err != nil {
		return fmt.Sprintf("{\"error\":%q}\n", err.Error())
	}
	return string(line) + "\n"
}
