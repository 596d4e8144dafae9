package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/txledger/pkg/config"
	"github.com/fatflowers/txledger/pkg/response"
)

// HealthStatus reports liveness and the backends this instance was started with.
type HealthStatus struct {
	Status     string `json:"status"`
	Storage    string `json:"storage,omitempty"`
	Queue      string `json:"queue,omitempty"`
	Encryption string `json:"encryption,omitempty"`
}

// @Summary      Health check
// @Description  Returns service status and the configured storage, queue and encryption drivers
// @Tags         System
// @Produce      json
// @Success      200  {object}  handlers.RespHealth
// @Router       /healthz [get]
func Healthz(cfg *config.Config) gin.HandlerFunc {
	status := HealthStatus{Status: "ok"}
	if cfg != nil {
		status.Storage = string(cfg.Storage.Driver)
		status.Queue = string(cfg.Queue.Driver)
		status.Encryption = string(cfg.Encryption.Driver)
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response.OKT(status))
	}
}

func RegisterHealthRoutes(r gin.IRouter, cfg *config.Config) {
	r.GET("/healthz", Healthz(cfg))
}
