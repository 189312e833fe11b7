package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursecatalog/internal/app/models/dto"
)

// HealthController reports service liveness
type HealthController struct {
	storageDriver string
}

// NewHealthController creates a new HealthController
func NewHealthController(storageDriver string) *HealthController {
	return &HealthController{storageDriver: storageDriver}
}

// Health reports that the service is up and which storage backs it
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.HealthResponse{
		Status:  "ok",
		Storage: c.storageDriver,
	}))
}

// Ping answers liveness probes
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}
