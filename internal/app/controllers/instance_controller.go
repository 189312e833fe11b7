package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursecatalog/internal/app/models/dto"
	"github.com/yigit/coursecatalog/internal/app/services"
	"github.com/yigit/coursecatalog/internal/middleware"
)

// InstanceController handles course instance operations
type InstanceController struct {
	instanceService services.InstanceService
}

// NewInstanceController creates a new InstanceController
func NewInstanceController(instanceService services.InstanceService) *InstanceController {
	return &InstanceController{
		instanceService: instanceService,
	}
}

// ListInstances retrieves course instances
// @Summary List course instances
// @Description Retrieves scheduled course instances, optionally filtered by year and semester
// @Tags instances
// @Produce json
// @Param year query int false "Academic year"
// @Param semester query int false "Semester" Enums(1, 2)
// @Success 200 {object} dto.APIResponse{data=[]models.CourseInstance} "Instances retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instances [get]
func (c *InstanceController) ListInstances(ctx *gin.Context) {
	var query dto.InstanceListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	instances, err := c.instanceService.ListInstances(ctx, query.ToFilter())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(instances))
}

// GetInstance retrieves a course instance
// @Summary Get course instance details
// @Description Retrieves the instance of a course in a given year and semester
// @Tags instances
// @Produce json
// @Param year path int true "Academic year"
// @Param semester path int true "Semester" Enums(1, 2)
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.CourseInstance} "Instance retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid path parameters"
// @Failure 404 {object} dto.ErrorResponse "Instance not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instances/{year}/{semester}/{courseId} [get]
func (c *InstanceController) GetInstance(ctx *gin.Context) {
	var params dto.InstancePathParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	instance, err := c.instanceService.GetInstance(ctx, params.Key())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(instance))
}

// CreateInstance schedules a course instance
// @Summary Create a course instance
// @Description Schedules a course for a year and semester; each course at most once per semester
// @Tags instances
// @Accept json
// @Produce json
// @Param request body dto.CreateInstanceRequest true "Instance information"
// @Success 201 {object} dto.APIResponse{data=models.CourseInstance} "Instance created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Instance already exists"
// @Failure 422 {object} dto.ErrorResponse "Unknown course"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instances [post]
func (c *InstanceController) CreateInstance(ctx *gin.Context) {
	var req dto.CreateInstanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	instance, err := c.instanceService.CreateInstance(ctx, req.ToCreateInstanceData())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(instance))
}

// DeleteInstance removes a course instance
// @Summary Delete a course instance
// @Description Deletes the instance of a course in a given year and semester
// @Tags instances
// @Produce json
// @Param year path int true "Academic year"
// @Param semester path int true "Semester" Enums(1, 2)
// @Param courseId path string true "Course ID"
// @Success 204 "Instance deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid path parameters"
// @Failure 404 {object} dto.ErrorResponse "Instance not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instances/{year}/{semester}/{courseId} [delete]
func (c *InstanceController) DeleteInstance(ctx *gin.Context) {
	var params dto.InstancePathParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.instanceService.DeleteInstance(ctx, params.Key()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
