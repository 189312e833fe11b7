package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/coursecatalog/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	instanceController *controllers.InstanceController,
	healthController *controllers.HealthController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.POST("", courseController.CreateCourse)
		courses.GET("/:id", courseController.GetCourse)
		courses.DELETE("/:id", courseController.DeleteCourse)
		courses.GET("/:id/dependents", courseController.GetDependents)
	}

	instances := v1.Group("/instances")
	{
		instances.GET("", instanceController.ListInstances)
		instances.POST("", instanceController.CreateInstance)
		instances.GET("/:year/:semester/:courseId", instanceController.GetInstance)
		instances.DELETE("/:year/:semester/:courseId", instanceController.DeleteInstance)
	}

	v1.GET("/health", healthController.Health)

	// Liveness probe
	router.GET("/ping", healthController.Ping)
}
