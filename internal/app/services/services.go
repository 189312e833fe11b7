// Services defined in this package:
// - CourseService: Handles catalog operations and prerequisite rules
// - InstanceService: Handles scheduled course deliveries
package services

import (
	"sync"

	"github.com/yigit/coursecatalog/internal/app/repositories"
)

// Services holds all the service instances
type Services struct {
	CourseService   CourseService
	InstanceService InstanceService
}

// NewServices wires the services over the given repositories.
// Both services share one lock so that a course deletion and an instance
// creation cannot interleave their validation and mutation steps.
func NewServices(repos *repositories.Repositories) *Services {
	mu := &sync.RWMutex{}
	return &Services{
		CourseService:   NewCourseService(repos.CourseRepository, mu),
		InstanceService: NewInstanceService(repos.InstanceRepository, repos.CourseRepository, mu),
	}
}
