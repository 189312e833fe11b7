package dto

import "github.com/yigit/coursecatalog/internal/app/models"

// CreateInstanceRequest represents the payload for scheduling a course instance
type CreateInstanceRequest struct {
	CourseID string `json:"courseId" binding:"required,max=20" example:"CS101"`
	Year     int    `json:"year" binding:"required,gte=1900,lte=2200" example:"2024"`
	Semester int    `json:"semester" binding:"required,oneof=1 2" example:"1"`
}

// ToCreateInstanceData converts the request into service input
func (r CreateInstanceRequest) ToCreateInstanceData() models.CreateInstanceData {
	return models.CreateInstanceData{
		CourseID: r.CourseID,
		Year:     r.Year,
		Semester: models.Semester(r.Semester),
	}
}

// InstanceListQuery holds the optional filters for listing instances
type InstanceListQuery struct {
	Year     *int `form:"year" binding:"omitempty,gte=1900,lte=2200"`
	Semester *int `form:"semester" binding:"omitempty,oneof=1 2"`
}

// ToFilter converts the query into a repository filter
func (q InstanceListQuery) ToFilter() models.InstanceFilter {
	filter := models.InstanceFilter{Year: q.Year}
	if q.Semester != nil {
		semester := models.Semester(*q.Semester)
		filter.Semester = &semester
	}
	return filter
}

// InstancePathParams binds the (year, semester, courseId) triple from the URL
type InstancePathParams struct {
	Year     int    `uri:"year" binding:"required"`
	Semester int    `uri:"semester" binding:"required"`
	CourseID string `uri:"courseId" binding:"required"`
}

// Key converts the path parameters into an instance key
func (p InstancePathParams) Key() models.InstanceKey {
	return models.InstanceKey{
		CourseID: p.CourseID,
		Year:     p.Year,
		Semester: models.Semester(p.Semester),
	}
}
