package dto

import "github.com/yigit/coursecatalog/internal/app/models"

// CreateCourseRequest represents the payload for creating a course
type CreateCourseRequest struct {
	ID            string   `json:"id" binding:"required,max=20" example:"CS101"`
	Title         string   `json:"title" binding:"required,max=200" example:"Introduction to Computer Science"`
	Description   string   `json:"description" binding:"max=2000" example:"Fundamental concepts of computer science and programming"`
	Prerequisites []string `json:"prerequisites" binding:"omitempty,dive,required" example:"MATH101"`
}

// ToCreateCourseData converts the request into service input
func (r CreateCourseRequest) ToCreateCourseData() models.CreateCourseData {
	return models.CreateCourseData{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Prerequisites: r.Prerequisites,
	}
}

// DependentsResponse reports whether a course can be deleted and which courses block it
type DependentsResponse struct {
	CourseID   string   `json:"courseId" example:"CS101"`
	CanDelete  bool     `json:"canDelete" example:"false"`
	Dependents []string `json:"dependents" example:"CS201"`
}
