package dto

import "github.com/noah-isme/coursesync/internal/models"

// CourseRequest is the body sent when creating or updating a course.
type CourseRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Subject     string `json:"subject" validate:"required,max=32"`
	Number      int    `json:"number" validate:"gte=0,lte=9999"`
	Description string `json:"description"`
	Credits     int    `json:"credits" validate:"gte=1,lte=5"`
}

// Apply copies the request fields onto an existing course, keeping its identity.
func (r CourseRequest) Apply(course models.Course) models.Course {
	course.Name = r.Name
	course.Subject = r.Subject
	course.Number = r.Number
	course.Description = r.Description
	course.Credits = r.Credits
	return course
}

// ScheduleChangeRequest is the body for the enroll and drop endpoints.
type ScheduleChangeRequest struct {
	CourseID string `json:"courseId" validate:"required"`
}

// ErrorResponse is the failure body returned by the API.
type ErrorResponse struct {
	Message string `json:"message"`
}
