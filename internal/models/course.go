package models

import "strconv"

// Course is a catalog entry as served by the remote API.
type Course struct {
	ID          string `json:"_id"`
	Subject     string `json:"subject"`
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Credits     int    `json:"credits"`
	CreatedBy   string `json:"createdBy,omitempty"`
}

// Code renders the subject and number the way course listings show them, e.g. "CS 101".
func (c Course) Code() string {
	return c.Subject + " " + strconv.Itoa(c.Number)
}

// CloneCourses returns a copy of the slice so callers can edit it without aliasing.
func CloneCourses(courses []Course) []Course {
	if courses == nil {
		return nil
	}
	out := make([]Course, len(courses))
	copy(out, courses)
	return out
}
