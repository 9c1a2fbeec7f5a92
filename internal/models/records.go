package models

import "time"

// CourseRecord is the persisted course row used by the development API.
type CourseRecord struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Subject     string    `gorm:"size:32;not null;index"`
	Number      int       `gorm:"not null"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text"`
	Credits     int       `gorm:"not null"`
	CreatedBy   string    `gorm:"size:64;index"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

// ToCourse maps the row onto the wire model.
func (r CourseRecord) ToCourse() Course {
	return Course{
		ID:          r.ID,
		Subject:     r.Subject,
		Number:      r.Number,
		Name:        r.Name,
		Description: r.Description,
		Credits:     r.Credits,
		CreatedBy:   r.CreatedBy,
	}
}

// UserRecord is the persisted account row used by the development API.
type UserRecord struct {
	ID           string `gorm:"primaryKey;size:64"`
	Username     string `gorm:"size:128;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         Role   `gorm:"size:16;not null"`
	CreatedAt    time.Time
}

// ToUser maps the row onto the wire model.
func (r UserRecord) ToUser() User {
	return User{ID: r.ID, Username: r.Username, Role: r.Role}
}

// Enrollment links a user to a course in their schedule.
type Enrollment struct {
	UserID    string    `gorm:"primaryKey;size:64"`
	CourseID  string    `gorm:"primaryKey;size:64"`
	CreatedAt time.Time `gorm:"index"`
}
