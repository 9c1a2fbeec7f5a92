package view

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/noah-isme/coursesync/internal/models"
)

const noDescription = "No description provided."

var descriptionPolicy = bluemonday.StrictPolicy()

// Card is the presentation summary of one course.
type Card struct {
	ID          string
	Title       string
	Name        string
	Description string
	Credits     int
	Enrolled    bool
}

// Cards builds presentation summaries. Descriptions are free text from other
// users, so markup is stripped before display.
func Cards(courses []models.Course, enrolled map[string]struct{}) []Card {
	cards := make([]Card, 0, len(courses))
	for _, c := range courses {
		description := strings.TrimSpace(descriptionPolicy.Sanitize(c.Description))
		if description == "" {
			description = noDescription
		}
		_, isEnrolled := enrolled[c.ID]
		cards = append(cards, Card{
			ID:          c.ID,
			Title:       c.Code(),
			Name:        c.Name,
			Description: description,
			Credits:     c.Credits,
			Enrolled:    isEnrolled,
		})
	}
	return cards
}
