package models

import (
	"fmt"
	"strings"
	"time"
)

type Contractor struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Service       string    `json:"service" gorm:"not null;index"`
	Rating        float64   `json:"rating"`
	Reviews       int       `json:"reviews"`
	Price         *string   `json:"price"`
	Image         *string   `json:"image"`
	Available     bool      `json:"available"`
	Verified      bool      `json:"verified"`
	Location      *string   `json:"location"`
	ResponseTime  *string   `json:"response_time"`
	CompletedJobs int       `json:"completed_jobs"`
	Description   *string   `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// ContractorRef is the slice of a contractor embedded in booking and dispute rows.
type ContractorRef struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Image   *string `json:"image"`
	Service string  `json:"service"`
}

func (ContractorRef) TableName() string {
	return "contractors"
}

func (c *Contractor) Ref() *ContractorRef {
	return &ContractorRef{ID: c.ID, Name: c.Name, Image: c.Image, Service: c.Service}
}

// FillDescription sets the profile blurb shown when the contractor wrote none.
func (c *Contractor) FillDescription() {
	if c.Description != nil && strings.TrimSpace(*c.Description) != "" {
		return
	}
	location := "local"
	if c.Location != nil && *c.Location != "" {
		location = *c.Location
	}
	text := fmt.Sprintf("Experienced %s professional serving the %s area. Committed to high-quality work and customer satisfaction.", c.Service, location)
	c.Description = &text
}

// ContractorFilter is the conjunction applied by the contractor browser.
// Zero values disable a condition.
type ContractorFilter struct {
	Service   string
	MinRating float64
	Available bool
	Verified  bool
}

func (f ContractorFilter) Matches(c Contractor) bool {
	if f.Service != "" && !strings.EqualFold(c.Service, f.Service) {
		return false
	}
	if c.Rating < f.MinRating {
		return false
	}
	if f.Available && !c.Available {
		return false
	}
	if f.Verified && !c.Verified {
		return false
	}
	return true
}

func FilterContractors(contractors []Contractor, f ContractorFilter) []Contractor {
	out := make([]Contractor, 0, len(contractors))
	for _, c := range contractors {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}
