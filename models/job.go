package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Urgency levels a homeowner can pick when posting a job.
const (
	UrgencyFlexible  = "flexible"
	UrgencySoon      = "soon"
	UrgencyUrgent    = "urgent"
	UrgencyEmergency = "emergency"
)

// Static matching rule used by the post-job flow.
const (
	MatchMinRating = 4.5
	MatchLimit     = 4
)

var (
	ErrMissingJobFields = errors.New("category, description and location are required")
	ErrInvalidUrgency   = errors.New("invalid urgency level")
	ErrInvalidBudget    = errors.New("invalid budget range")
)

type Job struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string    `json:"user_id" gorm:"type:varchar(36);index"`
	Category    string    `json:"category" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Location    string    `json:"location" gorm:"not null"`
	Urgency     string    `json:"urgency" gorm:"not null"`
	BudgetMin   *int      `json:"budget_min"`
	BudgetMax   *int      `json:"budget_max"`
	CreatedAt   time.Time `json:"created_at"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}

// Normalize trims the free-text fields and applies the default urgency.
func (j *Job) Normalize() {
	j.Category = strings.TrimSpace(j.Category)
	j.Description = strings.TrimSpace(j.Description)
	j.Location = strings.TrimSpace(j.Location)
	j.Urgency = strings.ToLower(strings.TrimSpace(j.Urgency))
	if j.Urgency == "" {
		j.Urgency = UrgencyFlexible
	}
}

func (j *Job) Validate() error {
	if j.Category == "" || j.Description == "" || j.Location == "" {
		return ErrMissingJobFields
	}
	switch j.Urgency {
	case UrgencyFlexible, UrgencySoon, UrgencyUrgent, UrgencyEmergency:
	default:
		return ErrInvalidUrgency
	}
	if (j.BudgetMin != nil && *j.BudgetMin < 0) || (j.BudgetMax != nil && *j.BudgetMax < 0) {
		return ErrInvalidBudget
	}
	if j.BudgetMin != nil && j.BudgetMax != nil && *j.BudgetMin > *j.BudgetMax {
		return ErrInvalidBudget
	}
	return nil
}
