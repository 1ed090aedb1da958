package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingUpcoming  BookingStatus = "upcoming"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

var (
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrStaleStatus       = errors.New("booking status changed concurrently")
)

type Booking struct {
	ID           string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string         `json:"user_id" gorm:"type:varchar(36);index"`
	User         *User          `json:"-" gorm:"foreignKey:UserID"`
	ContractorID *uint          `json:"contractor_id" gorm:"index"`
	Contractor   *ContractorRef `json:"contractor,omitempty" gorm:"foreignKey:ContractorID"`
	Date         string         `json:"date" gorm:"index"` // YYYY-MM-DD
	Time         string         `json:"time"`              // slot label, e.g. "9:00 AM"
	Notes        *string        `json:"notes"`
	Status       BookingStatus  `json:"status" gorm:"index"`
	Price        *int           `json:"price"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	return nil
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingUpcoming || next == BookingCancelled
	case BookingUpcoming:
		return next == BookingCompleted || next == BookingCancelled
	default:
		return false
	}
}

// UpdateStatus moves the booking to newStatus. The write is conditional on the
// status the caller loaded, so a concurrent change yields ErrStaleStatus.
func (b *Booking) UpdateStatus(tx *gorm.DB, newStatus BookingStatus) error {
	if !b.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("%w from %s to %s", ErrInvalidTransition, b.Status, newStatus)
	}

	res := tx.Model(&Booking{}).
		Where("id = ? AND status = ?", b.ID, b.Status).
		Update("status", newStatus)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}

	b.Status = newStatus
	return nil
}

// MarkPaid records the mock payment: pending bookings become upcoming.
func (b *Booking) MarkPaid(tx *gorm.DB) error {
	return b.UpdateStatus(tx, BookingUpcoming)
}

// FilterBookingsByStatus keeps the bookings whose status equals status.
// "all" and "" keep everything.
func FilterBookingsByStatus(bookings []Booking, status string) []Booking {
	if status == "" || status == "all" {
		return bookings
	}
	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		if string(b.Status) == status {
			out = append(out, b)
		}
	}
	return out
}
