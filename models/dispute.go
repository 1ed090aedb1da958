package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DisputeStatusInReview = "In Review"

// Dispute types offered by the dispute center.
const (
	DisputeRefund  = "refund"
	DisputeQuality = "quality"
	DisputeNoShow  = "noshow"
)

func ValidDisputeType(t string) bool {
	switch t {
	case DisputeRefund, DisputeQuality, DisputeNoShow:
		return true
	}
	return false
}

type Dispute struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string          `json:"user_id" gorm:"type:varchar(36);index"`
	BookingID   *string         `json:"booking_id" gorm:"type:varchar(36);index"`
	Booking     *DisputeBooking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Status      *string         `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DisputeBooking is the booking summary embedded in dispute listings.
type DisputeBooking struct {
	ID           string         `json:"id"`
	Date         string         `json:"date"`
	Time         string         `json:"time"`
	Status       BookingStatus  `json:"status"`
	ContractorID *uint          `json:"contractor_id"`
	Contractor   *ContractorRef `json:"contractor,omitempty" gorm:"foreignKey:ContractorID"`
}

func (DisputeBooking) TableName() string {
	return "bookings"
}

func (d *Dispute) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
