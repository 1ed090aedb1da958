package utils

import (
	"context"

	"github.com/meinhoongagan/homeconnect-pro/db"
	"github.com/meinhoongagan/homeconnect-pro/models"
)

// CheckAvailability reports whether the contractor has no live booking in the
// given date and slot. Cancelled bookings free their slot.
func CheckAvailability(ctx context.Context, contractorID uint, date, slot string) (bool, error) {
	var count int64
	err := db.DB.WithContext(ctx).
		Model(&models.Booking{}).
		Where("contractor_id = ? AND date = ? AND time = ? AND status <> ?", contractorID, date, slot, models.BookingCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
