package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meinhoongagan/homeconnect-pro/db"
	"github.com/meinhoongagan/homeconnect-pro/logger"
	"github.com/meinhoongagan/homeconnect-pro/middleware"
	"github.com/meinhoongagan/homeconnect-pro/models"
	"github.com/meinhoongagan/homeconnect-pro/utils"
)

// GetBookings lists every booking with its contractor, newest date first.
// ?status= narrows the list to one status.
func GetBookings(c *fiber.Ctx) error {
	var bookings []models.Booking
	err := db.DB.WithContext(c.UserContext()).
		Preload("Contractor").
		Order("date DESC").
		Find(&bookings).Error
	if err != nil {
		logger.Log.Error("fetching bookings", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error fetching bookings")
	}
	return utils.Data(c, fiber.StatusOK, models.FilterBookingsByStatus(bookings, c.Query("status")), "")
}

// CreateBooking inserts the request body as a booking row.
func CreateBooking(c *fiber.Ctx) error {
	var booking models.Booking
	if err := c.BodyParser(&booking); err != nil {
		logger.Log.Warn("parsing booking body", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error creating booking")
	}
	booking.Contractor = nil
	booking.User = nil

	if err := db.DB.WithContext(c.UserContext()).Omit(clause.Associations).Create(&booking).Error; err != nil {
		logger.Log.Error("creating booking", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error creating booking")
	}
	return utils.Data(c, fiber.StatusOK, []models.Booking{booking}, "")
}

// GetMyBookings lists the signed-in user's bookings.
func GetMyBookings(c *fiber.Ctx) error {
	var bookings []models.Booking
	err := db.DB.WithContext(c.UserContext()).
		Preload("Contractor").
		Where("user_id = ?", middleware.CurrentUserID(c)).
		Order("date DESC").
		Find(&bookings).Error
	if err != nil {
		logger.Log.Error("fetching user bookings", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error fetching bookings")
	}
	return utils.Data(c, fiber.StatusOK, models.FilterBookingsByStatus(bookings, c.Query("status")), "")
}

// PayBooking runs the mock payment: a pending booking becomes upcoming.
func PayBooking(c *fiber.Ctx) error {
	return transitionBooking(c, models.BookingUpcoming,
		"Only bookings awaiting payment can be paid", "Payment processed successfully!")
}

func CancelBooking(c *fiber.Ctx) error {
	return transitionBooking(c, models.BookingCancelled,
		"This booking can no longer be cancelled", "Booking cancelled.")
}

func CompleteBooking(c *fiber.Ctx) error {
	return transitionBooking(c, models.BookingCompleted,
		"Only upcoming bookings can be completed", "Booking marked as completed.")
}

func transitionBooking(c *fiber.Ctx, next models.BookingStatus, conflictMsg, okMsg string) error {
	tx := db.DB.WithContext(c.UserContext())

	booking, err := findOwnedBooking(tx, c.Params("id"), middleware.CurrentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Fail(c, fiber.StatusNotFound, "Booking not found")
	}
	if err != nil {
		logger.Log.Error("loading booking", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update booking")
	}

	if err := booking.UpdateStatus(tx, next); err != nil {
		if errors.Is(err, models.ErrInvalidTransition) || errors.Is(err, models.ErrStaleStatus) {
			return utils.Fail(c, fiber.StatusConflict, conflictMsg)
		}
		logger.Log.Error("updating booking status", zap.String("booking_id", booking.ID), zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update booking")
	}

	logger.Log.Info("booking status changed",
		zap.String("booking_id", booking.ID),
		zap.String("status", string(booking.Status)))
	return utils.Data(c, fiber.StatusOK, booking, okMsg)
}

func findOwnedBooking(tx *gorm.DB, id, userID string) (*models.Booking, error) {
	var booking models.Booking
	err := tx.Preload("Contractor").
		Where("id = ? AND user_id = ?", id, userID).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
