package controllers

import (
	"errors"
	"strings"

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

// GetDisputes lists every dispute with its booking and contractor.
func GetDisputes(c *fiber.Ctx) error {
	var disputes []models.Dispute
	err := db.DB.WithContext(c.UserContext()).
		Preload("Booking.Contractor").
		Order("created_at DESC").
		Find(&disputes).Error
	if err != nil {
		logger.Log.Error("fetching disputes", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error fetching disputes")
	}
	return utils.Data(c, fiber.StatusOK, disputes, "")
}

// CreateDispute inserts the request body as a dispute row.
func CreateDispute(c *fiber.Ctx) error {
	var dispute models.Dispute
	if err := c.BodyParser(&dispute); err != nil {
		logger.Log.Warn("parsing dispute body", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error creating dispute")
	}
	dispute.Booking = nil

	if err := db.DB.WithContext(c.UserContext()).Omit(clause.Associations).Create(&dispute).Error; err != nil {
		logger.Log.Error("creating dispute", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error creating dispute")
	}
	return utils.Data(c, fiber.StatusOK, []models.Dispute{dispute}, "")
}

// GetMyDisputes lists the disputes filed by the signed-in user.
func GetMyDisputes(c *fiber.Ctx) error {
	var disputes []models.Dispute
	err := db.DB.WithContext(c.UserContext()).
		Preload("Booking.Contractor").
		Where("user_id = ?", middleware.CurrentUserID(c)).
		Order("created_at DESC").
		Find(&disputes).Error
	if err != nil {
		logger.Log.Error("fetching user disputes", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error fetching disputes")
	}
	return utils.Data(c, fiber.StatusOK, disputes, "")
}

// GetDisputableBookings lists the signed-in user's completed bookings.
func GetDisputableBookings(c *fiber.Ctx) error {
	var bookings []models.Booking
	err := db.DB.WithContext(c.UserContext()).
		Preload("Contractor").
		Where("user_id = ? AND status = ?", middleware.CurrentUserID(c), models.BookingCompleted).
		Order("date DESC").
		Find(&bookings).Error
	if err != nil {
		logger.Log.Error("fetching disputable bookings", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error fetching bookings")
	}
	return utils.Data(c, fiber.StatusOK, bookings, "")
}

type fileDisputeRequest struct {
	BookingID   string `json:"booking_id"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// FileDispute opens a dispute against one of the user's completed bookings.
func FileDispute(c *fiber.Ctx) error {
	var req fileDisputeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	req.BookingID = strings.TrimSpace(req.BookingID)
	req.Description = strings.TrimSpace(req.Description)
	req.Type = strings.ToLower(strings.TrimSpace(req.Type))

	if req.BookingID == "" || req.Description == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Please fill in all required fields")
	}
	if !models.ValidDisputeType(req.Type) {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid dispute type")
	}

	userID := middleware.CurrentUserID(c)
	tx := db.DB.WithContext(c.UserContext())

	booking, err := findOwnedBooking(tx, req.BookingID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Fail(c, fiber.StatusNotFound, "Booking not found")
	}
	if err != nil {
		logger.Log.Error("loading booking for dispute", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error creating dispute")
	}
	if booking.Status != models.BookingCompleted {
		return utils.Fail(c, fiber.StatusConflict, "Only completed bookings can be disputed")
	}

	status := models.DisputeStatusInReview
	dispute := models.Dispute{
		UserID:      userID,
		BookingID:   &booking.ID,
		Type:        req.Type,
		Description: req.Description,
		Status:      &status,
	}
	if err := tx.Omit(clause.Associations).Create(&dispute).Error; err != nil {
		logger.Log.Error("creating dispute", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error creating dispute")
	}
	dispute.Booking = &models.DisputeBooking{
		ID:           booking.ID,
		Date:         booking.Date,
		Time:         booking.Time,
		Status:       booking.Status,
		ContractorID: booking.ContractorID,
		Contractor:   booking.Contractor,
	}

	logger.Log.Info("dispute filed", zap.String("dispute_id", dispute.ID), zap.String("booking_id", booking.ID))
	return utils.Data(c, fiber.StatusCreated, dispute, "Dispute submitted successfully.")
}
