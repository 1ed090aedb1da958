package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meinhoongagan/homeconnect-pro/config"
	"github.com/meinhoongagan/homeconnect-pro/db"
	"github.com/meinhoongagan/homeconnect-pro/logger"
	"github.com/meinhoongagan/homeconnect-pro/middleware"
	"github.com/meinhoongagan/homeconnect-pro/models"
	"github.com/meinhoongagan/homeconnect-pro/utils"
)

// GetContractors lists contractors. ?service= matches the trade exactly
// (ignoring case); min_rating, available and verified narrow the list further.
func GetContractors(c *fiber.Ctx) error {
	filter, invalid := contractorFilterFromQuery(c)
	if invalid != "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid "+invalid)
	}

	query := db.DB.WithContext(c.UserContext()).Order("id")
	if filter.Service != "" {
		query = query.Where("LOWER(service) = LOWER(?)", filter.Service)
	}

	var contractors []models.Contractor
	if err := query.Find(&contractors).Error; err != nil {
		logger.Log.Error("fetching contractors", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error fetching contractors")
	}
	return utils.Data(c, fiber.StatusOK, models.FilterContractors(contractors, filter), "")
}

// contractorFilterFromQuery returns the name of the first malformed parameter, if any.
func contractorFilterFromQuery(c *fiber.Ctx) (models.ContractorFilter, string) {
	filter := models.ContractorFilter{Service: strings.TrimSpace(c.Query("service"))}

	if raw := c.Query("min_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, "min_rating"
		}
		filter.MinRating = v
	}
	flags := []struct {
		key string
		dst *bool
	}{
		{"available", &filter.Available},
		{"verified", &filter.Verified},
	}
	for _, f := range flags {
		raw := c.Query(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, f.key
		}
		*f.dst = v
	}
	return filter, ""
}

// GetContractor returns one contractor profile.
func GetContractor(c *fiber.Ctx) error {
	contractor, err := findContractor(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Fail(c, fiber.StatusNotFound, "Contractor not found")
	}
	if err != nil {
		logger.Log.Error("fetching contractor", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error fetching contractors")
	}

	contractor.FillDescription()
	return utils.Data(c, fiber.StatusOK, contractor, "")
}

type scheduleRequest struct {
	Date  string  `json:"date"`
	Time  string  `json:"time"`
	Notes *string `json:"notes"`
}

// BookContractor schedules an appointment with a contractor for the signed-in user.
func BookContractor(c *fiber.Ctx) error {
	var req scheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)

	if req.Date == "" || req.Time == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Please select date and time")
	}
	if !utils.IsOfferedSlot(req.Time) {
		return utils.Fail(c, fiber.StatusBadRequest, "Please select one of the offered time slots")
	}
	past, err := utils.ParseBookingDate(req.Date)
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}
	if past {
		return utils.Fail(c, fiber.StatusBadRequest, "Booking date cannot be in the past")
	}

	contractor, err := findContractor(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Fail(c, fiber.StatusNotFound, "Contractor not found")
	}
	if err != nil {
		logger.Log.Error("fetching contractor", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error creating booking")
	}

	available, err := utils.CheckAvailability(c.UserContext(), contractor.ID, req.Date, req.Time)
	if err != nil {
		logger.Log.Error("checking availability", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error creating booking")
	}
	if !available {
		return utils.Fail(c, fiber.StatusConflict, "This time slot is no longer available")
	}

	price := utils.ParseContractorPrice(contractor.Price)
	booking := models.Booking{
		UserID:       middleware.CurrentUserID(c),
		ContractorID: &contractor.ID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
		Status:       models.BookingUpcoming,
		Price:        &price,
	}
	if err := db.DB.WithContext(c.UserContext()).Omit(clause.Associations).Create(&booking).Error; err != nil {
		logger.Log.Error("creating booking", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error creating booking")
	}
	booking.Contractor = contractor.Ref()

	logger.Log.Info("booking confirmed",
		zap.String("booking_id", booking.ID),
		zap.Uint("contractor_id", contractor.ID))
	return utils.Data(c, fiber.StatusCreated, booking, "Booking confirmed!")
}

// GetTimeSlots lists the schedulable appointment windows.
func GetTimeSlots(c *fiber.Ctx) error {
	return utils.Data(c, fiber.StatusOK, utils.TimeSlots, "")
}

// UploadContractorImage stores a profile picture on Cloudinary.
func UploadContractorImage(c *fiber.Ctx) error {
	if !config.Get().CloudinaryEnabled() {
		return utils.Fail(c, fiber.StatusServiceUnavailable, "Image uploads are not configured")
	}

	header, err := c.FormFile("image")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Image file is required")
	}

	contractor, err := findContractor(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Fail(c, fiber.StatusNotFound, "Contractor not found")
	}
	if err != nil {
		logger.Log.Error("fetching contractor", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to upload image")
	}

	file, err := header.Open()
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Image file is unreadable")
	}
	defer file.Close()

	url, err := utils.UploadToCloudinary(c.UserContext(), file, fmt.Sprintf("contractor_%d", contractor.ID), "contractors")
	if err != nil {
		logger.Log.Error("uploading contractor image", zap.Uint("contractor_id", contractor.ID), zap.Error(err))
		return utils.Fail(c, fiber.StatusBadGateway, "Failed to upload image")
	}

	if err := db.DB.WithContext(c.UserContext()).Model(contractor).Update("image", url).Error; err != nil {
		logger.Log.Error("saving contractor image", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to upload image")
	}
	contractor.Image = &url
	return utils.Data(c, fiber.StatusOK, contractor, "Image uploaded")
}

func findContractor(c *fiber.Ctx) (*models.Contractor, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var contractor models.Contractor
	if err := db.DB.WithContext(c.UserContext()).First(&contractor, id).Error; err != nil {
		return nil, err
	}
	return &contractor, nil
}
