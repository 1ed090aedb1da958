package cron

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meinhoongagan/homeconnect-pro/db"
	"github.com/meinhoongagan/homeconnect-pro/logger"
	"github.com/meinhoongagan/homeconnect-pro/models"
	"github.com/meinhoongagan/homeconnect-pro/utils"
)

// sendEmail is swapped out in tests.
var sendEmail = utils.SendEmail

// StartCronJobs starts the scheduler for booking reminders. The caller stops it.
func StartCronJobs(schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		sent, err := SendBookingReminders(context.Background())
		if err != nil {
			logger.Log.Error("booking reminders failed", zap.Error(err))
			return
		}
		logger.Log.Info("booking reminders sent", zap.Int("count", sent))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add cron job: %w", err)
	}
	c.Start()
	logger.Log.Info("cron scheduler started", zap.String("schedule", schedule))
	return c, nil
}

// SendBookingReminders emails every customer with an upcoming booking tomorrow
// and returns how many reminders went out.
func SendBookingReminders(ctx context.Context) (int, error) {
	bookings, err := dueReminders(db.DB.WithContext(ctx), utils.Tomorrow())
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range bookings {
		booking := &bookings[i]
		if booking.User == nil || booking.User.Email == "" {
			continue
		}
		subject, body := reminderEmail(booking)
		if err := sendEmail(booking.User.Email, subject, body); err != nil {
			if errors.Is(err, utils.ErrEmailNotConfigured) {
				return sent, err
			}
			logger.Log.Warn("reminder failed", zap.String("booking_id", booking.ID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

func dueReminders(tx *gorm.DB, date string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := tx.Preload("User").Preload("Contractor").
		Where("status = ? AND date = ?", models.BookingUpcoming, date).
		Order("time").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("fetching bookings for reminders: %w", err)
	}
	return bookings, nil
}

func reminderEmail(booking *models.Booking) (subject, body string) {
	contractor := "your contractor"
	service := "your service"
	if booking.Contractor != nil {
		contractor = html.EscapeString(booking.Contractor.Name)
		service = booking.Contractor.Service
	}
	subject = fmt.Sprintf("Reminder: %s appointment tomorrow at %s", service, booking.Time)
	body = fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>This is a reminder for your appointment tomorrow.</p>
		<ul>
			<li><strong>Contractor:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>If you need to cancel, please do so from your bookings page as soon as possible.</p>
		<p>The HomeConnect Pro Team</p>
	`, html.EscapeString(booking.User.Name), contractor, html.EscapeString(booking.Date), html.EscapeString(booking.Time))
	return subject, body
}
