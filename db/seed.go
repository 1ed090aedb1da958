package db

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meinhoongagan/homeconnect-pro/logger"
	"github.com/meinhoongagan/homeconnect-pro/models"
)

func strPtr(s string) *string { return &s }

// demoContractors populate an empty marketplace.
var demoContractors = []models.Contractor{
	{Name: "Mike's Plumbing", Service: "Plumbing", Rating: 4.9, Reviews: 127, Price: strPtr("$85/hr"), Image: strPtr("🔧"), Available: true, Verified: true, Location: strPtr("Downtown"), ResponseTime: strPtr("15 min"), CompletedJobs: 342},
	{Name: "FlowRight Pipes", Service: "Plumbing", Rating: 4.4, Reviews: 58, Price: strPtr("$70/hr"), Image: strPtr("🚰"), Available: false, Verified: true, Location: strPtr("Westside"), ResponseTime: strPtr("1 hr"), CompletedJobs: 96},
	{Name: "Bright Spark Electric", Service: "Electrical", Rating: 4.8, Reviews: 89, Price: strPtr("$95/hr"), Image: strPtr("⚡"), Available: true, Verified: true, Location: strPtr("Midtown"), ResponseTime: strPtr("30 min"), CompletedJobs: 215},
	{Name: "Sparkle Clean Co.", Service: "Cleaning", Rating: 4.7, Reviews: 203, Price: strPtr("$45/hr"), Image: strPtr("🧹"), Available: true, Verified: false, Location: strPtr("Uptown"), ResponseTime: strPtr("20 min"), CompletedJobs: 512},
	{Name: "CoolAir HVAC", Service: "HVAC", Rating: 4.6, Reviews: 74, Price: strPtr("$110/hr"), Image: strPtr("❄️"), Available: true, Verified: true, Location: strPtr("Eastside"), ResponseTime: strPtr("45 min"), CompletedJobs: 158},
	{Name: "Fresh Coat Painters", Service: "Painting", Rating: 4.5, Reviews: 61, Price: strPtr("$60/hr"), Image: strPtr("🎨"), Available: false, Verified: true, Location: strPtr("Northside"), ResponseTime: strPtr("2 hr"), CompletedJobs: 87},
	{Name: "GreenThumb Landscaping", Service: "Landscaping", Rating: 4.3, Reviews: 42, Price: strPtr("$55/hr"), Image: strPtr("🌿"), Available: true, Verified: false, Location: strPtr("Suburbs"), ResponseTime: strPtr("1 hr"), CompletedJobs: 64},
}

// Seed inserts the demo contractors when the contractors table is empty.
// It returns the number of rows inserted.
func Seed(conn *gorm.DB) (int, error) {
	var count int64
	if err := conn.Model(&models.Contractor{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count contractors: %w", err)
	}
	if count > 0 {
		logger.Log.Info("contractors already present, skipping seed", zap.Int64("count", count))
		return 0, nil
	}

	rows := make([]models.Contractor, len(demoContractors))
	copy(rows, demoContractors)
	if err := conn.Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("failed to seed contractors: %w", err)
	}

	logger.Log.Info("seeded contractors", zap.Int("count", len(rows)))
	return len(rows), nil
}
