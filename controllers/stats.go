package controllers

import (
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/meinhoongagan/homeconnect-pro/db"
	"github.com/meinhoongagan/homeconnect-pro/logger"
	"github.com/meinhoongagan/homeconnect-pro/models"
	"github.com/meinhoongagan/homeconnect-pro/redis"
	"github.com/meinhoongagan/homeconnect-pro/utils"
)

const (
	statsCacheKey = "stats:platform"
	statsCacheTTL = time.Minute
)

// PlatformStats feeds the home page counters.
type PlatformStats struct {
	Contractors  int64   `json:"contractors"`
	Jobs         int64   `json:"jobs"`
	Rating       float64 `json:"rating"`
	Satisfaction float64 `json:"satisfaction"`
}

func GetStats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var stats PlatformStats
	hit, err := redis.GetJSON(ctx, statsCacheKey, &stats)
	if err != nil {
		logger.Log.Warn("reading stats cache", zap.Error(err))
	}
	if hit {
		return utils.Data(c, fiber.StatusOK, stats, "")
	}

	tx := db.DB.WithContext(ctx)
	if err := tx.Model(&models.Contractor{}).Count(&stats.Contractors).Error; err != nil {
		logger.Log.Error("counting contractors", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error fetching stats")
	}
	if err := tx.Model(&models.Job{}).Count(&stats.Jobs).Error; err != nil {
		logger.Log.Error("counting jobs", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error fetching stats")
	}
	var avg float64
	if err := tx.Model(&models.Contractor{}).Select("COALESCE(AVG(rating), 0)").Row().Scan(&avg); err != nil {
		logger.Log.Error("averaging ratings", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error fetching stats")
	}
	stats.Rating = math.Round(avg*10) / 10

	if err := redis.SetJSON(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
		logger.Log.Warn("writing stats cache", zap.Error(err))
	}
	return utils.Data(c, fiber.StatusOK, stats, "")
}

func invalidateStats(c *fiber.Ctx) {
	if err := redis.Delete(c.UserContext(), statsCacheKey); err != nil {
		logger.Log.Warn("invalidating stats cache", zap.Error(err))
	}
}

// GetServiceCategories lists the trades offered on the home page.
func GetServiceCategories(c *fiber.Ctx) error {
	return utils.Data(c, fiber.StatusOK, models.ServiceCategories, "")
}
