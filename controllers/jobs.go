package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/meinhoongagan/homeconnect-pro/db"
	"github.com/meinhoongagan/homeconnect-pro/logger"
	"github.com/meinhoongagan/homeconnect-pro/middleware"
	"github.com/meinhoongagan/homeconnect-pro/models"
	"github.com/meinhoongagan/homeconnect-pro/utils"
)

// CreateJob inserts the request body as a job row.
func CreateJob(c *fiber.Ctx) error {
	var job models.Job
	if err := c.BodyParser(&job); err != nil {
		logger.Log.Warn("parsing job body", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error creating job")
	}
	if err := db.DB.WithContext(c.UserContext()).Create(&job).Error; err != nil {
		logger.Log.Error("creating job", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Error creating job")
	}
	invalidateStats(c)
	return utils.Data(c, fiber.StatusOK, []models.Job{job}, "")
}

type analyzeRequest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Urgency     string `json:"urgency"`
	BudgetMin   *int   `json:"budget_min"`
	BudgetMax   *int   `json:"budget_max"`
}

type jobAnalysis struct {
	Job      models.Job          `json:"job"`
	Matches  []models.Contractor `json:"matches"`
	Insights string              `json:"insights"`
}

// AnalyzeJob posts a job for the signed-in user and returns the contractors
// it matches: same trade, rated 4.5 or better, at most four.
func AnalyzeJob(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	job := models.Job{
		UserID:      middleware.CurrentUserID(c),
		Category:    req.Category,
		Description: req.Description,
		Location:    req.Location,
		Urgency:     req.Urgency,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
	}
	job.Normalize()
	if err := job.Validate(); err != nil {
		switch {
		case errors.Is(err, models.ErrMissingJobFields):
			return utils.Fail(c, fiber.StatusBadRequest, "Please fill in all required fields")
		case errors.Is(err, models.ErrInvalidUrgency):
			return utils.Fail(c, fiber.StatusBadRequest, "Invalid urgency level")
		default:
			return utils.Fail(c, fiber.StatusBadRequest, "Invalid budget range")
		}
	}
	category, ok := models.CanonicalCategory(job.Category)
	if !ok {
		return utils.Fail(c, fiber.StatusBadRequest, "Unknown service category")
	}
	job.Category = category

	tx := db.DB.WithContext(c.UserContext())
	if err := tx.Create(&job).Error; err != nil {
		logger.Log.Error("creating job", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Something went wrong")
	}
	invalidateStats(c)

	matches := []models.Contractor{}
	err := tx.Where("service = ? AND rating >= ?", job.Category, models.MatchMinRating).
		Order("rating DESC").
		Limit(models.MatchLimit).
		Find(&matches).Error
	if err != nil {
		logger.Log.Error("matching contractors", zap.String("job_id", job.ID), zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Something went wrong")
	}

	insights, err := utils.RenderInsights(job.Category, job.Urgency, len(matches))
	if err != nil {
		logger.Log.Error("rendering insights", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Something went wrong")
	}

	logger.Log.Info("job analyzed", zap.String("job_id", job.ID), zap.Int("matches", len(matches)))
	return utils.Data(c, fiber.StatusCreated, jobAnalysis{Job: job, Matches: matches, Insights: insights},
		"Job analyzed and matches found!")
}
