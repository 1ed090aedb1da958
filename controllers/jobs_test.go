package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meinhoongagan/homeconnect-pro/models"
)

func TestCreateJobPassthrough(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodPost, "/api/jobs", "", map[string]any{
		"category": "Plumbing", "description": "Leaky faucet", "location": "10001", "urgency": "soon",
	})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	list := dataList(t, res)
	require.Len(t, list, 1)
	assert.Equal(t, "Leaky faucet", list[0].(map[string]any)["description"])

	res = env.send(t, newRawRequest(http.MethodPost, "/api/jobs", "[1,2"))
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, "Error creating job", res.Body["error"])
}

func TestAnalyzeJobMatchesTopRated(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup(t, "owner@example.com")

	for i, rating := range []float64{4.5, 4.9, 4.4, 4.7, 4.6, 4.8} {
		env.addContractor(t, models.Contractor{Name: string(rune('A' + i)), Service: "Plumbing", Rating: rating})
	}
	env.addContractor(t, models.Contractor{Name: "Sparky", Service: "Electrical", Rating: 5})

	res := env.do(t, http.MethodPost, "/api/jobs/analyze", token, map[string]any{
		"category": "plumbing", "description": "Burst pipe", "location": "10001", "urgency": "emergency",
		"budget_min": 100, "budget_max": 400,
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "Job analyzed and matches found!", res.Body["message"])

	data := dataMap(t, res)
	job := data["job"].(map[string]any)
	assert.Equal(t, "Plumbing", job["category"])
	assert.Equal(t, "emergency", job["urgency"])

	matches := data["matches"].([]any)
	require.Len(t, matches, models.MatchLimit)
	var ratings []float64
	for _, m := range matches {
		c := m.(map[string]any)
		assert.Equal(t, "Plumbing", c["service"])
		ratings = append(ratings, c["rating"].(float64))
	}
	assert.Equal(t, []float64{4.9, 4.8, 4.7, 4.6}, ratings)

	insights := data["insights"].(string)
	assert.Contains(t, insights, "Plumbing - Repair/Maintenance")
	assert.Contains(t, insights, "Emergency")
	assert.Contains(t, insights, "4 contractors")

	var count int64
	env.db.Model(&models.Job{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAnalyzeJobNoMatches(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup(t, "owner@example.com")

	res := env.do(t, http.MethodPost, "/api/jobs/analyze", token, map[string]any{
		"category": "Painting", "description": "Two bedrooms", "location": "10001",
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	data := dataMap(t, res)
	assert.Empty(t, data["matches"])
	assert.Equal(t, "flexible", data["job"].(map[string]any)["urgency"])
	assert.Contains(t, data["insights"], "0 contractors")
}

func TestAnalyzeJobValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup(t, "owner@example.com")

	tests := []struct {
		name  string
		body  map[string]any
		error string
	}{
		{"missing description", map[string]any{"category": "Plumbing", "location": "10001"}, "Please fill in all required fields"},
		{"blank location", map[string]any{"category": "Plumbing", "description": "x", "location": "   "}, "Please fill in all required fields"},
		{"bad urgency", map[string]any{"category": "Plumbing", "description": "x", "location": "1", "urgency": "asap"}, "Invalid urgency level"},
		{"inverted budget", map[string]any{"category": "Plumbing", "description": "x", "location": "1", "budget_min": 500, "budget_max": 100}, "Invalid budget range"},
		{"unknown category", map[string]any{"category": "Roofing", "description": "x", "location": "1"}, "Unknown service category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.do(t, http.MethodPost, "/api/jobs/analyze", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, res.Status)
			assert.Equal(t, tt.error, res.Body["error"])
		})
	}

	res := env.do(t, http.MethodPost, "/api/jobs/analyze", "", map[string]any{"category": "Plumbing"})
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	var count int64
	env.db.Model(&models.Job{}).Count(&count)
	assert.Zero(t, count)
}
