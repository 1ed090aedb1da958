//go:build integration

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/meinhoongagan/homeconnect-pro/db"
	"github.com/meinhoongagan/homeconnect-pro/models"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	pgC, err := postgres.Run(ctx,
		"postgres:16",
		postgres.WithDatabase("homeconnect"),
		postgres.WithUsername("homeconnect"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestMigrateAndSeedOnPostgres(t *testing.T) {
	dsn := startPostgres(t)

	require.NoError(t, db.Init(dsn))
	t.Cleanup(db.Close)
	require.NoError(t, db.Ping(context.Background()))

	require.NoError(t, db.Migrate(db.DB))
	// migrations are idempotent
	require.NoError(t, db.Migrate(db.DB))

	n, err := db.Seed(db.DB)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	var contractor models.Contractor
	require.NoError(t, db.DB.Where("service = ?", "Electrical").First(&contractor).Error)
	assert.Equal(t, "Bright Spark Electric", contractor.Name)

	booking := models.Booking{UserID: "u1", ContractorID: &contractor.ID, Date: "2030-01-01", Time: "8:00 AM"}
	require.NoError(t, db.DB.Create(&booking).Error)
	require.NoError(t, booking.MarkPaid(db.DB))

	var stored models.Booking
	require.NoError(t, db.DB.Preload("Contractor").First(&stored, "id = ?", booking.ID).Error)
	assert.Equal(t, models.BookingUpcoming, stored.Status)
	require.NotNil(t, stored.Contractor)
	assert.Equal(t, contractor.Name, stored.Contractor.Name)
}
