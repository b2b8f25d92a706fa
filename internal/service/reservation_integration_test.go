//go:build integration

package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Eursukkul/session-booking/internal/models"
	"github.com/Eursukkul/session-booking/internal/repository"
	"github.com/Eursukkul/session-booking/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func openPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "booking_test_db"),
	)

	db, err := database.Open(database.DriverPostgres, dsn)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, db.Exec("TRUNCATE reservations, availability_templates RESTART IDENTITY").Error)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// 50 clients race for the same slot on Postgres; exactly one wins.
func TestConcurrentBooking_Postgres(t *testing.T) {
	db := openPostgres(t)
	templateRepo := repository.NewTemplateRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	avail := NewAvailabilityService(templateRepo, reservationRepo, time.UTC, zap.NewNop())
	_, err := avail.EnsureDefaultTemplates(context.Background())
	require.NoError(t, err)
	svc := NewReservationService(reservationRepo, templateRepo, nil, time.UTC, zap.NewNop())

	const clients = 50
	var wg sync.WaitGroup
	results := make(chan *models.Reservation, clients)
	errs := make(chan error, clients)

	wg.Add(clients)
	for i := 0; i < clients; i++ {
		go func(i int) {
			defer wg.Done()
			in := CreateReservationInput{
				Name:        fmt.Sprintf("client-%02d", i),
				Email:       fmt.Sprintf("client%02d@example.com", i),
				ServiceType: models.ServiceTechnicalConsultation,
				Date:        monday,
				TimeSlot:    "10:30",
			}
			r, err := svc.CreateReservation(t.Context(), in)
			if err != nil {
				errs <- err
				return
			}
			results <- r
		}(i)
	}
	wg.Wait()
	close(results)
	close(errs)

	assert.Len(t, results, 1)
	for err := range errs {
		assert.True(t, errors.Is(err, ErrSlotUnavailable), "unexpected error: %v", err)
	}

	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).
		Where("date = ? AND time_slot = ? AND status <> ?", monday, "10:30", models.StatusCancelled).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// A cancel racing a confirm never leaves the reservation confirmed after the
// cancel succeeded.
func TestConcurrentTransitions_Postgres(t *testing.T) {
	db := openPostgres(t)
	templateRepo := repository.NewTemplateRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	_, err := NewAvailabilityService(templateRepo, reservationRepo, time.UTC, zap.NewNop()).
		EnsureDefaultTemplates(context.Background())
	require.NoError(t, err)
	svc := NewReservationService(reservationRepo, templateRepo, nil, time.UTC, zap.NewNop())

	r, err := svc.CreateReservation(t.Context(), bookingInput(monday, "11:15"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = svc.Confirm(t.Context(), r.ID)
	}()
	go func() {
		defer wg.Done()
		_, _ = svc.Cancel(t.Context(), r.ID, nil)
	}()
	wg.Wait()

	got, err := svc.GetReservation(t.Context(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)
}
