package services

import (
	"context"
	"testing"
	"time"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/models"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedHistoryOfferRepo подменяет историю донаций, чтобы управлять датой
// последнего одобренного предложения в тестах.
type fixedHistoryOfferRepo struct {
	*repository.MemoryOfferRepository
	latest *models.DonationOffer
}

func (r *fixedHistoryOfferRepo) LatestApprovedByDonor(ctx context.Context, donorID string) (*models.DonationOffer, error) {
	if r.latest == nil || r.latest.DonorID != donorID {
		return nil, nil
	}
	offer := *r.latest
	return &offer, nil
}

func (r *fixedHistoryOfferRepo) ActiveDonorIDs(ctx context.Context) ([]string, error) {
	if r.latest == nil {
		return nil, nil
	}
	return []string{r.latest.DonorID}, nil
}

func newNotificationEnv(latest *models.DonationOffer) (*NotificationService, *repository.MemoryNotificationRepository) {
	notifications := repository.NewMemoryNotificationRepository()
	offers := &fixedHistoryOfferRepo{
		MemoryOfferRepository: repository.NewMemoryOfferRepository(),
		latest:                latest,
	}
	return NewNotificationService(notifications, offers, repository.NewMemoryUserRepository()), notifications
}

func TestReminderScanNoDonationHistory(t *testing.T) {
	service, _ := newNotificationEnv(nil)

	notification, err := service.ReminderScan(context.Background(), "donor-1")
	require.NoError(t, err)
	assert.Nil(t, notification)
}

func TestReminderScanTooEarly(t *testing.T) {
	service, _ := newNotificationEnv(&models.DonationOffer{
		ID:        "offer-1",
		DonorID:   "donor-1",
		Status:    models.StatusApproved,
		OfferDate: time.Now().UTC().AddDate(0, -1, 0),
	})

	notification, err := service.ReminderScan(context.Background(), "donor-1")
	require.NoError(t, err)
	assert.Nil(t, notification)
}

func TestReminderScanCreatesReminder(t *testing.T) {
	service, notifications := newNotificationEnv(&models.DonationOffer{
		ID:        "offer-1",
		DonorID:   "donor-1",
		Status:    models.StatusApproved,
		OfferDate: time.Now().UTC().AddDate(0, -4, 0),
	})

	notification, err := service.ReminderScan(context.Background(), "donor-1")
	require.NoError(t, err)
	require.NotNil(t, notification)
	assert.Equal(t, models.NotificationReminder, notification.Type)
	assert.Equal(t, models.ReminderMessage, notification.Message)
	assert.False(t, notification.Read)

	stored, err := notifications.GetByUser(context.Background(), "donor-1")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestReminderScanDebounce(t *testing.T) {
	service, notifications := newNotificationEnv(&models.DonationOffer{
		ID:        "offer-1",
		DonorID:   "donor-1",
		Status:    models.StatusApproved,
		OfferDate: time.Now().UTC().AddDate(0, -4, 0),
	})

	// Сто загрузок страницы за неделю - ровно одно напоминание.
	created := 0
	for i := 0; i < 100; i++ {
		notification, err := service.ReminderScan(context.Background(), "donor-1")
		require.NoError(t, err)
		if notification != nil {
			created++
		}
	}
	assert.Equal(t, 1, created)

	stored, err := notifications.GetByUser(context.Background(), "donor-1")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestReminderSweepCountsCreated(t *testing.T) {
	service, _ := newNotificationEnv(&models.DonationOffer{
		ID:        "offer-1",
		DonorID:   "donor-1",
		Status:    models.StatusApproved,
		OfferDate: time.Now().UTC().AddDate(0, -4, 0),
	})

	created, err := service.ReminderSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// Повторный обход попадает в окно подавления.
	created, err = service.ReminderSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestMarkReadNotFound(t *testing.T) {
	service, _ := newNotificationEnv(nil)

	err := service.MarkRead(context.Background(), "missing")
	require.Error(t, err)
	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, 404, errorResponse.StatusCode)
}

func TestMarkReadSetsFlag(t *testing.T) {
	service, notifications := newNotificationEnv(nil)

	notification, err := notifications.Create(context.Background(), "user-1", "hello", models.NotificationInfo)
	require.NoError(t, err)

	require.NoError(t, service.MarkRead(context.Background(), notification.ID))

	stored, err := notifications.GetByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Read)
}
