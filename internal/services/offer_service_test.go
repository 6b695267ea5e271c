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

type offerEnv struct {
	service       *OfferService
	repo          *repository.MemoryOfferRepository
	users         *repository.MemoryUserRepository
	notifications *repository.MemoryNotificationRepository
	donor         *models.User
}

func newOfferEnv(t *testing.T) *offerEnv {
	t.Helper()
	repo := repository.NewMemoryOfferRepository()
	users := repository.NewMemoryUserRepository()
	notifications := repository.NewMemoryNotificationRepository()
	service := NewOfferService(repo, users, notifications)

	donor, err := users.Create(context.Background(), models.RegisterRequest{
		Name: "Donor", Email: "donor@example.com", Role: models.RoleDonor, BloodGroup: models.OPositive,
	}, "hash")
	require.NoError(t, err)

	return &offerEnv{service: service, repo: repo, users: users, notifications: notifications, donor: donor}
}

func (e *offerEnv) createOffer(t *testing.T) *models.DonationOffer {
	t.Helper()
	offer, err := e.service.CreateOffer(context.Background(), models.DonationOfferPayload{
		DonorID: e.donor.ID, BloodGroup: models.OPositive, Units: 2,
	})
	require.NoError(t, err)
	return offer
}

func TestCreateOfferUnitsCap(t *testing.T) {
	env := newOfferEnv(t)

	for _, units := range []int{0, -1, 4} {
		_, err := env.service.CreateOffer(context.Background(), models.DonationOfferPayload{
			DonorID: env.donor.ID, BloodGroup: models.OPositive, Units: units,
		})
		require.Error(t, err)
		errorResponse, ok := err.(*models.ErrorResponse)
		require.True(t, ok)
		assert.Equal(t, 400, errorResponse.StatusCode)
	}

	offer, err := env.service.CreateOffer(context.Background(), models.DonationOfferPayload{
		DonorID: env.donor.ID, BloodGroup: models.OPositive, Units: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, offer.Status)
	assert.Equal(t, env.donor.Name, offer.DonorName)
}

func TestCreateOfferRequiresDonorRole(t *testing.T) {
	env := newOfferEnv(t)

	patient, err := env.users.Create(context.Background(), models.RegisterRequest{
		Name: "Patient", Email: "patient@example.com", Role: models.RolePatient, BloodGroup: models.OPositive,
	}, "hash")
	require.NoError(t, err)

	_, err = env.service.CreateOffer(context.Background(), models.DonationOfferPayload{
		DonorID: patient.ID, BloodGroup: models.OPositive, Units: 1,
	})
	require.Error(t, err)
	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, 403, errorResponse.StatusCode)
}

func TestBookSlot(t *testing.T) {
	env := newOfferEnv(t)
	ctx := context.Background()
	offer := env.createOffer(t)
	slot := time.Now().UTC().AddDate(0, 0, 7)

	updated, err := env.service.BookSlot(ctx, offer.ID, env.donor.ID, slot)
	require.NoError(t, err)
	assert.True(t, updated.SlotBooked)
	require.NotNil(t, updated.DonationSlot)
	assert.Equal(t, slot, *updated.DonationSlot)

	notifications, err := env.notifications.GetByUser(ctx, env.donor.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationSlotBooking, notifications[0].Type)
	assert.Contains(t, notifications[0].Message, slot.Format("02 Jan 2006"))
}

func TestBookSlotRebookOverwrites(t *testing.T) {
	env := newOfferEnv(t)
	ctx := context.Background()
	offer := env.createOffer(t)

	first := time.Now().UTC().AddDate(0, 0, 5)
	second := time.Now().UTC().AddDate(0, 0, 10)

	_, err := env.service.BookSlot(ctx, offer.ID, env.donor.ID, first)
	require.NoError(t, err)

	updated, err := env.service.BookSlot(ctx, offer.ID, env.donor.ID, second)
	require.NoError(t, err)
	require.NotNil(t, updated.DonationSlot)
	assert.Equal(t, second, *updated.DonationSlot)
}

func TestBookSlotOwnerOnly(t *testing.T) {
	env := newOfferEnv(t)
	offer := env.createOffer(t)

	other, err := env.users.Create(context.Background(), models.RegisterRequest{
		Name: "Other", Email: "other@example.com", Role: models.RoleDonor, BloodGroup: models.APositive,
	}, "hash")
	require.NoError(t, err)

	_, err = env.service.BookSlot(context.Background(), offer.ID, other.ID, time.Now().UTC().AddDate(0, 0, 7))
	require.Error(t, err)
	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, 403, errorResponse.StatusCode)
}

func TestBookSlotRejectedOffer(t *testing.T) {
	env := newOfferEnv(t)
	ctx := context.Background()
	offer := env.createOffer(t)

	_, err := env.repo.UpdateStatus(ctx, offer.ID, models.StatusRejected, "")
	require.NoError(t, err)

	_, err = env.service.BookSlot(ctx, offer.ID, env.donor.ID, time.Now().UTC().AddDate(0, 0, 7))
	require.Error(t, err)
	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, 400, errorResponse.StatusCode)
	assert.Contains(t, errorResponse.Message, "rejected")
}

func TestBookSlotPastDate(t *testing.T) {
	env := newOfferEnv(t)
	offer := env.createOffer(t)

	_, err := env.service.BookSlot(context.Background(), offer.ID, env.donor.ID, time.Now().UTC().AddDate(0, 0, -1))
	require.Error(t, err)
	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, 400, errorResponse.StatusCode)
	assert.Contains(t, errorResponse.Message, "future")
}

func TestBookSlotTooFarAhead(t *testing.T) {
	env := newOfferEnv(t)
	offer := env.createOffer(t)

	_, err := env.service.BookSlot(context.Background(), offer.ID, env.donor.ID, time.Now().UTC().AddDate(0, 0, 45))
	require.Error(t, err)
	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, 400, errorResponse.StatusCode)
	assert.Contains(t, errorResponse.Message, "30 days")
}
