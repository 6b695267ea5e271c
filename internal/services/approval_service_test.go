package services

import (
	"context"
	"errors"
	"testing"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/models"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type approvalEnv struct {
	repos    repository.Repositories
	approval *ApprovalService
	admin    *models.User
	patient  *models.User
	donor    *models.User
}

func newApprovalEnv(t *testing.T) *approvalEnv {
	t.Helper()
	ctx := context.Background()

	users := repository.NewMemoryUserRepository()
	repos := repository.Repositories{
		Users:         users,
		Stock:         repository.NewMemoryStockRepository(),
		Requests:      repository.NewMemoryRequestRepository(),
		Offers:        repository.NewMemoryOfferRepository(),
		Notifications: repository.NewMemoryNotificationRepository(),
	}

	admin, err := users.Create(ctx, models.RegisterRequest{
		Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin, BloodGroup: models.OPositive,
	}, "hash")
	require.NoError(t, err)

	patient, err := users.Create(ctx, models.RegisterRequest{
		Name: "Patient", Email: "patient@example.com", Role: models.RolePatient, BloodGroup: models.OPositive,
	}, "hash")
	require.NoError(t, err)

	donor, err := users.Create(ctx, models.RegisterRequest{
		Name: "Donor", Email: "donor@example.com", Role: models.RoleDonor, BloodGroup: models.OPositive,
	}, "hash")
	require.NoError(t, err)

	return &approvalEnv{
		repos:    repos,
		approval: NewApprovalService(repository.NewMemoryUnitOfWork(repos), users),
		admin:    admin,
		patient:  patient,
		donor:    donor,
	}
}

func (e *approvalEnv) stockUnits(t *testing.T, group models.BloodGroup) int {
	t.Helper()
	entries, err := e.repos.Stock.GetAll(context.Background())
	require.NoError(t, err)
	for _, entry := range entries {
		if entry.BloodGroup == group {
			return entry.Units
		}
	}
	t.Fatalf("stock entry for group %s not found", group)
	return 0
}

func (e *approvalEnv) newRequest(t *testing.T, group models.BloodGroup, units int) *models.BloodRequest {
	t.Helper()
	request, err := e.repos.Requests.Create(context.Background(), models.BloodRequestPayload{
		PatientID: e.patient.ID, BloodGroup: group, Units: units, Reason: "surgery",
	}, e.patient.Name)
	require.NoError(t, err)
	return request
}

func (e *approvalEnv) newOffer(t *testing.T, group models.BloodGroup, units int) *models.DonationOffer {
	t.Helper()
	offer, err := e.repos.Offers.Create(context.Background(), models.DonationOfferPayload{
		DonorID: e.donor.ID, BloodGroup: group, Units: units,
	}, e.donor.Name)
	require.NoError(t, err)
	return offer
}

func TestDecideRequestApproveDeductsStock(t *testing.T) {
	env := newApprovalEnv(t)
	ctx := context.Background()
	request := env.newRequest(t, models.OPositive, 2)

	updated, err := env.approval.DecideRequest(ctx, request.ID, env.admin.ID, models.StatusApproved, "Come to the center tomorrow.")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status)
	assert.Equal(t, "Come to the center tomorrow.", updated.AdminResponse)
	assert.Equal(t, 10, env.stockUnits(t, models.OPositive))

	notifications, err := env.repos.Notifications.GetByUser(ctx, env.patient.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationApproval, notifications[0].Type)
	assert.Equal(t, "Your blood request has been approved. Come to the center tomorrow.", notifications[0].Message)
	assert.False(t, notifications[0].Read)
}

func TestDecideRequestRejectLeavesStockUntouched(t *testing.T) {
	env := newApprovalEnv(t)
	ctx := context.Background()
	request := env.newRequest(t, models.OPositive, 2)

	updated, err := env.approval.DecideRequest(ctx, request.ID, env.admin.ID, models.StatusRejected, "Not enough stock.")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, updated.Status)
	assert.Equal(t, 12, env.stockUnits(t, models.OPositive))

	notifications, err := env.repos.Notifications.GetByUser(ctx, env.patient.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationRejection, notifications[0].Type)
}

func TestDecideRequestClampsStockAtZero(t *testing.T) {
	env := newApprovalEnv(t)
	request := env.newRequest(t, models.ABNegative, 20)

	_, err := env.approval.DecideRequest(context.Background(), request.ID, env.admin.ID, models.StatusApproved, "")
	require.NoError(t, err)
	assert.Equal(t, 0, env.stockUnits(t, models.ABNegative))
}

func TestDecideRequestSingleTransition(t *testing.T) {
	env := newApprovalEnv(t)
	ctx := context.Background()
	request := env.newRequest(t, models.OPositive, 2)

	_, err := env.approval.DecideRequest(ctx, request.ID, env.admin.ID, models.StatusApproved, "")
	require.NoError(t, err)

	_, err = env.approval.DecideRequest(ctx, request.ID, env.admin.ID, models.StatusRejected, "")
	require.Error(t, err)
	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, 400, errorResponse.StatusCode)
	assert.Contains(t, errorResponse.Message, "already submitted")

	// Повторное решение не списывает склад второй раз.
	assert.Equal(t, 10, env.stockUnits(t, models.OPositive))

	notifications, err := env.repos.Notifications.GetByUser(ctx, env.patient.ID)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}

func TestDecideRequestUnknownID(t *testing.T) {
	env := newApprovalEnv(t)

	_, err := env.approval.DecideRequest(context.Background(), "missing", env.admin.ID, models.StatusApproved, "")
	require.Error(t, err)
	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, 404, errorResponse.StatusCode)
}

func TestDecideRequestInvalidDecision(t *testing.T) {
	env := newApprovalEnv(t)
	request := env.newRequest(t, models.OPositive, 1)

	_, err := env.approval.DecideRequest(context.Background(), request.ID, env.admin.ID, models.StatusPending, "")
	require.Error(t, err)
	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, 400, errorResponse.StatusCode)
}

func TestDecideRequestRequiresAdmin(t *testing.T) {
	env := newApprovalEnv(t)
	request := env.newRequest(t, models.OPositive, 1)

	_, err := env.approval.DecideRequest(context.Background(), request.ID, env.donor.ID, models.StatusApproved, "")
	require.Error(t, err)
	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, 403, errorResponse.StatusCode)

	// Решение не применилось.
	assert.Equal(t, 12, env.stockUnits(t, models.OPositive))
}

func TestDecideOfferApproveAddsStock(t *testing.T) {
	env := newApprovalEnv(t)
	ctx := context.Background()
	offer := env.newOffer(t, models.OPositive, 3)

	updated, err := env.approval.DecideOffer(ctx, offer.ID, env.admin.ID, models.StatusApproved, "Thank you!")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status)
	assert.Equal(t, 15, env.stockUnits(t, models.OPositive))

	notifications, err := env.repos.Notifications.GetByUser(ctx, env.donor.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Your donation offer has been approved. Thank you!", notifications[0].Message)
}

func TestDecideOfferRejectWithoutResponse(t *testing.T) {
	env := newApprovalEnv(t)
	ctx := context.Background()
	offer := env.newOffer(t, models.OPositive, 2)

	_, err := env.approval.DecideOffer(ctx, offer.ID, env.admin.ID, models.StatusRejected, "")
	require.NoError(t, err)
	assert.Equal(t, 12, env.stockUnits(t, models.OPositive))

	notifications, err := env.repos.Notifications.GetByUser(ctx, env.donor.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	// Пустой комментарий администратора не оставляет висячего пробела.
	assert.Equal(t, "Your donation offer has been rejected.", notifications[0].Message)
}

// brokenStockRepo имитирует сбой базы данных при изменении склада.
type brokenStockRepo struct {
	*repository.MemoryStockRepository
}

func (r *brokenStockRepo) ApplyDelta(ctx context.Context, group models.BloodGroup, delta int) (*models.StockEntry, error) {
	return nil, errors.New("connection reset by peer")
}

func TestDecideRequestStockFailureIsNotMissingRow(t *testing.T) {
	env := newApprovalEnv(t)
	env.repos.Stock = &brokenStockRepo{MemoryStockRepository: repository.NewMemoryStockRepository()}
	env.approval = NewApprovalService(repository.NewMemoryUnitOfWork(env.repos), env.repos.Users)
	request := env.newRequest(t, models.OPositive, 2)

	_, err := env.approval.DecideRequest(context.Background(), request.ID, env.admin.ID, models.StatusApproved, "")
	require.Error(t, err)
	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, 500, errorResponse.StatusCode)
	assert.Equal(t, "failed to update blood stock", errorResponse.Message)
}

func TestDecideRequestMissingStockRow(t *testing.T) {
	env := newApprovalEnv(t)
	ctx := context.Background()

	// Запрос с группой вне вселенной склада, вставленный мимо валидации.
	request, err := env.repos.Requests.Create(ctx, models.BloodRequestPayload{
		PatientID: env.patient.ID, BloodGroup: "X+", Units: 1,
	}, env.patient.Name)
	require.NoError(t, err)

	_, err = env.approval.DecideRequest(ctx, request.ID, env.admin.ID, models.StatusApproved, "")
	require.Error(t, err)
	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, 500, errorResponse.StatusCode)
	assert.Contains(t, errorResponse.Message, "blood stock entry missing for group X+")
}

func TestStockConservationAcrossDecisions(t *testing.T) {
	env := newApprovalEnv(t)
	ctx := context.Background()

	request := env.newRequest(t, models.OPositive, 2)
	offer := env.newOffer(t, models.OPositive, 3)
	rejected := env.newRequest(t, models.OPositive, 4)

	_, err := env.approval.DecideRequest(ctx, request.ID, env.admin.ID, models.StatusApproved, "")
	require.NoError(t, err)
	assert.Equal(t, 10, env.stockUnits(t, models.OPositive))

	_, err = env.approval.DecideOffer(ctx, offer.ID, env.admin.ID, models.StatusApproved, "")
	require.NoError(t, err)
	assert.Equal(t, 13, env.stockUnits(t, models.OPositive))

	_, err = env.approval.DecideRequest(ctx, rejected.ID, env.admin.ID, models.StatusRejected, "")
	require.NoError(t, err)
	assert.Equal(t, 13, env.stockUnits(t, models.OPositive))
}
