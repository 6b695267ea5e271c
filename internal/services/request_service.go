package services

import (
	"context"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/models"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/repository"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/utils"
)

type RequestService struct {
	Repo  repository.RequestRepository
	Users repository.UserRepository
}

// NewRequestService создаёт новый экземпляр RequestService.
func NewRequestService(repo repository.RequestRepository, users repository.UserRepository) *RequestService {
	return &RequestService{Repo: repo, Users: users}
}

// CreateRequest создает новый запрос пациента на кровь.
func (s *RequestService) CreateRequest(ctx context.Context, payload models.BloodRequestPayload) (*models.BloodRequest, error) {
	if payload.PatientID == "" {
		return nil, models.BadRequestError("missing required field: patientId")
	}
	if !models.ValidBloodGroup(payload.BloodGroup) {
		return nil, models.BadRequestError("invalid blood group")
	}
	if payload.Units <= 0 {
		return nil, models.BadRequestError("units must be a positive integer")
	}

	patient, err := requireRole(ctx, s.Users, payload.PatientID, models.RolePatient)
	if err != nil {
		return nil, err
	}
	return s.Repo.Create(ctx, payload, patient.Name)
}

// FetchRequests возвращает список всех запросов для администратора.
func (s *RequestService) FetchRequests(ctx context.Context, userID, limitStr, offsetStr string, bloodGroups []string) ([]models.BloodRequest, error) {
	if _, err := requireRole(ctx, s.Users, userID, models.RoleAdmin); err != nil {
		return nil, err
	}
	for _, group := range bloodGroups {
		if !models.ValidBloodGroup(models.BloodGroup(group)) {
			return nil, models.BadRequestError("unsupported blood group: " + group)
		}
	}
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.BadRequestError(err.Error())
	}
	return s.Repo.GetAll(ctx, limit, offset, bloodGroups)
}

// GetUserRequests возвращает запросы пациента в порядке создания.
func (s *RequestService) GetUserRequests(ctx context.Context, userID string) ([]models.BloodRequest, error) {
	if _, err := requireUser(ctx, s.Users, userID); err != nil {
		return nil, err
	}
	return s.Repo.GetByPatient(ctx, userID)
}
