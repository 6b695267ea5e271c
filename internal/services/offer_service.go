package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/models"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/repository"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/utils"
)

// maxSlotLeadDays - максимум дней вперёд, на которые бронируется слот донации.
const maxSlotLeadDays = 30

type OfferService struct {
	Repo          repository.OfferRepository
	Users         repository.UserRepository
	Notifications repository.NotificationRepository
}

// NewOfferService создаёт новый экземпляр OfferService.
func NewOfferService(repo repository.OfferRepository, users repository.UserRepository, notifications repository.NotificationRepository) *OfferService {
	return &OfferService{Repo: repo, Users: users, Notifications: notifications}
}

// CreateOffer создает новое предложение донора.
func (s *OfferService) CreateOffer(ctx context.Context, payload models.DonationOfferPayload) (*models.DonationOffer, error) {
	if payload.DonorID == "" {
		return nil, models.BadRequestError("missing required field: donorId")
	}
	if !models.ValidBloodGroup(payload.BloodGroup) {
		return nil, models.BadRequestError("invalid blood group")
	}
	if payload.Units <= 0 || payload.Units > models.MaxOfferUnits {
		return nil, models.BadRequestError(fmt.Sprintf("units must be between 1 and %d", models.MaxOfferUnits))
	}

	donor, err := requireRole(ctx, s.Users, payload.DonorID, models.RoleDonor)
	if err != nil {
		return nil, err
	}
	return s.Repo.Create(ctx, payload, donor.Name)
}

// FetchOffers возвращает список всех предложений для администратора.
func (s *OfferService) FetchOffers(ctx context.Context, userID, limitStr, offsetStr string, bloodGroups []string) ([]models.DonationOffer, error) {
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

// GetDonorOffers возвращает предложения донора в порядке создания.
func (s *OfferService) GetDonorOffers(ctx context.Context, userID string) ([]models.DonationOffer, error) {
	if _, err := requireUser(ctx, s.Users, userID); err != nil {
		return nil, err
	}
	return s.Repo.GetByDonor(ctx, userID)
}

// BookSlot бронирует дату и время донации для предложения донора.
// Слот должен быть в будущем и не дальше 30 дней; отклонённое предложение
// забронировать нельзя. Повторное бронирование перезаписывает слот.
func (s *OfferService) BookSlot(ctx context.Context, offerID, userID string, slot time.Time) (*models.DonationOffer, error) {
	if _, err := requireUser(ctx, s.Users, userID); err != nil {
		return nil, err
	}

	offer, err := s.Repo.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.NotFoundError("donation offer not found")
		}
		return nil, models.InternalError("internal server error")
	}
	if offer.DonorID != userID {
		return nil, models.NewErrorResponse(http.StatusForbidden, "you can only book slots for your own donation offers")
	}
	if offer.Status == models.StatusRejected {
		return nil, models.BadRequestError("cannot book a slot for a rejected donation offer")
	}

	now := time.Now().UTC()
	if !slot.After(now) {
		return nil, models.BadRequestError("donation slot must be in the future")
	}
	if slot.After(now.AddDate(0, 0, maxSlotLeadDays)) {
		return nil, models.BadRequestError(fmt.Sprintf("donation slot must be within the next %d days", maxSlotLeadDays))
	}

	updated, err := s.Repo.BookSlot(ctx, offerID, slot)
	if err != nil {
		return nil, models.InternalError("failed to book donation slot")
	}

	message := fmt.Sprintf("Your donation slot has been booked for %s.", slot.Format("02 Jan 2006 03:04 PM"))
	if _, err := s.Notifications.Create(ctx, userID, message, models.NotificationSlotBooking); err != nil {
		return nil, models.InternalError("failed to create slot booking notification")
	}
	return updated, nil
}
