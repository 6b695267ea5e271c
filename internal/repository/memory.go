package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/models"

	"github.com/google/uuid"
)

// Реализации репозиториев в памяти. Повторяют контракт postgres-реализаций
// и используются в модульных тестах вместо базы данных.

// MemoryStockRepository - склад крови в памяти.
type MemoryStockRepository struct {
	mu      sync.Mutex
	entries []models.StockEntry
}

// NewMemoryStockRepository создает склад с фиксированной вселенной групп крови.
func NewMemoryStockRepository() *MemoryStockRepository {
	now := time.Now().UTC()
	return &MemoryStockRepository{
		entries: []models.StockEntry{
			{BloodGroup: models.APositive, Units: 10, LastUpdated: now},
			{BloodGroup: models.ANegative, Units: 5, LastUpdated: now},
			{BloodGroup: models.BPositive, Units: 8, LastUpdated: now},
			{BloodGroup: models.BNegative, Units: 4, LastUpdated: now},
			{BloodGroup: models.ABPositive, Units: 3, LastUpdated: now},
			{BloodGroup: models.ABNegative, Units: 2, LastUpdated: now},
			{BloodGroup: models.OPositive, Units: 12, LastUpdated: now},
			{BloodGroup: models.ONegative, Units: 6, LastUpdated: now},
		},
	}
}

// GetAll возвращает записи склада в порядке вселенной групп.
func (r *MemoryStockRepository) GetAll(ctx context.Context) ([]models.StockEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := make([]models.StockEntry, len(r.entries))
	copy(entries, r.entries)
	return entries, nil
}

// ApplyDelta прибавляет дельту с отсечением на нуле.
func (r *MemoryStockRepository) ApplyDelta(ctx context.Context, group models.BloodGroup, delta int) (*models.StockEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].BloodGroup == group {
			units := r.entries[i].Units + delta
			if units < 0 {
				units = 0
			}
			r.entries[i].Units = units
			r.entries[i].LastUpdated = time.Now().UTC()
			entry := r.entries[i]
			return &entry, nil
		}
	}
	return nil, ErrNotFound
}

// MemoryUserRepository - пользователи в памяти.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users []models.User
}

// NewMemoryUserRepository создает новый экземпляр MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{}
}

// Create регистрирует нового пользователя.
func (r *MemoryUserRepository) Create(ctx context.Context, req models.RegisterRequest, passwordHash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == req.Email {
			return nil, ErrDuplicateEmail
		}
	}
	user := models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         req.Role,
		BloodGroup:   req.BloodGroup,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Mobile:       req.Mobile,
		CreatedAt:    time.Now().UTC(),
	}
	r.users = append(r.users, user)
	return &user, nil
}

// GetByID возвращает пользователя по id.
func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// GetByEmail возвращает пользователя по email.
func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// GetDonorsByCity возвращает доноров из города, кроме самого пользователя.
func (r *MemoryUserRepository) GetDonorsByCity(ctx context.Context, city, excludeID string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var donors []models.User
	for _, u := range r.users {
		if u.Role == models.RoleDonor && strings.EqualFold(u.City, city) && u.ID != excludeID {
			donors = append(donors, u)
		}
	}
	return donors, nil
}

// MemoryRequestRepository - запросы на кровь в памяти.
type MemoryRequestRepository struct {
	mu       sync.Mutex
	requests []models.BloodRequest
}

// NewMemoryRequestRepository создает новый экземпляр MemoryRequestRepository.
func NewMemoryRequestRepository() *MemoryRequestRepository {
	return &MemoryRequestRepository{}
}

// Create создает новый запрос в статусе pending.
func (r *MemoryRequestRepository) Create(ctx context.Context, payload models.BloodRequestPayload, patientName string) (*models.BloodRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req := models.BloodRequest{
		ID:          uuid.New().String(),
		PatientID:   payload.PatientID,
		PatientName: patientName,
		BloodGroup:  payload.BloodGroup,
		Units:       payload.Units,
		Reason:      payload.Reason,
		Status:      models.StatusPending,
		RequestDate: time.Now().UTC(),
		Address:     payload.Address,
		City:        payload.City,
		State:       payload.State,
		Mobile:      payload.Mobile,
	}
	r.requests = append(r.requests, req)
	return &req, nil
}

// GetAll возвращает запросы в порядке создания.
func (r *MemoryRequestRepository) GetAll(ctx context.Context, limit, offset int, bloodGroups []string) ([]models.BloodRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var filtered []models.BloodRequest
	for _, req := range r.requests {
		if len(bloodGroups) > 0 && !containsString(bloodGroups, string(req.BloodGroup)) {
			continue
		}
		filtered = append(filtered, req)
	}
	return paginate(filtered, limit, offset), nil
}

// GetByPatient возвращает запросы пациента в порядке создания.
func (r *MemoryRequestRepository) GetByPatient(ctx context.Context, patientID string) ([]models.BloodRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var requests []models.BloodRequest
	for _, req := range r.requests {
		if req.PatientID == patientID {
			requests = append(requests, req)
		}
	}
	return requests, nil
}

// GetByID возвращает запрос по id.
func (r *MemoryRequestRepository) GetByID(ctx context.Context, id string) (*models.BloodRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.ID == id {
			found := req
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateStatus переводит запрос из pending в конечный статус, один раз.
func (r *MemoryRequestRepository) UpdateStatus(ctx context.Context, id string, status models.RequestStatus, adminResponse string) (*models.BloodRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == id {
			if r.requests[i].Status != models.StatusPending {
				return nil, ErrNotPending
			}
			r.requests[i].Status = status
			r.requests[i].AdminResponse = adminResponse
			updated := r.requests[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

// MemoryOfferRepository - предложения доноров в памяти.
type MemoryOfferRepository struct {
	mu     sync.Mutex
	offers []models.DonationOffer
}

// NewMemoryOfferRepository создает новый экземпляр MemoryOfferRepository.
func NewMemoryOfferRepository() *MemoryOfferRepository {
	return &MemoryOfferRepository{}
}

// Create создает новое предложение в статусе pending.
func (r *MemoryOfferRepository) Create(ctx context.Context, payload models.DonationOfferPayload, donorName string) (*models.DonationOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offer := models.DonationOffer{
		ID:         uuid.New().String(),
		DonorID:    payload.DonorID,
		DonorName:  donorName,
		BloodGroup: payload.BloodGroup,
		Units:      payload.Units,
		Status:     models.StatusPending,
		OfferDate:  time.Now().UTC(),
		Address:    payload.Address,
		City:       payload.City,
		State:      payload.State,
		Mobile:     payload.Mobile,
	}
	r.offers = append(r.offers, offer)
	return &offer, nil
}

// GetAll возвращает предложения в порядке создания.
func (r *MemoryOfferRepository) GetAll(ctx context.Context, limit, offset int, bloodGroups []string) ([]models.DonationOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var filtered []models.DonationOffer
	for _, offer := range r.offers {
		if len(bloodGroups) > 0 && !containsString(bloodGroups, string(offer.BloodGroup)) {
			continue
		}
		filtered = append(filtered, offer)
	}
	return paginate(filtered, limit, offset), nil
}

// GetByDonor возвращает предложения донора в порядке создания.
func (r *MemoryOfferRepository) GetByDonor(ctx context.Context, donorID string) ([]models.DonationOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var offers []models.DonationOffer
	for _, offer := range r.offers {
		if offer.DonorID == donorID {
			offers = append(offers, offer)
		}
	}
	return offers, nil
}

// GetByID возвращает предложение по id.
func (r *MemoryOfferRepository) GetByID(ctx context.Context, id string) (*models.DonationOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, offer := range r.offers {
		if offer.ID == id {
			found := offer
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateStatus переводит предложение из pending в конечный статус, один раз.
func (r *MemoryOfferRepository) UpdateStatus(ctx context.Context, id string, status models.RequestStatus, adminResponse string) (*models.DonationOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.offers {
		if r.offers[i].ID == id {
			if r.offers[i].Status != models.StatusPending {
				return nil, ErrNotPending
			}
			r.offers[i].Status = status
			r.offers[i].AdminResponse = adminResponse
			updated := r.offers[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

// BookSlot записывает дату и время донации.
func (r *MemoryOfferRepository) BookSlot(ctx context.Context, id string, slot time.Time) (*models.DonationOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.offers {
		if r.offers[i].ID == id {
			r.offers[i].SlotBooked = true
			slotCopy := slot
			r.offers[i].DonationSlot = &slotCopy
			updated := r.offers[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

// LatestApprovedByDonor возвращает последнее одобренное предложение донора,
// при равных датах - с большим id. nil, nil если одобренных нет.
func (r *MemoryOfferRepository) LatestApprovedByDonor(ctx context.Context, donorID string) (*models.DonationOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.DonationOffer
	for i := range r.offers {
		offer := r.offers[i]
		if offer.DonorID != donorID || offer.Status != models.StatusApproved {
			continue
		}
		if latest == nil || offer.OfferDate.After(latest.OfferDate) ||
			(offer.OfferDate.Equal(latest.OfferDate) && offer.ID > latest.ID) {
			found := offer
			latest = &found
		}
	}
	return latest, nil
}

// ActiveDonorIDs возвращает идентификаторы доноров с одобренными предложениями.
func (r *MemoryOfferRepository) ActiveDonorIDs(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	var ids []string
	for _, offer := range r.offers {
		if offer.Status == models.StatusApproved && !seen[offer.DonorID] {
			seen[offer.DonorID] = true
			ids = append(ids, offer.DonorID)
		}
	}
	return ids, nil
}

// MemoryNotificationRepository - журнал уведомлений в памяти.
type MemoryNotificationRepository struct {
	mu            sync.Mutex
	notifications []models.Notification
}

// NewMemoryNotificationRepository создает новый экземпляр MemoryNotificationRepository.
func NewMemoryNotificationRepository() *MemoryNotificationRepository {
	return &MemoryNotificationRepository{}
}

// Create добавляет непрочитанное уведомление.
func (r *MemoryNotificationRepository) Create(ctx context.Context, userID, message string, notificationType models.NotificationType) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification := models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		Type:      notificationType,
		CreatedAt: time.Now().UTC(),
		Read:      false,
	}
	r.notifications = append(r.notifications, notification)
	return &notification, nil
}

// GetByUser возвращает уведомления пользователя, новые первыми.
func (r *MemoryNotificationRepository) GetByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var notifications []models.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].UserID == userID {
			notifications = append(notifications, r.notifications[i])
		}
	}
	return notifications, nil
}

// MarkRead помечает уведомление прочитанным.
func (r *MemoryNotificationRepository) MarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			r.notifications[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

// CountRecentReminders считает напоминания, созданные после указанного времени.
func (r *MemoryNotificationRepository) CountRecentReminders(ctx context.Context, userID string, since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.notifications {
		if n.UserID == userID && n.Type == models.NotificationReminder && n.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
