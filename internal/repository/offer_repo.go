package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

// OfferRepository - интерфейс для работы с предложениями доноров.
type OfferRepository interface {
	Create(ctx context.Context, payload models.DonationOfferPayload, donorName string) (*models.DonationOffer, error)
	GetAll(ctx context.Context, limit, offset int, bloodGroups []string) ([]models.DonationOffer, error)
	GetByDonor(ctx context.Context, donorID string) ([]models.DonationOffer, error)
	GetByID(ctx context.Context, id string) (*models.DonationOffer, error)
	UpdateStatus(ctx context.Context, id string, status models.RequestStatus, adminResponse string) (*models.DonationOffer, error)
	BookSlot(ctx context.Context, id string, slot time.Time) (*models.DonationOffer, error)
	LatestApprovedByDonor(ctx context.Context, donorID string) (*models.DonationOffer, error)
	ActiveDonorIDs(ctx context.Context) ([]string, error)
}

// PostgresOfferRepository - реализация OfferRepository для базы данных.
type PostgresOfferRepository struct {
	DB DBTX
}

// NewPostgresOfferRepository создает новый экземпляр PostgresOfferRepository.
func NewPostgresOfferRepository(db DBTX) *PostgresOfferRepository {
	return &PostgresOfferRepository{DB: db}
}

const offerColumns = `id, donor_id, donor_name, blood_group, units, status, admin_response, offer_date, address, city, state, mobile, slot_booked, donation_slot`

func scanOffer(row pgx.Row) (*models.DonationOffer, error) {
	var offer models.DonationOffer
	err := row.Scan(
		&offer.ID,
		&offer.DonorID,
		&offer.DonorName,
		&offer.BloodGroup,
		&offer.Units,
		&offer.Status,
		&offer.AdminResponse,
		&offer.OfferDate,
		&offer.Address,
		&offer.City,
		&offer.State,
		&offer.Mobile,
		&offer.SlotBooked,
		&offer.DonationSlot,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &offer, nil
}

// Create создает новое предложение донора в статусе pending.
func (r *PostgresOfferRepository) Create(ctx context.Context, payload models.DonationOfferPayload, donorName string) (*models.DonationOffer, error) {
	newOffer := models.DonationOffer{
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
	insertQuery := `INSERT INTO donation_offer (` + offerColumns + `)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newOffer.ID,
		newOffer.DonorID,
		newOffer.DonorName,
		newOffer.BloodGroup,
		newOffer.Units,
		newOffer.Status,
		newOffer.AdminResponse,
		newOffer.OfferDate,
		newOffer.Address,
		newOffer.City,
		newOffer.State,
		newOffer.Mobile,
		newOffer.SlotBooked,
		newOffer.DonationSlot)
	if err != nil {
		return nil, fmt.Errorf("failed to insert donation offer: %w", err)
	}
	return &newOffer, nil
}

// GetAll возвращает список предложений в порядке создания, старые первыми.
func (r *PostgresOfferRepository) GetAll(ctx context.Context, limit, offset int, bloodGroups []string) ([]models.DonationOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM donation_offer`
	var filters []string
	var args []interface{}
	argIndex := 1

	if len(bloodGroups) > 0 {
		filters = append(filters, fmt.Sprintf("blood_group = ANY($%d)", argIndex))
		args = append(args, pq.Array(bloodGroups))
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY offer_date, id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOffers(rows)
}

// GetByDonor возвращает предложения донора в порядке создания.
func (r *PostgresOfferRepository) GetByDonor(ctx context.Context, donorID string) ([]models.DonationOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM donation_offer WHERE donor_id = $1 ORDER BY offer_date, id`

	rows, err := r.DB.Query(ctx, query, donorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOffers(rows)
}

func collectOffers(rows pgx.Rows) ([]models.DonationOffer, error) {
	var offers []models.DonationOffer
	for rows.Next() {
		var offer models.DonationOffer
		if err := rows.Scan(
			&offer.ID,
			&offer.DonorID,
			&offer.DonorName,
			&offer.BloodGroup,
			&offer.Units,
			&offer.Status,
			&offer.AdminResponse,
			&offer.OfferDate,
			&offer.Address,
			&offer.City,
			&offer.State,
			&offer.Mobile,
			&offer.SlotBooked,
			&offer.DonationSlot); err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

// GetByID возвращает предложение по id.
func (r *PostgresOfferRepository) GetByID(ctx context.Context, id string) (*models.DonationOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM donation_offer WHERE id = $1`
	return scanOffer(r.DB.QueryRow(ctx, query, id))
}

// UpdateStatus переводит предложение из pending в конечный статус.
// Повторное решение невозможно из-за условия status = 'pending'.
func (r *PostgresOfferRepository) UpdateStatus(ctx context.Context, id string, status models.RequestStatus, adminResponse string) (*models.DonationOffer, error) {
	updateQuery := `UPDATE donation_offer SET status = $1, admin_response = $2
	                WHERE id = $3 AND status = 'pending'
	                RETURNING ` + offerColumns

	updated, err := scanOffer(r.DB.QueryRow(ctx, updateQuery, status, adminResponse, id))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrNotPending
}

// BookSlot записывает дату и время донации для предложения.
func (r *PostgresOfferRepository) BookSlot(ctx context.Context, id string, slot time.Time) (*models.DonationOffer, error) {
	updateQuery := `UPDATE donation_offer SET slot_booked = TRUE, donation_slot = $1
	                WHERE id = $2
	                RETURNING ` + offerColumns
	return scanOffer(r.DB.QueryRow(ctx, updateQuery, slot, id))
}

// LatestApprovedByDonor возвращает последнее одобренное предложение донора.
// При равных датах выбирается предложение с большим id. Возвращает nil, nil,
// если одобренных предложений нет.
func (r *PostgresOfferRepository) LatestApprovedByDonor(ctx context.Context, donorID string) (*models.DonationOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM donation_offer
	          WHERE donor_id = $1 AND status = 'approved'
	          ORDER BY offer_date DESC, id DESC
	          LIMIT 1`

	offer, err := scanOffer(r.DB.QueryRow(ctx, query, donorID))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return offer, err
}

// ActiveDonorIDs возвращает идентификаторы доноров с одобренными предложениями.
func (r *PostgresOfferRepository) ActiveDonorIDs(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT donor_id FROM donation_offer WHERE status = 'approved'`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
