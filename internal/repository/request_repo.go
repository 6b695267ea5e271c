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

// RequestRepository - интерфейс для работы с запросами на кровь.
type RequestRepository interface {
	Create(ctx context.Context, payload models.BloodRequestPayload, patientName string) (*models.BloodRequest, error)
	GetAll(ctx context.Context, limit, offset int, bloodGroups []string) ([]models.BloodRequest, error)
	GetByPatient(ctx context.Context, patientID string) ([]models.BloodRequest, error)
	GetByID(ctx context.Context, id string) (*models.BloodRequest, error)
	UpdateStatus(ctx context.Context, id string, status models.RequestStatus, adminResponse string) (*models.BloodRequest, error)
}

// PostgresRequestRepository - реализация RequestRepository для базы данных.
type PostgresRequestRepository struct {
	DB DBTX
}

// NewPostgresRequestRepository создаёт новый экземпляр PostgresRequestRepository.
func NewPostgresRequestRepository(db DBTX) *PostgresRequestRepository {
	return &PostgresRequestRepository{DB: db}
}

const requestColumns = `id, patient_id, patient_name, blood_group, units, reason, status, admin_response, request_date, address, city, state, mobile`

func scanRequest(row pgx.Row) (*models.BloodRequest, error) {
	var req models.BloodRequest
	err := row.Scan(
		&req.ID,
		&req.PatientID,
		&req.PatientName,
		&req.BloodGroup,
		&req.Units,
		&req.Reason,
		&req.Status,
		&req.AdminResponse,
		&req.RequestDate,
		&req.Address,
		&req.City,
		&req.State,
		&req.Mobile,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Create создает новый запрос на кровь в статусе pending.
func (r *PostgresRequestRepository) Create(ctx context.Context, payload models.BloodRequestPayload, patientName string) (*models.BloodRequest, error) {
	newRequest := models.BloodRequest{
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
	insertQuery := `INSERT INTO blood_request (` + requestColumns + `)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newRequest.ID,
		newRequest.PatientID,
		newRequest.PatientName,
		newRequest.BloodGroup,
		newRequest.Units,
		newRequest.Reason,
		newRequest.Status,
		newRequest.AdminResponse,
		newRequest.RequestDate,
		newRequest.Address,
		newRequest.City,
		newRequest.State,
		newRequest.Mobile)
	if err != nil {
		return nil, fmt.Errorf("failed to insert blood request: %w", err)
	}
	return &newRequest, nil
}

// GetAll возвращает список запросов в порядке создания, старые первыми.
func (r *PostgresRequestRepository) GetAll(ctx context.Context, limit, offset int, bloodGroups []string) ([]models.BloodRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM blood_request`
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

	query += fmt.Sprintf(" ORDER BY request_date, id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequests(rows)
}

// GetByPatient возвращает запросы пациента в порядке создания.
func (r *PostgresRequestRepository) GetByPatient(ctx context.Context, patientID string) ([]models.BloodRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM blood_request WHERE patient_id = $1 ORDER BY request_date, id`

	rows, err := r.DB.Query(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]models.BloodRequest, error) {
	var requests []models.BloodRequest
	for rows.Next() {
		var req models.BloodRequest
		if err := rows.Scan(
			&req.ID,
			&req.PatientID,
			&req.PatientName,
			&req.BloodGroup,
			&req.Units,
			&req.Reason,
			&req.Status,
			&req.AdminResponse,
			&req.RequestDate,
			&req.Address,
			&req.City,
			&req.State,
			&req.Mobile); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// GetByID возвращает запрос по id.
func (r *PostgresRequestRepository) GetByID(ctx context.Context, id string) (*models.BloodRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM blood_request WHERE id = $1`
	return scanRequest(r.DB.QueryRow(ctx, query, id))
}

// UpdateStatus переводит запрос из pending в конечный статус.
// Переход выполняется не больше одного раза: условие status = 'pending'
// делает повторное решение невозможным на уровне запроса к базе.
func (r *PostgresRequestRepository) UpdateStatus(ctx context.Context, id string, status models.RequestStatus, adminResponse string) (*models.BloodRequest, error) {
	updateQuery := `UPDATE blood_request SET status = $1, admin_response = $2
	                WHERE id = $3 AND status = 'pending'
	                RETURNING ` + requestColumns

	updated, err := scanRequest(r.DB.QueryRow(ctx, updateQuery, status, adminResponse, id))
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
