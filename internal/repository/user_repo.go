package repository

import (
	"context"
	"errors"
	"time"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// UserRepository - интерфейс для работы с пользователями.
type UserRepository interface {
	Create(ctx context.Context, req models.RegisterRequest, passwordHash string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetDonorsByCity(ctx context.Context, city, excludeID string) ([]models.User, error)
}

// PostgresUserRepository - реализация UserRepository для базы данных.
type PostgresUserRepository struct {
	DB DBTX
}

// NewPostgresUserRepository создаёт новый экземпляр PostgresUserRepository.
func NewPostgresUserRepository(db DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

const userColumns = `id, name, email, password_hash, role, blood_group, address, city, state, mobile, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.BloodGroup,
		&user.Address,
		&user.City,
		&user.State,
		&user.Mobile,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create регистрирует нового пользователя.
func (r *PostgresUserRepository) Create(ctx context.Context, req models.RegisterRequest, passwordHash string) (*models.User, error) {
	newUser := models.User{
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
	insertQuery := `INSERT INTO users (` + userColumns + `)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newUser.ID,
		newUser.Name,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.BloodGroup,
		newUser.Address,
		newUser.City,
		newUser.State,
		newUser.Mobile,
		newUser.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &newUser, nil
}

// GetByID возвращает пользователя по id.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRow(ctx, query, id))
}

// GetByEmail возвращает пользователя по email.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRow(ctx, query, email))
}

// GetDonorsByCity возвращает доноров из указанного города, кроме самого пользователя.
func (r *PostgresUserRepository) GetDonorsByCity(ctx context.Context, city, excludeID string) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
	          WHERE role = 'donor' AND LOWER(city) = LOWER($1) AND id != $2
	          ORDER BY name`

	rows, err := r.DB.Query(ctx, query, city, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donors []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.BloodGroup,
			&user.Address,
			&user.City,
			&user.State,
			&user.Mobile,
			&user.CreatedAt); err != nil {
			return nil, err
		}
		donors = append(donors, user)
	}
	return donors, nil
}
