package repository

import (
	"context"
	"errors"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/models"

	"github.com/jackc/pgx/v5"
)

// StockRepository - интерфейс для работы со складом крови.
type StockRepository interface {
	GetAll(ctx context.Context) ([]models.StockEntry, error)
	ApplyDelta(ctx context.Context, group models.BloodGroup, delta int) (*models.StockEntry, error)
}

// PostgresStockRepository - реализация StockRepository для базы данных.
type PostgresStockRepository struct {
	DB DBTX
}

// NewPostgresStockRepository создаёт новый экземпляр PostgresStockRepository.
func NewPostgresStockRepository(db DBTX) *PostgresStockRepository {
	return &PostgresStockRepository{DB: db}
}

// GetAll возвращает записи склада в порядке фиксированной вселенной групп.
func (r *PostgresStockRepository) GetAll(ctx context.Context) ([]models.StockEntry, error) {
	query := `SELECT blood_group, units, last_updated FROM blood_stock ORDER BY position`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.StockEntry
	for rows.Next() {
		var entry models.StockEntry
		if err := rows.Scan(&entry.BloodGroup, &entry.Units, &entry.LastUpdated); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ApplyDelta прибавляет знаковую дельту к количеству единиц группы.
// Результат никогда не опускается ниже нуля; время обновления проставляется заново.
func (r *PostgresStockRepository) ApplyDelta(ctx context.Context, group models.BloodGroup, delta int) (*models.StockEntry, error) {
	query := `UPDATE blood_stock SET units = GREATEST(0, units + $1), last_updated = now()
	          WHERE blood_group = $2
	          RETURNING blood_group, units, last_updated`

	var entry models.StockEntry
	err := r.DB.QueryRow(ctx, query, delta, group).Scan(&entry.BloodGroup, &entry.Units, &entry.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}
