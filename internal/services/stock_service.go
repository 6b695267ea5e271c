package services

import (
	"context"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/models"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/repository"
)

type StockService struct {
	Repo repository.StockRepository
}

// NewStockService создаёт новый экземпляр StockService.
func NewStockService(repo repository.StockRepository) *StockService {
	return &StockService{Repo: repo}
}

// GetAllStock возвращает записи склада в стабильном порядке вселенной групп.
// Порядок используется напрямую для отображения, без пересортировки.
func (s *StockService) GetAllStock(ctx context.Context) ([]models.StockEntry, error) {
	entries, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, models.InternalError("failed to fetch blood stock")
	}
	return entries, nil
}
