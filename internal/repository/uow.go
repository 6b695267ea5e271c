package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories - набор репозиториев, работающих над одним источником данных.
type Repositories struct {
	Users         UserRepository
	Stock         StockRepository
	Requests      RequestRepository
	Offers        OfferRepository
	Notifications NotificationRepository
}

// UnitOfWork выполняет функцию над набором репозиториев как одну логическую
// транзакцию: либо применяются все изменения, либо ни одно.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repositories) error) error
}

// PostgresUnitOfWork - реализация UnitOfWork поверх транзакции pgx.
type PostgresUnitOfWork struct {
	DB *pgxpool.Pool
}

// NewPostgresUnitOfWork создает новый экземпляр PostgresUnitOfWork.
func NewPostgresUnitOfWork(db *pgxpool.Pool) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{DB: db}
}

// Do открывает транзакцию, строит связанные с ней репозитории и выполняет fn.
// Ошибка fn откатывает транзакцию целиком.
func (u *PostgresUnitOfWork) Do(ctx context.Context, fn func(r Repositories) error) error {
	tx, err := u.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	repos := Repositories{
		Users:         NewPostgresUserRepository(tx),
		Stock:         NewPostgresStockRepository(tx),
		Requests:      NewPostgresRequestRepository(tx),
		Offers:        NewPostgresOfferRepository(tx),
		Notifications: NewPostgresNotificationRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// MemoryUnitOfWork - реализация UnitOfWork для репозиториев в памяти.
// Используется в тестах; транзакционности между репозиториями не дает.
type MemoryUnitOfWork struct {
	Repos Repositories
}

// NewMemoryUnitOfWork создает новый экземпляр MemoryUnitOfWork.
func NewMemoryUnitOfWork(repos Repositories) *MemoryUnitOfWork {
	return &MemoryUnitOfWork{Repos: repos}
}

// Do выполняет fn над репозиториями в памяти.
func (u *MemoryUnitOfWork) Do(ctx context.Context, fn func(r Repositories) error) error {
	return fn(u.Repos)
}
