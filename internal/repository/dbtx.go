package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX - общий интерфейс для пула соединений и транзакции.
// Репозитории работают одинаково поверх *pgxpool.Pool и pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	// ErrNotFound возвращается, когда сущность с указанным id отсутствует.
	ErrNotFound = errors.New("entity not found")
	// ErrNotPending возвращается при попытке решения по уже решённой сущности.
	ErrNotPending = errors.New("entity is not pending")
	// ErrDuplicateEmail возвращается при регистрации с занятым email.
	ErrDuplicateEmail = errors.New("email already registered")
)
