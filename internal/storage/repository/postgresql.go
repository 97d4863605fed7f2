// Package repository реализует хранилище данных на основе PostgreSQL.
// Все запросы к данным клуба принимают явный gymID и фильтруют по gym_id.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/PoorDoomer/gym-saas-sub000/internal/storage"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// querier общий интерфейс *sql.DB и *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// Ping проверяет соединение с базой.
func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// CheckDatabaseReady проверяет, что миграции применены.
func CheckDatabaseReady(ctx context.Context, storage *Storage) error {
	const op = "storage.CheckDatabaseReady"
	var exists bool
	err := storage.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_schema = 'public' AND table_name = 'gyms'
    )`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: required table gyms missing", op)
	}
	return nil
}

// withTx выполняет fn в транзакции, откатывая её при ошибке.
func (s *Storage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

// checkCtx возвращает ошибку отменённого контекста до обращения к базе.
func checkCtx(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}

// wrap оборачивает ошибку драйвера в доменную ошибку хранилища.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w: %s", op, storage.ErrAlreadyExists, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%s: %w: %s", op, storage.ErrInvalidReference, pgErr.ConstraintName)
		case "22P02":
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// expectAffected возвращает ErrNotFound, если запрос не изменил ни одной строки.
func expectAffected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// Проверки ссылок на записи клуба. Виды спорта с пустым gym_id общие для всех клубов.
const (
	refPlan         = `SELECT EXISTS(SELECT 1 FROM membership_plans WHERE id = $1 AND gym_id = $2)`
	refTrainer      = `SELECT EXISTS(SELECT 1 FROM trainers WHERE id = $1 AND gym_id = $2)`
	refSport        = `SELECT EXISTS(SELECT 1 FROM sports WHERE id = $1 AND (gym_id = $2 OR gym_id IS NULL))`
	refSubscription = `SELECT EXISTS(SELECT 1 FROM subscriptions WHERE id = $1 AND gym_id = $2)`
)

type tenantRef struct {
	query string
	id    *string
}

// checkRefs возвращает ErrInvalidReference, если необязательная ссылка указывает
// на запись другого клуба или на несуществующую запись. Пустые ссылки пропускаются.
func checkRefs(ctx context.Context, q querier, gymID string, refs ...tenantRef) error {
	for _, ref := range refs {
		if ref.id == nil || *ref.id == "" {
			continue
		}
		var ok bool
		if err := q.QueryRowContext(ctx, ref.query, *ref.id, gymID).Scan(&ok); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
				return storage.ErrInvalidReference
			}
			return err
		}
		if !ok {
			return storage.ErrInvalidReference
		}
	}
	return nil
}
