package repositories

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"campusEvents/internal/config"
	"campusEvents/internal/utils/logger/sl"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

//go:embed schema.sql
var schema string

const uniqueViolation = "23505"

type Repository struct {
	log *slog.Logger
	DB  *sqlx.DB
}

// New подключается к PostgreSQL и применяет схему. Если база недоступна,
// процесс завершается.
func New(log *slog.Logger, cfg *config.Config) *Repository {
	op := "repositories.New()"
	logger := log.With(slog.String("op", op))

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBConfig.Host,
		cfg.DBConfig.Port,
		cfg.DBConfig.User,
		cfg.DBConfig.Password,
		cfg.DBConfig.Name,
		cfg.DBConfig.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logger.Error("cannot connect to database", sl.Err(err))
		os.Exit(1)
	}

	if _, err := db.Exec(schema); err != nil {
		logger.Error("cannot apply schema", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("database connected",
		slog.String("host", cfg.DBConfig.Host),
		slog.String("name", cfg.DBConfig.Name),
	)

	return &Repository{
		log: log,
		DB:  db,
	}
}

// NewWithDB оборачивает существующее подключение.
func NewWithDB(log *slog.Logger, db *sqlx.DB) *Repository {
	return &Repository{log: log, DB: db}
}

func (r *Repository) Shutdown(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("force exit repository: %w", ctx.Err())
	default:
		return r.DB.Close()
	}
}

// withTx выполняет fn в транзакции и коммитит, если fn вернула nil.
func (r *Repository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.log.Error("rollback failed", sl.Err(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
