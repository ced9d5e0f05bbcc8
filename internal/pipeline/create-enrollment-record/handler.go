// internal/pipeline/create-enrollment-record/handler.go
package createenrollmentrecord

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"inscricao-saude/internal/common/logger"

	"github.com/lib/pq"
)

const (
	StageName = "create-enrollment-record"

	// Postgres class 23 integrity violation, unique constraint.
	uniqueViolationCode = "23505"
)

var (
	ErrSchemaEnsureFailed   = errors.New("SCHEMA_ENSURE_FAILED")
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrDuplicateEnrollment  = errors.New("DUPLICATE_ENROLLMENT")
)

const ensureTableSQL = `
	CREATE TABLE IF NOT EXISTS inscricoes (
		id              SERIAL PRIMARY KEY,
		nome            TEXT NOT NULL,
		data_nascimento DATE,
		rg              TEXT NOT NULL,
		cpf             TEXT NOT NULL UNIQUE,
		endereco        TEXT NOT NULL,
		telefone        TEXT NOT NULL,
		email           TEXT NOT NULL,
		pcd             BOOLEAN NOT NULL DEFAULT FALSE,
		indigena        BOOLEAN NOT NULL DEFAULT FALSE,
		cargo           TEXT NOT NULL,
		localidade      TEXT,
		experiencia     BOOLEAN NOT NULL DEFAULT FALSE,
		declara         BOOLEAN NOT NULL,
		autoriza        BOOLEAN NOT NULL,
		criada_em       TIMESTAMPTZ NOT NULL
	)`

const insertSQL = `
	INSERT INTO inscricoes (
		nome, data_nascimento, rg, cpf, endereco, telefone, email,
		pcd, indigena, cargo, localidade, experiencia, declara, autoriza,
		criada_em
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	RETURNING id`

type Handler struct {
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"stage": StageName}),
	}
}

// Execute persists one enrollment inside a single transaction. The
// schema is ensured on every call so a fresh database works without a
// migration step. Duplicate detection relies solely on the UNIQUE
// constraint on cpf: there is no read-before-write, so two concurrent
// submissions of the same CPF cannot both succeed.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	cpf := input.Submission.NormalizedCPF()
	createdAt := time.Now().UTC()

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %v", ErrDatabaseInsertFailed, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, ensureTableSQL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaEnsureFailed, err)
	}

	var birthDate interface{}
	if !input.Submission.DataNascimento.IsZero() {
		birthDate = input.Submission.DataNascimento
	}

	var id int64
	err = tx.QueryRowContext(ctx, insertSQL,
		input.Submission.Nome,
		birthDate,
		input.Submission.RG,
		cpf,
		input.Submission.Endereco,
		input.Submission.Telefone,
		input.Submission.Email,
		input.Submission.PCD,
		input.Submission.Indigena,
		input.Submission.Cargo,
		input.Submission.Localidade,
		input.Submission.Experiencia,
		input.Submission.Declara,
		input.Submission.Autoriza,
		createdAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: cpf %s already enrolled", ErrDuplicateEnrollment, cpf)
		}
		return nil, fmt.Errorf("%w: insert failed: %v", ErrDatabaseInsertFailed, err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: cpf %s already enrolled", ErrDuplicateEnrollment, cpf)
		}
		return nil, fmt.Errorf("%w: commit failed: %v", ErrDatabaseInsertFailed, err)
	}

	h.logger.Info("enrollment record created", map[string]interface{}{
		"enrollmentId": id,
		"cargo":        input.Submission.Cargo,
	})

	return &Output{
		EnrollmentID: id,
		CreatedAt:    createdAt.Format(time.RFC3339),
	}, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode
}
