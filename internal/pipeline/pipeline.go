// internal/pipeline/pipeline.go

// Package pipeline chains the intake stages for one submission. The
// stages after validation are deliberately independent: a database
// failure does not prevent documents from being stored, and a storage
// failure does not undo the database record. The applicant-facing
// outcome depends only on validation and the document store.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"inscricao-saude/internal/catalog"
	"inscricao-saude/internal/common/database"
	stderrors "inscricao-saude/internal/common/errors"
	"inscricao-saude/internal/common/logger"
	"inscricao-saude/internal/common/metrics"
	"inscricao-saude/internal/common/observability"
	"inscricao-saude/internal/intake"
	createenrollmentrecord "inscricao-saude/internal/pipeline/create-enrollment-record"
	indexenrollment "inscricao-saude/internal/pipeline/index-enrollment"
	issueprotocol "inscricao-saude/internal/pipeline/issue-protocol"
	sendconfirmation "inscricao-saude/internal/pipeline/send-confirmation"
	storedocuments "inscricao-saude/internal/pipeline/store-documents"
	validatesubmission "inscricao-saude/internal/pipeline/validate-submission"
)

const (
	// Messages surfaced to the applicant on best-effort step failures.
	msgDuplicateCPF  = "Já existe uma inscrição com este CPF. Por favor, verifique os dados."
	msgDatabaseError = "Erro ao salvar os dados no banco de dados."

	protocolKeyPrefix = "protocolo:"
)

// Result is the complete outcome of one submission attempt.
type Result struct {
	// Accepted is true when validation passed and the document store
	// step ran to completion. It is the applicant-facing verdict.
	Accepted bool
	// Errors holds the validation messages when Accepted is false
	// because of validation.
	Errors []string

	// Protocol is the issued protocol code, empty when not accepted.
	Protocol string

	// Saved reports whether the database record was created.
	Saved bool
	// Duplicate reports that the CPF was already enrolled.
	Duplicate    bool
	EnrollmentID int64

	StoredDocuments int

	// Warnings carries best-effort step failures that do not change
	// the verdict (database, index, cache, notification).
	Warnings []string

	NotificationStatus string
}

type Stages struct {
	Validate *validatesubmission.Handler
	Persist  *createenrollmentrecord.Handler
	Store    *storedocuments.Handler

	// Optional stages; nil disables them.
	Index  *indexenrollment.Handler
	Notify *sendconfirmation.Handler
}

type Config struct {
	ProtocolPrefix string
	ProtocolTTL    time.Duration
	StageTimeout   time.Duration
}

type Pipeline struct {
	catalog *catalog.Catalog
	stages  Stages
	redis   *database.RedisClient
	obs     *observability.Observability
	config  Config
	logger  logger.Logger
	now     func() time.Time
}

func New(cat *catalog.Catalog, stages Stages, redis *database.RedisClient, obs *observability.Observability, config Config, log logger.Logger) *Pipeline {
	if config.StageTimeout <= 0 {
		config.StageTimeout = 10 * time.Second
	}
	return &Pipeline{
		catalog: cat,
		stages:  stages,
		redis:   redis,
		obs:     obs,
		config:  config,
		logger:  log.WithFields(map[string]interface{}{"component": "pipeline"}),
		now:     time.Now,
	}
}

// Process runs one submission through every stage and never returns a
// partial Result: the error return is for infrastructure problems in
// the pipeline itself, not for rejected submissions.
func (p *Pipeline) Process(ctx context.Context, sub *intake.Submission) (*Result, error) {
	metrics.SubmissionsReceived.Inc()
	start := p.now()

	tier, tierKnown := p.catalog.TierOf(sub.Cargo)
	required := catalog.Resolve(tier, sub.PCD, sub.Indigena)

	validation, err := p.runValidate(ctx, sub, required, tierKnown)
	if err != nil {
		return nil, err
	}
	if !validation.IsValid {
		metrics.SubmissionsRejected.Inc()
		p.record(ctx, start, "rejected")
		p.logger.Info("submission rejected", map[string]interface{}{
			"errorCount": len(validation.Errors),
		})
		return &Result{Accepted: false, Errors: validation.Errors}, nil
	}

	result := &Result{}

	p.runPersist(ctx, sub, result)
	storeOutput := p.runStore(ctx, sub, result)

	if storeOutput != nil {
		result.Accepted = true
		result.Protocol = issueprotocol.Generate(p.config.ProtocolPrefix, sub.NormalizedCPF(), p.now())
	}

	if result.Protocol != "" {
		p.cacheProtocol(ctx, sub, result)
		p.runIndex(ctx, sub, result)
		p.runNotify(ctx, sub, result)
	}

	if result.Accepted {
		metrics.SubmissionsAccepted.Inc()
		p.record(ctx, start, "accepted")
	} else {
		metrics.SubmissionsRejected.Inc()
		p.record(ctx, start, "rejected")
	}

	p.logger.Info("submission processed", map[string]interface{}{
		"accepted":  result.Accepted,
		"saved":     result.Saved,
		"duplicate": result.Duplicate,
		"protocol":  result.Protocol,
		"elapsed":   p.now().Sub(start).String(),
	})

	return result, nil
}

func (p *Pipeline) runValidate(ctx context.Context, sub *intake.Submission, required []catalog.Slot, tierKnown bool) (*validatesubmission.Output, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.StageTimeout)
	defer cancel()

	timer := p.stageTimer(validatesubmission.StageName)
	defer timer()

	output, err := p.stages.Validate.Execute(ctx, &validatesubmission.Input{
		Submission: sub,
		Required:   required,
		TierKnown:  tierKnown,
	})
	if err != nil {
		return nil, fmt.Errorf("validate stage: %w", err)
	}
	return output, nil
}

func (p *Pipeline) runPersist(ctx context.Context, sub *intake.Submission, result *Result) {
	ctx, cancel := context.WithTimeout(ctx, p.config.StageTimeout)
	defer cancel()

	timer := p.stageTimer(createenrollmentrecord.StageName)
	defer timer()

	output, err := p.stages.Persist.Execute(ctx, &createenrollmentrecord.Input{Submission: sub})
	if err != nil {
		if errors.Is(err, createenrollmentrecord.ErrDuplicateEnrollment) {
			result.Duplicate = true
			result.Warnings = append(result.Warnings, msgDuplicateCPF)
			metrics.StageFailures.WithLabelValues(createenrollmentrecord.StageName, string(stderrors.ErrCodeDuplicateEnrollment)).Inc()
		} else {
			result.Warnings = append(result.Warnings, msgDatabaseError)
			metrics.StageFailures.WithLabelValues(createenrollmentrecord.StageName, string(stderrors.ErrCodeDatabaseInsertFailed)).Inc()
		}
		p.logger.WithError(err).Warn("persist stage failed", nil)
		return
	}

	result.Saved = true
	result.EnrollmentID = output.EnrollmentID
}

func (p *Pipeline) runStore(ctx context.Context, sub *intake.Submission, result *Result) *storedocuments.Output {
	ctx, cancel := context.WithTimeout(ctx, p.config.StageTimeout)
	defer cancel()

	timer := p.stageTimer(storedocuments.StageName)
	defer timer()

	output, err := p.stages.Store.Execute(ctx, &storedocuments.Input{Submission: sub})
	if err != nil {
		metrics.StageFailures.WithLabelValues(storedocuments.StageName, string(stderrors.ErrCodeDocumentWriteFailed)).Inc()
		p.logger.WithError(err).Error("store stage failed", nil)
		result.Warnings = append(result.Warnings, "Não foi possível armazenar os documentos enviados.")
		return nil
	}

	result.StoredDocuments = len(output.Stored)
	metrics.DocumentsStored.Add(float64(len(output.Stored)))
	return output
}

// protocolRecord is the cached lookup summary for an issued code.
type protocolRecord struct {
	CPF      string `json:"cpf"`
	Cargo    string `json:"cargo"`
	StoredAt string `json:"storedAt"`
}

// cacheProtocol records the issued code so the protocol lookup endpoint
// can answer without touching Postgres. Failure only logs.
func (p *Pipeline) cacheProtocol(ctx context.Context, sub *intake.Submission, result *Result) {
	if p.redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, p.config.StageTimeout)
	defer cancel()

	value, err := json.Marshal(protocolRecord{
		CPF:      sub.NormalizedCPF(),
		Cargo:    sub.Cargo,
		StoredAt: p.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		p.logger.WithError(err).Warn("protocol record marshal failed", nil)
		return
	}

	key := protocolKeyPrefix + result.Protocol
	if err := p.redis.Set(ctx, key, value, p.config.ProtocolTTL); err != nil {
		metrics.StageFailures.WithLabelValues("cache-protocol", string(stderrors.ErrCodeProtocolCacheFailed)).Inc()
		p.logger.WithError(err).Warn("protocol cache write failed", map[string]interface{}{
			"key": key,
		})
	}
}

func (p *Pipeline) runIndex(ctx context.Context, sub *intake.Submission, result *Result) {
	if p.stages.Index == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, p.config.StageTimeout)
	defer cancel()

	timer := p.stageTimer(indexenrollment.StageName)
	defer timer()

	_, err := p.stages.Index.Execute(ctx, &indexenrollment.Input{
		EnrollmentID: result.EnrollmentID,
		Protocol:     result.Protocol,
		Nome:         sub.Nome,
		CPF:          sub.NormalizedCPF(),
		Cargo:        sub.Cargo,
		Localidade:   sub.Localidade,
		PCD:          sub.PCD,
		Indigena:     sub.Indigena,
		CreatedAt:    p.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		metrics.StageFailures.WithLabelValues(indexenrollment.StageName, string(stderrors.ErrCodeIndexWriteFailed)).Inc()
		p.logger.WithError(err).Warn("index stage failed", nil)
	}
}

func (p *Pipeline) runNotify(ctx context.Context, sub *intake.Submission, result *Result) {
	if p.stages.Notify == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, p.config.StageTimeout)
	defer cancel()

	timer := p.stageTimer(sendconfirmation.StageName)
	defer timer()

	output, err := p.stages.Notify.Execute(ctx, &sendconfirmation.Input{
		Nome:     sub.Nome,
		Email:    sub.Email,
		Telefone: sub.Telefone,
		Cargo:    sub.Cargo,
		Protocol: result.Protocol,
	})
	if err != nil {
		metrics.StageFailures.WithLabelValues(sendconfirmation.StageName, string(stderrors.ErrCodeNotificationFailed)).Inc()
		p.logger.WithError(err).Warn("notify stage failed", nil)
		return
	}
	result.NotificationStatus = output.Status
}

func (p *Pipeline) record(ctx context.Context, start time.Time, status string) {
	if p.obs == nil {
		return
	}
	p.obs.RecordSubmissionProcessed(ctx, status)
	p.obs.RecordSubmissionDuration(ctx, p.now().Sub(start), status)
}

func (p *Pipeline) stageTimer(stage string) func() {
	start := p.now()
	return func() {
		metrics.StageDuration.WithLabelValues(stage).Observe(p.now().Sub(start).Seconds())
	}
}
