// internal/pipeline/index-enrollment/handler.go

// Package indexenrollment publishes accepted enrollments to the search
// index used by the back-office review tooling. Document contents are
// never indexed, only the enrollment metadata.
package indexenrollment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"inscricao-saude/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
)

const StageName = "index-enrollment"

var ErrIndexWriteFailed = errors.New("INDEX_WRITE_FAILED")

type Handler struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewHandler(config *Config, client *elasticsearch.Client, log logger.Logger) *Handler {
	return &Handler{
		client: client,
		index:  config.Index,
		logger: log.WithFields(map[string]interface{}{"stage": StageName}),
	}
}

type enrollmentDocument struct {
	EnrollmentID int64  `json:"enrollment_id"`
	Protocol     string `json:"protocolo"`
	Nome         string `json:"nome"`
	CPF          string `json:"cpf"`
	Cargo        string `json:"cargo"`
	Localidade   string `json:"localidade,omitempty"`
	PCD          bool   `json:"pcd"`
	Indigena     bool   `json:"indigena"`
	CreatedAt    string `json:"criada_em"`
}

// Execute indexes one enrollment keyed by its protocol code, so a retry
// of the same enrollment overwrites rather than duplicates.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	doc := enrollmentDocument{
		EnrollmentID: input.EnrollmentID,
		Protocol:     input.Protocol,
		Nome:         input.Nome,
		CPF:          input.CPF,
		Cargo:        input.Cargo,
		Localidade:   input.Localidade,
		PCD:          input.PCD,
		Indigena:     input.Indigena,
		CreatedAt:    input.CreatedAt,
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal document: %v", ErrIndexWriteFailed, err)
	}

	res, err := h.client.Index(
		h.index,
		bytes.NewReader(body),
		h.client.Index.WithContext(ctx),
		h.client.Index.WithDocumentID(input.Protocol),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexWriteFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: index responded %s", ErrIndexWriteFailed, res.Status())
	}

	h.logger.Info("enrollment indexed", map[string]interface{}{
		"index":      h.index,
		"documentId": input.Protocol,
	})

	return &Output{
		DocumentID: input.Protocol,
		Index:      h.index,
	}, nil
}
