// internal/pipeline/store-documents/handler.go
package storedocuments

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"inscricao-saude/internal/catalog"
	"inscricao-saude/internal/common/logger"

	"github.com/spf13/afero"
)

const StageName = "store-documents"

var ErrDocumentWriteFailed = errors.New("DOCUMENT_WRITE_FAILED")

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

type Handler struct {
	fs     afero.Fs
	root   string
	logger logger.Logger
}

func NewHandler(config *Config, fs afero.Fs, log logger.Logger) *Handler {
	return &Handler{
		fs:     fs,
		root:   config.Root,
		logger: log.WithFields(map[string]interface{}{"stage": StageName}),
	}
}

// Execute writes every uploaded document under the applicant's
// directory using the slot's canonical filename. Slots walk in fixed
// checklist order; a failed write is recorded and the remaining slots
// are still attempted, so one bad file never blocks the rest.
// The overall error is non-nil only when the directory itself could not
// be created or every attempted write failed.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	dir := filepath.Join(h.root, input.Submission.NormalizedCPF())
	if err := h.fs.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("%w: mkdir %s: %v", ErrDocumentWriteFailed, dir, err)
	}

	output := &Output{
		Dir:    dir,
		Paths:  make(map[catalog.Slot]string),
		Failed: make(map[catalog.Slot]error),
	}

	attempted := 0
	for _, slot := range catalog.AllSlots() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocumentWriteFailed, err)
		}
		doc := input.Submission.Documento(slot)
		if doc == nil {
			continue
		}
		attempted++
		path := filepath.Join(dir, slot.Filename())
		if err := afero.WriteFile(h.fs, path, doc.Content, filePerm); err != nil {
			output.Failed[slot] = err
			h.logger.WithError(err).Warn("document write failed", map[string]interface{}{
				"slot": string(slot),
				"path": path,
			})
			continue
		}
		output.Stored = append(output.Stored, slot)
		output.Paths[slot] = path
	}

	if attempted > 0 && len(output.Stored) == 0 {
		return nil, fmt.Errorf("%w: all %d document writes failed under %s",
			ErrDocumentWriteFailed, attempted, dir)
	}

	h.logger.Info("documents stored", map[string]interface{}{
		"dir":    dir,
		"stored": len(output.Stored),
		"failed": len(output.Failed),
	})

	return output, nil
}
