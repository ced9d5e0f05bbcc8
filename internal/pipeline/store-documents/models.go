// internal/pipeline/store-documents/models.go
package storedocuments

import (
	"inscricao-saude/internal/catalog"
	"inscricao-saude/internal/intake"
)

type Input struct {
	Submission *intake.Submission
}

type Output struct {
	// Dir is the per-applicant directory the documents were written to.
	Dir string
	// Stored lists the slots whose files were written, in checklist order.
	Stored []catalog.Slot
	// Paths maps each stored slot to the path its file was written to.
	// Absent and failed slots have no entry.
	Paths map[catalog.Slot]string
	// Failed maps slots to the write error that prevented them, one
	// entry per slot that had content but could not be written.
	Failed map[catalog.Slot]error
}
