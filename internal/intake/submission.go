// Package intake defines the submission value handed to the pipeline by
// the presentation collaborator. A Submission is created once per form
// submission and is immutable after creation.
package intake

import (
	"time"

	"inscricao-saude/internal/catalog"
	"inscricao-saude/internal/normalize"
)

// Document is one uploaded file: transient binary content plus the
// declared content type. The buffer is released once the Document Store
// has written it or validation has rejected the submission.
type Document struct {
	Content     []byte
	ContentType string
}

// IsPDF reports whether the declared content type is the PDF MIME type.
func (d *Document) IsPDF() bool {
	return d != nil && d.ContentType == catalog.PDFMimeType
}

// Submission is the complete applicant input for one attempt.
type Submission struct {
	// Identity
	Nome           string
	DataNascimento time.Time
	RG             string
	CPF            string
	Endereco       string
	Telefone       string
	Email          string

	// Declarations
	PCD      bool
	Indigena bool

	// Role selection
	Cargo       string
	Localidade  string
	Experiencia bool

	// Consents
	Declara  bool
	Autoriza bool

	// Uploaded documents by slot. Absent slots may be missing from the
	// map or present with a nil value; both mean "not uploaded".
	Documentos map[catalog.Slot]*Document
}

// NormalizedCPF returns the digit-only canonical form of the CPF.
func (s *Submission) NormalizedCPF() string {
	return normalize.Digits(s.CPF)
}

// Documento returns the uploaded document for a slot, or nil.
func (s *Submission) Documento(slot catalog.Slot) *Document {
	if s.Documentos == nil {
		return nil
	}
	return s.Documentos[slot]
}

// HasRoleSelected reports whether a real role was chosen. The form
// placeholder counts as no selection.
func (s *Submission) HasRoleSelected() bool {
	return s.Cargo != "" && s.Cargo != catalog.NoSelection
}
