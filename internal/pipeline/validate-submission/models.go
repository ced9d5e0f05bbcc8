// internal/pipeline/validate-submission/models.go
package validatesubmission

import (
	"inscricao-saude/internal/catalog"
	"inscricao-saude/internal/intake"
)

type Input struct {
	Submission *intake.Submission
	// Required is the resolved requirement set for this submission.
	Required []catalog.Slot
	// TierKnown reports whether the chosen role mapped to a tier. When
	// false the education-proof slots in Required are not enforced (the
	// missing role itself is already reported).
	TierKnown bool
}

type Output struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}
