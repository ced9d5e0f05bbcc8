// internal/pipeline/create-enrollment-record/models.go
package createenrollmentrecord

import "inscricao-saude/internal/intake"

type Input struct {
	Submission *intake.Submission
}

type Output struct {
	EnrollmentID int64
	CreatedAt    string
}
