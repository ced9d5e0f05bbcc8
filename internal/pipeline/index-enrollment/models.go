// internal/pipeline/index-enrollment/models.go
package indexenrollment

type Input struct {
	EnrollmentID int64
	Protocol     string
	Nome         string
	CPF          string
	Cargo        string
	Localidade   string
	PCD          bool
	Indigena     bool
	CreatedAt    string
}

type Output struct {
	DocumentID string
	Index      string
}
