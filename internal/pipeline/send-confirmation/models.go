// internal/pipeline/send-confirmation/models.go
package sendconfirmation

const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

type Input struct {
	Nome     string
	Email    string
	Telefone string
	Cargo    string
	Protocol string
}

type Output struct {
	NotificationID string
	Status         string
	SentAt         string
}
