// internal/pipeline/send-confirmation/handler.go
package sendconfirmation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inscricao-saude/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"
)

const (
	StageName = "send-confirmation"
)

var (
	ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")
)

// Interfaces for mocking the AWS clients in tests.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

const (
	emailSubject = "Inscrição recebida — Processo Seletivo Saúde Ilhéus"

	emailBody = "Olá {{nome}},\n\n" +
		"Sua inscrição para o cargo de {{cargo}} foi recebida com sucesso.\n" +
		"Número de protocolo: {{protocolo}}\n\n" +
		"Guarde este número para acompanhar o andamento do processo.\n\n" +
		"Secretaria Municipal de Saúde de Ilhéus"

	smsBody = "Ilheus Saude: inscricao recebida. Protocolo {{protocolo}}."
)

type Handler struct {
	config    *Config
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(config.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"stage": StageName}),
		sesClient: ses.NewFromConfig(awsCfg),
		snsClient: sns.NewFromConfig(awsCfg),
	}, nil
}

// NewHandlerWithClients wires explicit SES/SNS implementations; tests
// use it to inject mocks.
func NewHandlerWithClients(config *Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"stage": StageName}),
		sesClient: sesClient,
		snsClient: snsClient,
	}
}

// Execute sends the confirmation over every enabled channel. A channel
// failure is reported in the output status, not as an error: the
// enrollment is already accepted by the time this stage runs and must
// not be rolled back over a notification problem.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	data := map[string]interface{}{
		"nome":      input.Nome,
		"cargo":     input.Cargo,
		"protocolo": input.Protocol,
	}

	sentAt := time.Now().UTC().Format(time.RFC3339)
	notificationID := uuid.New().String()

	emailSent := false
	smsSent := false

	if h.config.EmailEnabled && input.Email != "" {
		subject := renderTemplate(emailSubject, data)
		body := renderTemplate(emailBody, data)
		if err := h.sendEmail(ctx, input.Email, subject, body); err != nil {
			h.logger.Error("email send failed", map[string]interface{}{
				"error": err,
			})
			return &Output{NotificationID: notificationID, Status: StatusFailed, SentAt: sentAt}, nil
		}
		emailSent = true
	}

	if h.config.SMSEnabled && input.Telefone != "" {
		if err := h.sendSMS(ctx, input.Telefone, renderTemplate(smsBody, data)); err != nil {
			h.logger.Error("SMS send failed", map[string]interface{}{
				"error": err,
			})
			return &Output{NotificationID: notificationID, Status: StatusFailed, SentAt: sentAt}, nil
		}
		smsSent = true
	}

	status := StatusDisabled
	if emailSent || smsSent {
		status = StatusSent
	}

	h.logger.Info("confirmation processed", map[string]interface{}{
		"status":    status,
		"emailSent": emailSent,
		"smsSent":   smsSent,
	})

	return &Output{
		NotificationID: notificationID,
		Status:         status,
		SentAt:         sentAt,
	}, nil
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}

// renderTemplate substitutes {{key}} placeholders; unknown placeholders
// are stripped rather than left in the message.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl

	for k, v := range data {
		placeholder := "{{" + k + "}}"
		value := ""
		if s, ok := v.(string); ok {
			value = s
		} else if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}

	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}

	return result
}
