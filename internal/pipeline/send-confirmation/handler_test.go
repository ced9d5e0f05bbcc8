// internal/pipeline/send-confirmation/handler_test.go
package sendconfirmation

import (
	"context"
	"errors"
	"testing"

	"inscricao-saude/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
)

type mockSES struct {
	err   error
	calls []*ses.SendEmailInput
}

func (m *mockSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls = append(m.calls, params)
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{}, nil
}

type mockSNS struct {
	err   error
	calls []*sns.PublishInput
}

func (m *mockSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls = append(m.calls, params)
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{}, nil
}

func testInput() *Input {
	return &Input{
		Nome:     "Maria da Silva",
		Email:    "maria@example.com",
		Telefone: "+5573999990000",
		Cargo:    "Enfermeiro",
		Protocol: "ILH-Saude-12345678901-20260315094530",
	}
}

func TestExecute_EmailAndSMS(t *testing.T) {
	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	handler := NewHandlerWithClients(&Config{
		EmailEnabled: true,
		SMSEnabled:   true,
		FromEmail:    "saude@ilheus.ba.gov.br",
	}, sesMock, snsMock, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), testInput())

	assert.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.NotEmpty(t, output.NotificationID)
	assert.Len(t, sesMock.calls, 1)
	assert.Len(t, snsMock.calls, 1)

	body := *sesMock.calls[0].Message.Body.Text.Data
	assert.Contains(t, body, "Maria da Silva")
	assert.Contains(t, body, "Enfermeiro")
	assert.Contains(t, body, "ILH-Saude-12345678901-20260315094530")
	assert.NotContains(t, body, "{{")

	assert.Contains(t, *snsMock.calls[0].Message, "ILH-Saude-12345678901-20260315094530")
}

func TestExecute_AllChannelsDisabled(t *testing.T) {
	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	handler := NewHandlerWithClients(&Config{}, sesMock, snsMock, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), testInput())

	assert.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
	assert.Empty(t, sesMock.calls)
	assert.Empty(t, snsMock.calls)
}

func TestExecute_EmailFailureReportedNotReturned(t *testing.T) {
	sesMock := &mockSES{err: errors.New("throttled")}
	handler := NewHandlerWithClients(&Config{
		EmailEnabled: true,
	}, sesMock, &mockSNS{}, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), testInput())

	assert.NoError(t, err)
	assert.Equal(t, StatusFailed, output.Status)
}

func TestExecute_MissingEmailSkipsChannel(t *testing.T) {
	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	handler := NewHandlerWithClients(&Config{
		EmailEnabled: true,
		SMSEnabled:   true,
	}, sesMock, snsMock, logger.NewTestLogger(t))

	input := testInput()
	input.Email = ""

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Empty(t, sesMock.calls)
	assert.Len(t, snsMock.calls, 1)
}
