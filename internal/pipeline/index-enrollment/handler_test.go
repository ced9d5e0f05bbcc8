// internal/pipeline/index-enrollment/handler_test.go
package indexenrollment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inscricao-saude/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
)

func testInput() *Input {
	return &Input{
		EnrollmentID: 42,
		Protocol:     "ILH-Saude-12345678901-20260315094530",
		Nome:         "Maria da Silva",
		CPF:          "12345678901",
		Cargo:        "Enfermeiro",
		Localidade:   "Sede",
		CreatedAt:    "2026-03-15T09:45:30Z",
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{server.URL},
	})
	assert.NoError(t, err)
	return client
}

func TestExecute_IndexesByProtocol(t *testing.T) {
	var gotPath string
	var gotDoc map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotDoc)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	handler := NewHandler(LoadConfig("inscricoes"), client, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), testInput())

	assert.NoError(t, err)
	assert.Equal(t, "inscricoes", output.Index)
	assert.Equal(t, "ILH-Saude-12345678901-20260315094530", output.DocumentID)
	assert.Equal(t, "/inscricoes/_doc/ILH-Saude-12345678901-20260315094530", gotPath)
	assert.Equal(t, "Maria da Silva", gotDoc["nome"])
	assert.Equal(t, "12345678901", gotDoc["cpf"])
	assert.Equal(t, float64(42), gotDoc["enrollment_id"])
}

func TestExecute_ServerErrorReturned(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"unavailable"}`))
	})

	handler := NewHandler(LoadConfig(""), client, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), testInput())

	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrIndexWriteFailed)
}

func TestExecute_ConnectionRefused(t *testing.T) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://127.0.0.1:1"},
	})
	assert.NoError(t, err)

	handler := NewHandler(LoadConfig(""), client, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), testInput())

	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrIndexWriteFailed)
}
