package validatesubmission

import (
	"context"
	"sort"
	"testing"

	"inscricao-saude/internal/catalog"
	"inscricao-saude/internal/common/logger"
	"inscricao-saude/internal/intake"

	"github.com/stretchr/testify/assert"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(LoadConfig(), logger.NewTestLogger(t))
}

func pdfDoc() *intake.Document {
	return &intake.Document{Content: []byte("%PDF-1.4"), ContentType: catalog.PDFMimeType}
}

func completeSubmission(slots []catalog.Slot) *intake.Submission {
	sub := &intake.Submission{
		Nome:       "Maria da Silva",
		RG:         "12.345.678-9",
		CPF:        "123.456.789-01",
		Endereco:   "Rua das Flores, 100, Centro",
		Telefone:   "(73) 99999-0000",
		Email:      "maria@example.com",
		Cargo:      "Enfermeiro",
		Localidade: "Sede",
		Declara:    true,
		Autoriza:   true,
		Documentos: make(map[catalog.Slot]*intake.Document),
	}
	for _, slot := range slots {
		sub.Documentos[slot] = pdfDoc()
	}
	return sub
}

func TestExecute_ValidSubmission(t *testing.T) {
	required := catalog.Resolve(catalog.TierSuperior, false, false)
	input := &Input{
		Submission: completeSubmission(required),
		Required:   required,
		TierKnown:  true,
	}

	output, err := newHandler(t).Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.True(t, output.IsValid)
	assert.Empty(t, output.Errors)
}

func TestExecute_EmptySubmissionCollectsAllScalarErrors(t *testing.T) {
	required := catalog.Resolve(catalog.TierMedio, false, false)
	input := &Input{
		Submission: &intake.Submission{},
		Required:   required,
		TierKnown:  true,
	}

	output, err := newHandler(t).Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.False(t, output.IsValid)
	for _, expected := range []string{
		"Nome completo é obrigatório.",
		"CPF é obrigatório.",
		"RG é obrigatório.",
		"Endereço é obrigatório.",
		"Telefone é obrigatório.",
		"E-mail é obrigatório.",
		"Cargo é obrigatório.",
		"Declaração de veracidade é obrigatório.",
		"Autorização de uso dos dados é obrigatório.",
	} {
		assert.Contains(t, output.Errors, expected)
	}
}

func TestExecute_PlaceholderRoleRejected(t *testing.T) {
	required := catalog.Resolve(catalog.TierMedio, false, false)
	sub := completeSubmission(required)
	sub.Cargo = catalog.NoSelection

	output, err := newHandler(t).Execute(context.Background(), &Input{
		Submission: sub,
		Required:   required,
		TierKnown:  false,
	})

	assert.NoError(t, err)
	assert.False(t, output.IsValid)
	assert.Contains(t, output.Errors, "Cargo é obrigatório.")
	// The placeholder and the empty-role path produce the same message once.
	count := 0
	for _, m := range output.Errors {
		if m == "Cargo é obrigatório." {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExecute_CPFRequiresElevenDigits(t *testing.T) {
	required := catalog.Resolve(catalog.TierSuperior, false, false)
	sub := completeSubmission(required)
	sub.CPF = "123.456"

	output, err := newHandler(t).Execute(context.Background(), &Input{
		Submission: sub,
		Required:   required,
		TierKnown:  true,
	})

	assert.NoError(t, err)
	assert.False(t, output.IsValid)
	assert.Equal(t, []string{"CPF é obrigatório."}, output.Errors)
}

func TestExecute_MissingSuperiorDiploma(t *testing.T) {
	required := catalog.Resolve(catalog.TierSuperior, false, false)
	sub := completeSubmission(required)
	delete(sub.Documentos, catalog.SlotDiplomaSup)

	output, err := newHandler(t).Execute(context.Background(), &Input{
		Submission: sub,
		Required:   required,
		TierKnown:  true,
	})

	assert.NoError(t, err)
	assert.False(t, output.IsValid)
	assert.Contains(t, output.Errors,
		"Diploma/Certificado de Curso Superior é obrigatório para cargos de nível superior.")
}

func TestExecute_MissingConditionalDocuments(t *testing.T) {
	required := catalog.Resolve(catalog.TierTecnico, true, true)
	sub := completeSubmission(required)
	sub.PCD = true
	sub.Indigena = true
	delete(sub.Documentos, catalog.SlotLaudoPCD)
	delete(sub.Documentos, catalog.SlotDeclaracaoFUNAI)
	delete(sub.Documentos, catalog.SlotEscolaridade)

	output, err := newHandler(t).Execute(context.Background(), &Input{
		Submission: sub,
		Required:   required,
		TierKnown:  true,
	})

	assert.NoError(t, err)
	assert.False(t, output.IsValid)
	assert.Contains(t, output.Errors, "Laudo PCD obrigatório.")
	assert.Contains(t, output.Errors, "Declaração FUNAI/Cacique obrigatória.")
	assert.Contains(t, output.Errors, "Escolaridade exigida é obrigatória para este cargo.")
}

func TestExecute_NonPDFDocumentRejected(t *testing.T) {
	required := catalog.Resolve(catalog.TierMedio, false, false)
	sub := completeSubmission(required)
	sub.Documentos[catalog.SlotRG] = &intake.Document{
		Content:     []byte("GIF89a"),
		ContentType: "image/gif",
	}

	output, err := newHandler(t).Execute(context.Background(), &Input{
		Submission: sub,
		Required:   required,
		TierKnown:  true,
	})

	assert.NoError(t, err)
	assert.False(t, output.IsValid)
	assert.Contains(t, output.Errors, "RG (frente e verso): arquivo deve ser PDF.")
}

func TestExecute_MissingBaselineDocumentUsesGenericMessage(t *testing.T) {
	required := catalog.Resolve(catalog.TierFundamental, false, false)
	sub := completeSubmission(required)
	delete(sub.Documentos, catalog.SlotAntecedentes)

	output, err := newHandler(t).Execute(context.Background(), &Input{
		Submission: sub,
		Required:   required,
		TierKnown:  true,
	})

	assert.NoError(t, err)
	assert.False(t, output.IsValid)
	assert.Contains(t, output.Errors,
		catalog.SlotAntecedentes.Label()+": documento obrigatório ausente.")
}

func TestExecute_UnknownTierSkipsEducationSlots(t *testing.T) {
	// When the selected role maps to no tier the education requirement is
	// not enforced, only the baseline slots are.
	required := catalog.Resolve(catalog.TierMedio, false, false)
	sub := completeSubmission(required)
	sub.Cargo = "Cargo Inexistente"
	delete(sub.Documentos, catalog.SlotEscolaridade)

	output, err := newHandler(t).Execute(context.Background(), &Input{
		Submission: sub,
		Required:   required,
		TierKnown:  false,
	})

	assert.NoError(t, err)
	assert.True(t, output.IsValid)
}

func TestExecute_ErrorsAreSortedAndDeduplicated(t *testing.T) {
	required := catalog.Resolve(catalog.TierSuperior, true, false)
	input := &Input{
		Submission: &intake.Submission{},
		Required:   required,
		TierKnown:  true,
	}

	handler := newHandler(t)
	first, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	second, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)

	assert.True(t, sort.StringsAreSorted(first.Errors))
	assert.Equal(t, first.Errors, second.Errors)

	seen := make(map[string]int)
	for _, m := range first.Errors {
		seen[m]++
	}
	for m, n := range seen {
		assert.Equalf(t, 1, n, "message repeated: %s", m)
	}
}

func TestExecute_NilSubmission(t *testing.T) {
	output, err := newHandler(t).Execute(context.Background(), &Input{})

	assert.NoError(t, err)
	assert.False(t, output.IsValid)
	assert.NotEmpty(t, output.Errors)
}
