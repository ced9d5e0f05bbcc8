// internal/pipeline/validate-submission/handler.go
package validatesubmission

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"inscricao-saude/internal/catalog"
	"inscricao-saude/internal/common/logger"
	"inscricao-saude/internal/intake"
	"inscricao-saude/internal/normalize"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	StageName = "validate-submission"

	// CPF must normalize to exactly this many digits.
	cpfLength = 11
)

type Handler struct {
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		logger: log.WithFields(map[string]interface{}{"stage": StageName}),
	}
}

// Execute runs every rule and accumulates messages; there is no
// short-circuit. The final list is deduplicated and sorted so repeated
// runs over the same submission produce the identical list.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	var messages []string

	if input.Submission == nil {
		messages = append(messages, "Inscrição é obrigatória.")
		return &Output{IsValid: false, Errors: dedupSort(messages)}, nil
	}

	messages = append(messages, h.scalarErrors(input.Submission)...)
	messages = append(messages, h.documentErrors(input.Submission, input.Required, input.TierKnown)...)

	messages = dedupSort(messages)
	isValid := len(messages) == 0

	h.logger.Info("validation completed", map[string]interface{}{
		"isValid":    isValid,
		"errorCount": len(messages),
	})

	return &Output{IsValid: isValid, Errors: messages}, nil
}

// scalarErrors evaluates the declarative field rules. Each entry pairs a
// value with its rules; adding a field is a one-line change.
func (h *Handler) scalarErrors(sub *intake.Submission) []string {
	checks := []struct {
		value interface{}
		rules []validation.Rule
	}{
		{strings.TrimSpace(sub.Nome), []validation.Rule{validation.Required.Error("Nome completo é obrigatório.")}},
		{sub.CPF, []validation.Rule{validCPF("CPF é obrigatório.")}},
		{strings.TrimSpace(sub.RG), []validation.Rule{validation.Required.Error("RG é obrigatório.")}},
		{strings.TrimSpace(sub.Endereco), []validation.Rule{validation.Required.Error("Endereço é obrigatório.")}},
		{strings.TrimSpace(sub.Telefone), []validation.Rule{validation.Required.Error("Telefone é obrigatório.")}},
		{strings.TrimSpace(sub.Email), []validation.Rule{validation.Required.Error("E-mail é obrigatório.")}},
		{sub.Cargo, []validation.Rule{
			validation.Required.Error("Cargo é obrigatório."),
			validation.NotIn(catalog.NoSelection).Error("Cargo é obrigatório."),
		}},
		{sub.Declara, []validation.Rule{validation.Required.Error("Declaração de veracidade é obrigatório.")}},
		{sub.Autoriza, []validation.Rule{validation.Required.Error("Autorização de uso dos dados é obrigatório.")}},
	}

	var messages []string
	for _, check := range checks {
		if err := validation.Validate(check.value, check.rules...); err != nil {
			messages = append(messages, err.Error())
		}
	}
	return messages
}

// validCPF accepts any formatting but requires exactly 11 digits after
// normalization.
func validCPF(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		raw, _ := value.(string)
		if len(normalize.Digits(raw)) != cpfLength {
			return fmt.Errorf("%s", message)
		}
		return nil
	})
}

func (h *Handler) documentErrors(sub *intake.Submission, required []catalog.Slot, tierKnown bool) []string {
	var messages []string
	for _, slot := range required {
		if isEducationSlot(slot) && !tierKnown {
			continue
		}
		doc := sub.Documento(slot)
		switch {
		case doc == nil:
			messages = append(messages, requiredDocMessage(slot))
		case !doc.IsPDF():
			messages = append(messages, fmt.Sprintf("%s: arquivo deve ser PDF.", slot.Label()))
		}
	}
	return messages
}

func isEducationSlot(slot catalog.Slot) bool {
	return slot == catalog.SlotDiplomaSup || slot == catalog.SlotEscolaridade
}

// requiredDocMessage keeps the form's original wording for the
// tier- and declaration-conditional slots.
func requiredDocMessage(slot catalog.Slot) string {
	switch slot {
	case catalog.SlotDiplomaSup:
		return "Diploma/Certificado de Curso Superior é obrigatório para cargos de nível superior."
	case catalog.SlotEscolaridade:
		return "Escolaridade exigida é obrigatória para este cargo."
	case catalog.SlotLaudoPCD:
		return "Laudo PCD obrigatório."
	case catalog.SlotDeclaracaoFUNAI:
		return "Declaração FUNAI/Cacique obrigatória."
	default:
		return fmt.Sprintf("%s: documento obrigatório ausente.", slot.Label())
	}
}

func dedupSort(messages []string) []string {
	seen := make(map[string]struct{}, len(messages))
	out := make([]string, 0, len(messages))
	for _, m := range messages {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
