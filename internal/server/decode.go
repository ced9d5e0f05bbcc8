// internal/server/decode.go
package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"inscricao-saude/internal/catalog"
	"inscricao-saude/internal/intake"

	"github.com/xeipuuv/gojsonschema"
)

const birthDateLayout = "2006-01-02"

// formFileFields maps the form's file input names to checklist slots.
var formFileFields = map[string]catalog.Slot{
	"doc_rg":           catalog.SlotRG,
	"doc_cpf":          catalog.SlotCPF,
	"doc_militar":      catalog.SlotQuitacaoMil,
	"doc_resid":        catalog.SlotResidencia,
	"doc_titulo":       catalog.SlotTituloEleitor,
	"doc_ctps":         catalog.SlotCTPS,
	"doc_pis":          catalog.SlotPISPASEP,
	"doc_curriculo":    catalog.SlotCurriculo,
	"doc_escolaridade": catalog.SlotEscolaridade,
	"doc_diploma_sup":  catalog.SlotDiplomaSup,
	"doc_pos":          catalog.SlotPosGraduacao,
	"doc_exper":        catalog.SlotExperiencia,
	"doc_laudo_pcd":    catalog.SlotLaudoPCD,
	"doc_funai":        catalog.SlotDeclaracaoFUNAI,
	"doc_antecedentes": catalog.SlotAntecedentes,
}

// submissionSchema validates the JSON request shape before any field is
// interpreted. Scalar business rules stay in the validation stage; this
// only rejects structurally broken payloads.
const submissionSchema = `{
	"type": "object",
	"required": ["nome", "cpf", "cargo"],
	"properties": {
		"nome":            {"type": "string"},
		"data_nascimento": {"type": "string"},
		"rg":              {"type": "string"},
		"cpf":             {"type": "string"},
		"endereco":        {"type": "string"},
		"telefone":        {"type": "string"},
		"email":           {"type": "string"},
		"pcd":             {"type": "boolean"},
		"indigena":        {"type": "boolean"},
		"cargo":           {"type": "string"},
		"localidade":      {"type": "string"},
		"experiencia":     {"type": "boolean"},
		"declara":         {"type": "boolean"},
		"autoriza":        {"type": "boolean"},
		"documentos": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"required": ["conteudo"],
				"properties": {
					"conteudo":     {"type": "string"},
					"content_type": {"type": "string"}
				}
			}
		}
	}
}`

var compiledSchema = gojsonschema.NewStringLoader(submissionSchema)

type jsonDocument struct {
	Conteudo    string `json:"conteudo"`
	ContentType string `json:"content_type"`
}

type jsonSubmission struct {
	Nome           string                  `json:"nome"`
	DataNascimento string                  `json:"data_nascimento"`
	RG             string                  `json:"rg"`
	CPF            string                  `json:"cpf"`
	Endereco       string                  `json:"endereco"`
	Telefone       string                  `json:"telefone"`
	Email          string                  `json:"email"`
	PCD            bool                    `json:"pcd"`
	Indigena       bool                    `json:"indigena"`
	Cargo          string                  `json:"cargo"`
	Localidade     string                  `json:"localidade"`
	Experiencia    bool                    `json:"experiencia"`
	Declara        bool                    `json:"declara"`
	Autoriza       bool                    `json:"autoriza"`
	Documentos     map[string]jsonDocument `json:"documentos"`
}

// decodeJSON reads an application/json submission. Document contents
// arrive base64-encoded under their slot names.
func decodeJSON(r *http.Request) (*intake.Submission, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	result, err := gojsonschema.Validate(compiledSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		descs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			descs[i] = desc.String()
		}
		return nil, fmt.Errorf("invalid payload: %s", strings.Join(descs, "; "))
	}

	var req jsonSubmission
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	sub := &intake.Submission{
		Nome:        req.Nome,
		RG:          req.RG,
		CPF:         req.CPF,
		Endereco:    req.Endereco,
		Telefone:    req.Telefone,
		Email:       req.Email,
		PCD:         req.PCD,
		Indigena:    req.Indigena,
		Cargo:       req.Cargo,
		Localidade:  req.Localidade,
		Experiencia: req.Experiencia,
		Declara:     req.Declara,
		Autoriza:    req.Autoriza,
		Documentos:  make(map[catalog.Slot]*intake.Document),
	}

	if req.DataNascimento != "" {
		if parsed, err := time.Parse(birthDateLayout, req.DataNascimento); err == nil {
			sub.DataNascimento = parsed
		}
	}

	for name, doc := range req.Documentos {
		slot := catalog.Slot(name)
		if !slot.Known() {
			return nil, fmt.Errorf("unknown document slot %q", name)
		}
		content, err := base64.StdEncoding.DecodeString(doc.Conteudo)
		if err != nil {
			return nil, fmt.Errorf("document %s: invalid base64: %w", name, err)
		}
		contentType := doc.ContentType
		if contentType == "" {
			contentType = catalog.PDFMimeType
		}
		sub.Documentos[slot] = &intake.Document{
			Content:     content,
			ContentType: contentType,
		}
	}

	return sub, nil
}

// decodeMultipart reads the browser form. Boolean fields carry the
// Portuguese radio values ("Sim"/"Não"); anything else counts as no.
func decodeMultipart(r *http.Request, maxUpload int64) (*intake.Submission, error) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	sub := &intake.Submission{
		Nome:        r.FormValue("nome"),
		RG:          r.FormValue("rg"),
		CPF:         r.FormValue("cpf"),
		Endereco:    r.FormValue("endereco"),
		Telefone:    r.FormValue("telefone"),
		Email:       r.FormValue("email"),
		PCD:         parseSimNao(r.FormValue("pcd")),
		Indigena:    parseSimNao(r.FormValue("indigena")),
		Cargo:       r.FormValue("cargo"),
		Localidade:  r.FormValue("localidade"),
		Experiencia: parseSimNao(r.FormValue("experiencia")),
		Declara:     parseSimNao(r.FormValue("declara")),
		Autoriza:    parseSimNao(r.FormValue("autoriza")),
		Documentos:  make(map[catalog.Slot]*intake.Document),
	}

	if v := r.FormValue("data_nascimento"); v != "" {
		if parsed, err := time.Parse(birthDateLayout, v); err == nil {
			sub.DataNascimento = parsed
		}
	}

	for field, slot := range formFileFields {
		file, header, err := r.FormFile(field)
		if err != nil {
			continue // field absent
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("read upload %s: %w", field, err)
		}
		sub.Documentos[slot] = &intake.Document{
			Content:     content,
			ContentType: header.Header.Get("Content-Type"),
		}
	}

	return sub, nil
}

func parseSimNao(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "sim", "true", "on", "1":
		return true
	default:
		return false
	}
}
