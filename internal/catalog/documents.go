package catalog

// Slot identifies one supporting-document upload in the checklist.
type Slot string

const (
	SlotRG              Slot = "rg"
	SlotCPF             Slot = "cpf"
	SlotResidencia      Slot = "residencia"
	SlotTituloEleitor   Slot = "titulo_eleitor"
	SlotCTPS            Slot = "ctps"
	SlotPISPASEP        Slot = "pis_pasep"
	SlotCurriculo       Slot = "curriculo"
	SlotAntecedentes    Slot = "antecedentes"
	SlotEscolaridade    Slot = "escolaridade"
	SlotDiplomaSup      Slot = "diploma_superior"
	SlotPosGraduacao    Slot = "pos_graduacao"
	SlotExperiencia     Slot = "experiencia"
	SlotQuitacaoMil     Slot = "quitacao_militar"
	SlotLaudoPCD        Slot = "laudo_pcd"
	SlotDeclaracaoFUNAI Slot = "declaracao_funai"
)

// PDFMimeType is the only accepted content type for uploaded documents.
const PDFMimeType = "application/pdf"

type slotInfo struct {
	label    string
	filename string
}

// Canonical output filenames are fixed catalog data; the Document Store
// always writes a slot under the same name regardless of the uploaded
// file's original name.
var slotCatalog = map[Slot]slotInfo{
	SlotRG:              {"RG (frente e verso)", "RG.pdf"},
	SlotCPF:             {"CPF", "CPF.pdf"},
	SlotResidencia:      {"Comprovante de residência", "Comprovante_Residencia.pdf"},
	SlotTituloEleitor:   {"Título de eleitor e quitação eleitoral", "Titulo_Eleitor_Quitacao.pdf"},
	SlotCTPS:            {"CTPS", "CTPS.pdf"},
	SlotPISPASEP:        {"Documento com nº PIS/PASEP", "PIS_PASEP.pdf"},
	SlotCurriculo:       {"Currículo comprobatório", "Curriculo_Comprovado.pdf"},
	SlotAntecedentes:    {"Atestados de antecedentes criminais", "Antecedentes_Criminais.pdf"},
	SlotEscolaridade:    {"Escolaridade exigida", "Escolaridade.pdf"},
	SlotDiplomaSup:      {"Diploma/Certificado de Curso Superior", "Diploma_Superior.pdf"},
	SlotPosGraduacao:    {"Pós-graduação na área", "Pos_Graduacao.pdf"},
	SlotExperiencia:     {"Comprovação de tempo de experiência", "Experiencia.pdf"},
	SlotQuitacaoMil:     {"Quitação militar", "Quitacao_Militar.pdf"},
	SlotLaudoPCD:        {"Laudo médico (CID-10)", "Laudo_PCD.pdf"},
	SlotDeclaracaoFUNAI: {"Declaração da FUNAI e/ou do Cacique", "Declaracao_FUNAI_Cacique.pdf"},
}

// AllSlots returns every slot in the checklist, in form order.
func AllSlots() []Slot {
	return []Slot{
		SlotRG, SlotCPF, SlotQuitacaoMil, SlotResidencia, SlotTituloEleitor,
		SlotCTPS, SlotPISPASEP, SlotCurriculo, SlotEscolaridade, SlotDiplomaSup,
		SlotPosGraduacao, SlotExperiencia, SlotLaudoPCD, SlotDeclaracaoFUNAI,
		SlotAntecedentes,
	}
}

// Label returns the human-readable name of a slot.
func (s Slot) Label() string {
	return slotCatalog[s].label
}

// Filename returns the fixed canonical output filename of a slot.
func (s Slot) Filename() string {
	return slotCatalog[s].filename
}

// Known reports whether s is part of the checklist.
func (s Slot) Known() bool {
	_, ok := slotCatalog[s]
	return ok
}
