package catalog

// baselineSlots are mandatory for every submission regardless of role or
// declarations.
var baselineSlots = []Slot{
	SlotRG,
	SlotCPF,
	SlotResidencia,
	SlotTituloEleitor,
	SlotCTPS,
	SlotPISPASEP,
	SlotCurriculo,
	SlotAntecedentes,
}

// Resolve returns the exact set of required document slots for a
// submission: the fixed baseline, exactly one education-proof slot chosen
// by tier, plus the declaration-conditional slots. Pure and total.
// Quitação militar, pós-graduação and experiência are always optional.
func Resolve(tier Tier, pcd, indigena bool) []Slot {
	required := make([]Slot, 0, len(baselineSlots)+3)
	required = append(required, baselineSlots...)

	if tier == TierSuperior {
		required = append(required, SlotDiplomaSup)
	} else {
		required = append(required, SlotEscolaridade)
	}

	if pcd {
		required = append(required, SlotLaudoPCD)
	}
	if indigena {
		required = append(required, SlotDeclaracaoFUNAI)
	}

	return required
}
