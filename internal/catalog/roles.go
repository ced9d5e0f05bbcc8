// Package catalog holds the fixed hiring-process catalog: the role→tier
// classification and the supporting-document checklist. The catalog is
// design-time data; it never changes per submission.
package catalog

import (
	"fmt"

	stderrors "inscricao-saude/internal/common/errors"
)

// Tier classifies a role by required education level.
type Tier string

const (
	TierSuperior    Tier = "superior"
	TierTecnico     Tier = "tecnico"
	TierMedio       Tier = "medio"
	TierFundamental Tier = "fundamental"
)

// NoSelection is the form placeholder for "no role chosen". It is not a
// member of any tier.
const NoSelection = "— Selecione —"

var rolesSuperior = []string{
	"Enfermeiro Generalista", "Enfermeiro Emergencista", "Enfermeiro Saúde Mental", "Psicólogo",
	"Biomédico (30h)", "Biomédico (40h)", "Médico Veterinário", "Nutricionista", "Assistente Social",
	"Fisioterapeuta", "Educador Físico", "Pedagogo", "Terapeuta Ocupacional", "Fonoaudiólogo",
	"Farmacêutico", "Engenheiro Civil", "Gerente de Unidade",
}

var rolesTecnico = []string{
	"Técnico de Enfermagem", "Técnico em Análise Clínica", "Técnico de Saúde Bucal",
	"Técnico em Radiologia",
}

var rolesMedio = []string{
	"TARM", "Auxiliar Administrativo", "Auxiliar Veterinário", "Artesão Oficineiro",
	"Intérprete de Libras", "Condutor de Ambulância", "Condutor de Motolância",
	"Rádio Operador (TARM)", "Auxiliar de Farmácia", "Almoxarife",
}

var rolesFundamental = []string{
	"Auxiliar de Serviços Gerais", "Motorista", "Vaqueiro",
}

// Catalog is the resolved role→tier mapping, built once at process start.
type Catalog struct {
	tiers map[string]Tier
}

// New builds the catalog and verifies its invariants: tier lists are
// pairwise disjoint and the placeholder belongs to none of them. A
// violation is a programmer error surfaced at startup, never at
// submission time.
func New() (*Catalog, error) {
	tiers := make(map[string]Tier)

	add := func(roles []string, tier Tier) error {
		for _, role := range roles {
			if role == NoSelection {
				return stderrors.NewCatalogInvariantError(
					fmt.Sprintf("placeholder %q listed in tier %s", NoSelection, tier))
			}
			if existing, ok := tiers[role]; ok {
				return stderrors.NewCatalogInvariantError(
					fmt.Sprintf("role %q appears in tiers %s and %s", role, existing, tier))
			}
			tiers[role] = tier
		}
		return nil
	}

	for _, group := range []struct {
		roles []string
		tier  Tier
	}{
		{rolesSuperior, TierSuperior},
		{rolesTecnico, TierTecnico},
		{rolesMedio, TierMedio},
		{rolesFundamental, TierFundamental},
	} {
		if err := add(group.roles, group.tier); err != nil {
			return nil, err
		}
	}

	return &Catalog{tiers: tiers}, nil
}

// TierOf returns the tier of a role name. The placeholder and unknown
// role names report ok=false.
func (c *Catalog) TierOf(role string) (Tier, bool) {
	tier, ok := c.tiers[role]
	return tier, ok
}

// Roles returns every valid role name, ungrouped. Useful for the
// presentation collaborator to render the selector.
func (c *Catalog) Roles() []string {
	out := make([]string, 0, len(c.tiers))
	out = append(out, rolesSuperior...)
	out = append(out, rolesTecnico...)
	out = append(out, rolesMedio...)
	out = append(out, rolesFundamental...)
	return out
}
