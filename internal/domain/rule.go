package domain

type RuleMode string

const (
	RuleModeAll      RuleMode = "all"
	RuleModeKeywords RuleMode = "keywords"
)

// LegacyMenuRule aproxima una categoría del menú viejo con palabras clave.
// Es configuración: no sale del CSV.
type LegacyMenuRule struct {
	Title    string   `json:"title" mapstructure:"title" validate:"required"`
	Mode     RuleMode `json:"mode,omitempty" mapstructure:"mode" validate:"omitempty,oneof=all keywords"`
	Include  []string `json:"include,omitempty" mapstructure:"include"`
	Exclude  []string `json:"exclude,omitempty" mapstructure:"exclude"`
	Fallback []string `json:"fallback,omitempty" mapstructure:"fallback"`
}

func (r LegacyMenuRule) MatchesAll() bool { return r.Mode == RuleModeAll }
