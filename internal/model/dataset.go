package model

// Dataset describes one analysis run: where rows come from and which chart to keep.
type Dataset struct {
	Name   string   `yaml:"name" json:"name" validate:"required"`
	Inputs []string `yaml:"inputs" json:"inputs" validate:"required,min=1"`

	// Chart restricts the analysis to rows of one chart/condition. Empty keeps all rows.
	Chart string `yaml:"chart" json:"chart,omitempty"`

	// Participants lists participants expected in the dataset. Any of them without
	// rows gets an empty trace instead of being left out.
	Participants []int `yaml:"participants" json:"participants,omitempty"`

	// Output is the report path. Empty writes to the default output directory.
	Output string `yaml:"output" json:"output,omitempty"`
	Format string `yaml:"format" json:"format,omitempty" validate:"omitempty,oneof=csv json"`
}

// RejectRule is an expression evaluated against every input row; matching rows are
// excluded from traces.
type RejectRule struct {
	RuleID int    `yaml:"id" json:"id"`
	Status string `yaml:"status" json:"status"`
	Expr   string `yaml:"expr" json:"expr"`
}

// IsActive reports whether the rule applies. Rules default to active.
func (r *RejectRule) IsActive() bool {
	return r.Status == "" || r.Status == "active"
}

// Profile is the optional YAML file listing reject rules and batch datasets.
type Profile struct {
	RejectRules []*RejectRule `yaml:"rejectRules"`
	Datasets    []*Dataset    `yaml:"datasets"`
}
