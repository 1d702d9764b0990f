package types

// Receipt records an instruction submitted to a program.
type Receipt struct {
	Signature   Signature  `json:"signature" yaml:"signature"`
	ProgramID   Pubkey     `json:"program_id" yaml:"program_id"`
	Instruction string     `json:"instruction" yaml:"instruction"`
	Cluster     string     `json:"cluster" yaml:"cluster"`
	Slot        uint64     `json:"slot" yaml:"slot"`
	Commitment  Commitment `json:"commitment" yaml:"commitment"`
	Logs        []string   `json:"logs,omitempty" yaml:"logs,omitempty"`
	Err         string     `json:"err,omitempty" yaml:"err,omitempty"`
	CreatedUTC  int64      `json:"created_utc" yaml:"created_utc"`
}
