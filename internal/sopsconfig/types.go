package sopsconfig

// FileName is the name of the SOPS configuration file at the project root.
const FileName = ".sops.yaml"

// Config represents a .sops.yaml file with the opsops reference field.
type Config struct {
	CreationRules   []CreationRule `yaml:"creation_rules"`
	OnePasswordItem string         `yaml:"onepassworditem"`

	// Extra keeps top-level keys opsops does not model so that writing the
	// file back does not drop them.
	Extra map[string]any `yaml:",inline"`
}

// CreationRule selects which keys encrypt which files.
type CreationRule struct {
	PathRegex string     `yaml:"path_regex,omitempty"`
	Age       string     `yaml:"age,omitempty"`
	KeyGroups []KeyGroup `yaml:"key_groups,omitempty"`

	Extra map[string]any `yaml:",inline"`
}

// KeyGroup is one entry of a rule's key_groups.
type KeyGroup struct {
	Age []string `yaml:"age,omitempty"`

	Extra map[string]any `yaml:",inline"`
}

// MatchKind tells where a public key was found in the rules.
type MatchKind int

const (
	NoMatch MatchKind = iota
	// DirectMatch is a rule's own age field.
	DirectMatch
	// GroupMatch is a key inside one of a rule's key_groups.
	GroupMatch
)

// Match describes the first rule holding a given public key.
type Match struct {
	Kind      MatchKind
	RuleIndex int
	Key       string
}
