package config

// Kind is the token kind used by rule sets loaded from configuration.
// The empty kind marks text that no rule matched.
type Kind string

// KindInvalid is the kind given to unmatched text.
const KindInvalid Kind = ""

// String returns the kind name, or "invalid" for KindInvalid.
func (k Kind) String() string {
	if k == KindInvalid {
		return "invalid"
	}
	return string(k)
}

// IsInvalid returns true for the unmatched-text kind.
func (k Kind) IsInvalid() bool {
	return k == KindInvalid
}
