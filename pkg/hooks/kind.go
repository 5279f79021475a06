package hooks

// HookKind identifies the type of hook call for order validation.
type HookKind uint8

const (
	KindUnknown HookKind = iota
	KindState
	KindEffect
)

// String returns a human-readable name for the hook kind.
func (k HookKind) String() string {
	switch k {
	case KindState:
		return "State"
	case KindEffect:
		return "Effect"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k HookKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *HookKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "State":
		*k = KindState
	case "Effect":
		*k = KindEffect
	default:
		*k = KindUnknown
	}
	return nil
}
