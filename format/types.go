package format

// ResetPolicy selects what the encoder does once the dictionary holds 1<<maxBits entries.
type ResetPolicy uint8

const (
	ResetOnFull      ResetPolicy = 0x1 // ResetOnFull emits CLEAR when a full dictionary would need a new entry.
	FreezeOnFull     ResetPolicy = 0x2 // FreezeOnFull stops learning and keeps using the frozen table.
	ResetOnRatioDrop ResetPolicy = 0x3 // ResetOnRatioDrop freezes, then emits CLEAR when the ratio stops improving.
)

func (p ResetPolicy) String() string {
	switch p {
	case ResetOnFull:
		return "Reset"
	case FreezeOnFull:
		return "Freeze"
	case ResetOnRatioDrop:
		return "Adaptive"
	default:
		return "Unknown"
	}
}

// IsValid reports whether p is one of the defined policies.
func (p ResetPolicy) IsValid() bool {
	switch p {
	case ResetOnFull, FreezeOnFull, ResetOnRatioDrop:
		return true
	default:
		return false
	}
}

// Adaptive reports whether the policy may emit CLEAR for reasons other than a full dictionary.
func (p ResetPolicy) Adaptive() bool {
	return p == ResetOnRatioDrop
}

// ParseResetPolicy maps a command-line name to a ResetPolicy.
//
// Accepted names are "reset", "freeze" and "adaptive" (case sensitive).
func ParseResetPolicy(name string) (ResetPolicy, bool) {
	switch name {
	case "reset":
		return ResetOnFull, true
	case "freeze":
		return FreezeOnFull, true
	case "adaptive":
		return ResetOnRatioDrop, true
	default:
		return 0, false
	}
}
