package redelegate

// State is the stage of a redelegation.
type State uint8

const (
	StateInitialized State = iota
	StateRedelegating
	StateCompleted
	stateCount
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRedelegating:
		return "redelegating"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

func appendState(dst []byte, v State) []byte {
	return appendOrdinal(dst, uint32(v), EnumOrdinalSize)
}

func getState(src []byte, dst *State, offset *int) error {
	var ordinal uint32
	if err := getEnum(src, &ordinal, offset, EnumOrdinalSize, "State", uint32(stateCount)); err != nil {
		return err
	}
	*dst = State(ordinal)
	return nil
}
