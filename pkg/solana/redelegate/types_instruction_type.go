package redelegate

// InstructionType is the ordinal stored in the instruction discriminator.
// Only InitializeState and UpdateState are dispatched by the deployed
// entrypoint; the remaining ordinals extend that enum in order.
type InstructionType uint8

const (
	InstructionTypeInitializeState InstructionType = iota
	InstructionTypeUpdateState
	InstructionTypeStartRedelegation
	InstructionTypeCompleteRedelegation
	InstructionTypeSplit
	InstructionTypeAuthorizeChecked
	InstructionTypeSetLockupChecked
	instructionTypeCount
)

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeInitializeState:
		return "initialize_state"
	case InstructionTypeUpdateState:
		return "update_state"
	case InstructionTypeStartRedelegation:
		return "start_redelegation"
	case InstructionTypeCompleteRedelegation:
		return "complete_redelegation"
	case InstructionTypeSplit:
		return "split"
	case InstructionTypeAuthorizeChecked:
		return "authorize_checked"
	case InstructionTypeSetLockupChecked:
		return "set_lockup_checked"
	}
	return "unknown"
}

func appendInstructionType(dst []byte, v InstructionType) []byte {
	return appendOrdinal(dst, uint32(v), InstructionDiscriminatorSize)
}

func getInstructionType(src []byte, dst *InstructionType, offset *int) error {
	var ordinal uint32
	if err := getEnum(src, &ordinal, offset, InstructionDiscriminatorSize, "InstructionType", uint32(instructionTypeCount)); err != nil {
		return err
	}
	*dst = InstructionType(ordinal)
	return nil
}
