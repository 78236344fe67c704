package redelegate

// AccountType is the ordinal stored in the first byte of an account
// discriminator.
type AccountType uint8

const (
	AccountTypeUnknown AccountType = iota
	AccountTypeRedelegateState
)

func (t AccountType) String() string {
	switch t {
	case AccountTypeRedelegateState:
		return "redelegate_state"
	}
	return "unknown"
}

// Discriminator returns the account type ordinal followed by zero bytes.
func (t AccountType) Discriminator() []byte {
	discriminator := make([]byte, AccountDiscriminatorSize)
	discriminator[0] = byte(t)
	return discriminator
}
