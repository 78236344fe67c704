package redelegate

import (
	"bytes"
)

// Account is an account owned by the program.
type Account interface {
	Type() AccountType
	Marshal() []byte
	Unmarshal(data []byte) error
	String() string
}

var accountRegistry = map[AccountType]func() Account{
	AccountTypeRedelegateState: func() Account { return &RedelegateStateAccount{} },
}

// UnmarshalAccount decodes data as an account of the given type.
func UnmarshalAccount(accountType AccountType, data []byte) (Account, error) {
	ctor, ok := accountRegistry[accountType]
	if !ok {
		return nil, &UnknownVariantError{Type: "AccountType", Ordinal: uint32(accountType)}
	}

	account := ctor()
	if err := account.Unmarshal(data); err != nil {
		return nil, err
	}
	return account, nil
}

// UnmarshalAnyAccount decodes data as whichever account type its
// discriminator names.
func UnmarshalAnyAccount(data []byte) (Account, error) {
	if len(data) < AccountDiscriminatorSize {
		return nil, &BufferTooSmallError{Expected: AccountDiscriminatorSize, Actual: len(data)}
	}

	for accountType := range accountRegistry {
		if bytes.Equal(data[:AccountDiscriminatorSize], accountType.Discriminator()) {
			return UnmarshalAccount(accountType, data)
		}
	}

	return nil, &WrongAccountTypeError{Found: copyDiscriminator(data)}
}

// getAccountDiscriminator checks the discriminator of accountType at the
// start of data.
func getAccountDiscriminator(data []byte, accountType AccountType, offset *int) error {
	if len(data) < AccountDiscriminatorSize {
		return &BufferTooSmallError{Expected: AccountDiscriminatorSize, Actual: len(data)}
	}

	expected := accountType.Discriminator()
	if !bytes.Equal(data[:AccountDiscriminatorSize], expected) {
		return &WrongAccountTypeError{Expected: expected, Found: copyDiscriminator(data)}
	}

	*offset = AccountDiscriminatorSize
	return nil
}

func checkAccountFullyConsumed(data []byte, offset int, allocatedSize int) error {
	if offset == len(data) {
		return nil
	}
	if allocatedSize > offset && len(data) == allocatedSize {
		return nil
	}
	return &TrailingBytesError{Remaining: len(data) - offset}
}

func copyDiscriminator(data []byte) []byte {
	return append([]byte(nil), data[:AccountDiscriminatorSize]...)
}
