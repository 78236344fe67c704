package solana

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/redelegate-client/pkg/solana/binary"
	"github.com/code-payments/redelegate-client/pkg/solana/shortvec"
)

// messageVersionPrefix marks versioned messages, which are not supported.
const messageVersionPrefix = 0x80

func (t Transaction) Marshal() []byte {
	b, _ := shortvec.AppendLen(nil, len(t.Signatures))
	for _, s := range t.Signatures {
		b = append(b, s[:]...)
	}
	return append(b, t.Message.Marshal()...)
}

func (t *Transaction) Unmarshal(b []byte) error {
	var offset, sigLen int
	if err := shortvec.GetLen(b, &sigLen, &offset); err != nil {
		return errors.Wrap(err, "failed to read signature length")
	}

	signatures := make([]Signature, sigLen)
	for i := range signatures {
		if err := binary.GetFixedBytes(b, signatures[i][:], &offset); err != nil {
			return errors.Wrapf(err, "failed to read signature at %d", i)
		}
	}

	var m Message
	if err := m.Unmarshal(b[offset:]); err != nil {
		return err
	}

	t.Signatures = signatures
	t.Message = m
	return nil
}

// Marshal encodes the message. Lengths beyond the shortvec range cannot be
// produced by NewTransaction and are not checked here.
func (m Message) Marshal() []byte {
	b := []byte{
		m.Header.NumSignatures,
		m.Header.NumReadonlySigned,
		m.Header.NumReadOnly,
	}

	b, _ = shortvec.AppendLen(b, len(m.Accounts))
	for _, a := range m.Accounts {
		b = binary.AppendKey32(b, a)
	}

	b = append(b, m.RecentBlockhash[:]...)

	b, _ = shortvec.AppendLen(b, len(m.Instructions))
	for _, i := range m.Instructions {
		b = append(b, i.ProgramIndex)

		b, _ = shortvec.AppendLen(b, len(i.Accounts))
		b = append(b, i.Accounts...)

		b, _ = shortvec.AppendLen(b, len(i.Data))
		b = append(b, i.Data...)
	}

	return b
}

func (m *Message) Unmarshal(b []byte) error {
	if len(b) == 0 {
		return errors.Wrap(binary.ErrTruncatedInput, "empty message")
	}
	if b[0]&messageVersionPrefix != 0 {
		return errors.New("versioned messages not supported")
	}

	var decoded Message
	var offset int

	for _, field := range []*byte{
		&decoded.Header.NumSignatures,
		&decoded.Header.NumReadonlySigned,
		&decoded.Header.NumReadOnly,
	} {
		if err := binary.GetUint8(b, field, &offset); err != nil {
			return errors.Wrap(err, "failed to read header")
		}
	}

	var accountLen int
	if err := shortvec.GetLen(b, &accountLen, &offset); err != nil {
		return errors.Wrap(err, "failed to read account len")
	}
	decoded.Accounts = make([]ed25519.PublicKey, accountLen)
	for i := range decoded.Accounts {
		if err := binary.GetKey32(b, &decoded.Accounts[i], &offset); err != nil {
			return errors.Wrapf(err, "failed to read account at index %d", i)
		}
	}

	if err := binary.GetFixedBytes(b, decoded.RecentBlockhash[:], &offset); err != nil {
		return errors.Wrap(err, "failed to read recent block hash")
	}

	var instructionLen int
	if err := shortvec.GetLen(b, &instructionLen, &offset); err != nil {
		return errors.Wrap(err, "failed to read instruction len")
	}
	decoded.Instructions = make([]CompiledInstruction, instructionLen)
	for i := range decoded.Instructions {
		c, err := getCompiledInstruction(b, &offset, len(decoded.Accounts))
		if err != nil {
			return errors.Wrapf(err, "failed to read instruction[%d]", i)
		}
		decoded.Instructions[i] = c
	}

	*m = decoded
	return nil
}

func getCompiledInstruction(b []byte, offset *int, numAccounts int) (c CompiledInstruction, err error) {
	if err = binary.GetUint8(b, &c.ProgramIndex, offset); err != nil {
		return c, errors.Wrap(err, "program index")
	}
	if int(c.ProgramIndex) >= numAccounts {
		return c, errors.Errorf("program index out of range: %d", c.ProgramIndex)
	}

	var accountLen int
	if err = shortvec.GetLen(b, &accountLen, offset); err != nil {
		return c, errors.Wrap(err, "account len")
	}
	c.Accounts = make([]byte, accountLen)
	if err = binary.GetFixedBytes(b, c.Accounts, offset); err != nil {
		return c, errors.Wrap(err, "accounts")
	}
	for _, index := range c.Accounts {
		if int(index) >= numAccounts {
			return c, errors.Errorf("account index out of range: %d", index)
		}
	}

	var dataLen int
	if err = shortvec.GetLen(b, &dataLen, offset); err != nil {
		return c, errors.Wrap(err, "data len")
	}
	c.Data = make([]byte, dataLen)
	if err = binary.GetFixedBytes(b, c.Data, offset); err != nil {
		return c, errors.Wrap(err, "data")
	}

	return c, nil
}
