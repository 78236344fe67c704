package redelegate

import (
	"fmt"

	"github.com/code-payments/redelegate-client/pkg/solana/binary"
)

const MetaSize = (8 + // rent_exempt_reserve
	AuthorizedSize + // authorized
	LockupSize) // lockup

type Meta struct {
	RentExemptReserve uint64
	Authorized        Authorized
	Lockup            Lockup
}

func (m Meta) Equal(other Meta) bool {
	return m.RentExemptReserve == other.RentExemptReserve &&
		m.Authorized.Equal(other.Authorized) &&
		m.Lockup.Equal(other.Lockup)
}

func (m Meta) Clone() Meta {
	return Meta{
		RentExemptReserve: m.RentExemptReserve,
		Authorized:        m.Authorized.Clone(),
		Lockup:            m.Lockup.Clone(),
	}
}

func (m Meta) String() string {
	return fmt.Sprintf(
		"Meta{rent_exempt_reserve=%d,authorized=%s,lockup=%s}",
		m.RentExemptReserve,
		m.Authorized.String(),
		m.Lockup.String(),
	)
}

func appendMeta(dst []byte, v Meta) []byte {
	dst = binary.AppendUint64(dst, v.RentExemptReserve)
	dst = appendAuthorized(dst, v.Authorized)
	return appendLockup(dst, v.Lockup)
}

func getMeta(src []byte, dst *Meta, offset *int) error {
	cursor := *offset

	var v Meta
	if err := binary.GetUint64(src, &v.RentExemptReserve, &cursor); err != nil {
		return err
	}
	if err := getAuthorized(src, &v.Authorized, &cursor); err != nil {
		return err
	}
	if err := getLockup(src, &v.Lockup, &cursor); err != nil {
		return err
	}

	*dst = v
	*offset = cursor
	return nil
}
