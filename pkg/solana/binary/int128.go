package binary

import (
	"math/big"

	"github.com/pkg/errors"
)

const Int128Size = 16

var (
	two64  = new(big.Int).Lsh(big.NewInt(1), 64)
	two127 = new(big.Int).Lsh(big.NewInt(1), 127)
	two128 = new(big.Int).Lsh(big.NewInt(1), 128)
)

// Uint128 is an unsigned 128-bit integer, serialized as Lo then Hi.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// NewUint128FromBig converts v, which must be in [0, 2^128).
func NewUint128FromBig(v *big.Int) (Uint128, error) {
	if v.Sign() < 0 {
		return Uint128{}, errors.New("negative value")
	}
	if v.BitLen() > 128 {
		return Uint128{}, errors.New("overflow uint128")
	}

	lo := new(big.Int).And(v, new(big.Int).Sub(two64, big.NewInt(1)))
	hi := new(big.Int).Rsh(v, 64)

	return Uint128{
		Lo: lo.Uint64(),
		Hi: hi.Uint64(),
	}, nil
}

func (u Uint128) Big() *big.Int {
	v := new(big.Int).SetUint64(u.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(u.Lo))
}

func (u Uint128) String() string {
	return u.Big().String()
}

// Int128 is a two's complement signed 128-bit integer. Hi carries the sign.
type Int128 struct {
	Lo uint64
	Hi int64
}

// NewInt128FromBig converts v, which must be in [-2^127, 2^127).
func NewInt128FromBig(v *big.Int) (Int128, error) {
	if v.Cmp(two127) >= 0 || v.Cmp(new(big.Int).Neg(two127)) < 0 {
		return Int128{}, errors.New("overflow int128")
	}

	twos := new(big.Int).Set(v)
	if twos.Sign() < 0 {
		twos.Add(twos, two128)
	}

	u, err := NewUint128FromBig(twos)
	if err != nil {
		return Int128{}, err
	}

	return Int128{
		Lo: u.Lo,
		Hi: int64(u.Hi),
	}, nil
}

func (i Int128) Big() *big.Int {
	v := big.NewInt(i.Hi)
	v.Mul(v, two64)
	return v.Add(v, new(big.Int).SetUint64(i.Lo))
}

func (i Int128) String() string {
	return i.Big().String()
}

func AppendUint128(dst []byte, v Uint128) []byte {
	dst = AppendUint64(dst, v.Lo)
	return AppendUint64(dst, v.Hi)
}

func AppendInt128(dst []byte, v Int128) []byte {
	dst = AppendUint64(dst, v.Lo)
	return AppendInt64(dst, v.Hi)
}

func GetUint128(src []byte, dst *Uint128, offset *int) error {
	if err := checkRemaining(src, *offset, Int128Size); err != nil {
		return err
	}

	cursor := *offset

	var v Uint128
	if err := GetUint64(src, &v.Lo, &cursor); err != nil {
		return err
	}
	if err := GetUint64(src, &v.Hi, &cursor); err != nil {
		return err
	}

	*dst = v
	*offset = cursor
	return nil
}

func GetInt128(src []byte, dst *Int128, offset *int) error {
	if err := checkRemaining(src, *offset, Int128Size); err != nil {
		return err
	}

	cursor := *offset

	var v Int128
	if err := GetUint64(src, &v.Lo, &cursor); err != nil {
		return err
	}
	if err := GetInt64(src, &v.Hi, &cursor); err != nil {
		return err
	}

	*dst = v
	*offset = cursor
	return nil
}
