package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

// Uint128 is an unsigned 128 bit integer used for token amounts and nonces.
// Arithmetic runs on uint256 and is checked against the 128 bit ceiling.
type Uint128 uint256.Int

var maxUint128 = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))

func NewUint128(v uint64) Uint128 {
	return Uint128(*uint256.NewInt(v))
}

// MaxUint128 returns 2^128 - 1.
func MaxUint128() Uint128 {
	return Uint128(*maxUint128)
}

// ParseUint128 parses a base 10 string. Values above 2^128 - 1 are rejected.
func ParseUint128(s string) (Uint128, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Uint128{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if v.Gt(maxUint128) {
		return Uint128{}, fmt.Errorf("invalid amount %q: does not fit in 128 bits", s)
	}
	return Uint128(*v), nil
}

func (u Uint128) big() *uint256.Int {
	v := uint256.Int(u)
	return &v
}

// CheckedAdd returns u + o, false on overflow.
func (u Uint128) CheckedAdd(o Uint128) (Uint128, bool) {
	sum, overflow := new(uint256.Int).AddOverflow(u.big(), o.big())
	if overflow || sum.Gt(maxUint128) {
		return Uint128{}, false
	}
	return Uint128(*sum), true
}

// CheckedSub returns u - o, false on underflow.
func (u Uint128) CheckedSub(o Uint128) (Uint128, bool) {
	diff, underflow := new(uint256.Int).SubOverflow(u.big(), o.big())
	if underflow {
		return Uint128{}, false
	}
	return Uint128(*diff), true
}

func (u Uint128) Cmp(o Uint128) int {
	return u.big().Cmp(o.big())
}

func (u Uint128) IsZero() bool {
	return u.big().IsZero()
}

func (u Uint128) String() string {
	return u.big().Dec()
}

// Bytes returns the 16 byte big endian encoding.
func (u Uint128) Bytes() [16]byte {
	full := u.big().Bytes32()
	var out [16]byte
	copy(out[:], full[16:])
	return out
}

// Amounts travel as decimal strings because JSON numbers lose precision above 2^53.
func (u Uint128) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *Uint128) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("amount must be a decimal string")
	}
	v, err := ParseUint128(s)
	if err != nil {
		return err
	}
	*u = v
	return nil
}
