// Package numeric holds the unsigned amount helpers used by reward math.
// All amounts are 256-bit unsigned integers, wide enough that pool sizes
// expressed in the smallest denomination never overflow during splitting.
package numeric

import (
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// PercentBase is the denominator used for percent parameters.
const PercentBase = 100

var (
	// ErrOverflow is returned when an amount computation does not fit in 256 bits.
	ErrOverflow = errors.New("amount overflow")
	// ErrInvalidPercent is returned for percent parameters above PercentBase.
	ErrInvalidPercent = errors.New("percent must be within [0, 100]")
	// ErrInvalidAmount is returned when a decimal amount cannot be parsed.
	ErrInvalidAmount = errors.New("invalid decimal amount")
)

// Zero returns a fresh zero amount.
func Zero() *uint256.Int {
	return new(uint256.Int)
}

// NewAmount returns an amount holding v.
func NewAmount(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

// ParseAmount parses a base-10 amount, underscores allowed as separators.
func ParseAmount(s string) (*uint256.Int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if s == "" {
		return nil, errors.Wrap(ErrInvalidAmount, "empty string")
	}
	b, ok := new(big.Int).SetString(s, 10)
	if !ok || b.Sign() < 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q", s)
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, errors.Wrapf(ErrOverflow, "%q", s)
	}
	return v, nil
}

// MustParseAmount is ParseAmount for static initialization. It panics on error.
func MustParseAmount(s string) *uint256.Int {
	v, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ToDecimal renders an amount in base 10.
func ToDecimal(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.ToBig().String()
}

// Add returns x+y, or ErrOverflow.
func Add(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, errors.Wrapf(ErrOverflow, "%s + %s", ToDecimal(x), ToDecimal(y))
	}
	return z, nil
}

// Sum adds all amounts, or returns ErrOverflow.
func Sum(amounts ...*uint256.Int) (*uint256.Int, error) {
	total := Zero()
	for _, a := range amounts {
		var err error
		if total, err = Add(total, a); err != nil {
			return nil, err
		}
	}
	return total, nil
}

// Percent returns floor(v * pct / PercentBase).
func Percent(v *uint256.Int, pct uint64) (*uint256.Int, error) {
	if pct > PercentBase {
		return nil, errors.Wrapf(ErrInvalidPercent, "got %d", pct)
	}
	z, overflow := new(uint256.Int).MulOverflow(v, uint256.NewInt(pct))
	if overflow {
		return nil, errors.Wrapf(ErrOverflow, "%s * %d%%", ToDecimal(v), pct)
	}
	return z.Div(z, uint256.NewInt(PercentBase)), nil
}

// Split divides pool into n equal parts. It returns the per-part amount and
// the undistributed remainder; n == 0 leaves the whole pool as remainder.
func Split(pool *uint256.Int, n uint64) (share, remainder *uint256.Int) {
	if n == 0 {
		return Zero(), pool.Clone()
	}
	d := uint256.NewInt(n)
	share = new(uint256.Int).Div(pool, d)
	remainder = new(uint256.Int).Mod(pool, d)
	return share, remainder
}
