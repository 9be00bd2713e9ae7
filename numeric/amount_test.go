package numeric

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"0", "0", nil},
		{"1_000_000", "1000000", nil},
		{" 340282366920938463463374607431768211456 ", "340282366920938463463374607431768211456", nil},
		{"", "", ErrInvalidAmount},
		{"-5", "", ErrInvalidAmount},
		{"12ab", "", ErrInvalidAmount},
		// 2^256
		{"115792089237316195423570985008687907853269984665640564039457584007913129639936", "", ErrOverflow},
	}
	for _, test := range tests {
		got, err := ParseAmount(test.in)
		if test.wantErr != nil {
			assert.True(t, errors.Is(err, test.wantErr), "input %q: got %v", test.in, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, test.want, ToDecimal(got))
	}
}

func TestPercent(t *testing.T) {
	v, err := Percent(NewAmount(4001), 50)
	require.NoError(t, err)
	assert.Equal(t, uint64(2000), v.Uint64())

	v, err = Percent(NewAmount(4001), 0)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	_, err = Percent(NewAmount(1), 101)
	assert.True(t, errors.Is(err, ErrInvalidPercent))

	max := new(uint256.Int).SetAllOne()
	_, err = Percent(max, 2)
	assert.True(t, errors.Is(err, ErrOverflow))
}

func TestSplit(t *testing.T) {
	share, rem := Split(NewAmount(1003), 4)
	assert.Equal(t, uint64(250), share.Uint64())
	assert.Equal(t, uint64(3), rem.Uint64())

	share, rem = Split(NewAmount(7), 0)
	assert.True(t, share.IsZero())
	assert.Equal(t, uint64(7), rem.Uint64())
}

func TestSumOverflow(t *testing.T) {
	total, err := Sum(NewAmount(1), NewAmount(2), NewAmount(3))
	require.NoError(t, err)
	assert.Equal(t, uint64(6), total.Uint64())

	_, err = Sum(new(uint256.Int).SetAllOne(), NewAmount(1))
	assert.True(t, errors.Is(err, ErrOverflow))
}
