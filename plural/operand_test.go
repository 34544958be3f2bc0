package plural_test

import (
	"math"
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dakusan/goplural/plural"
)

func TestOperandFromString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		n     float64
		i     uint64
		v, w  int32
		f, t  int32
	}{
		{"2", 2, 2, 0, 0, 0, 0},
		{"0", 0, 0, 0, 0, 0, 0},
		{"1.5", 1.5, 1, 1, 1, 5, 5},
		{"1.50", 1.5, 1, 2, 1, 50, 5},
		{"1.00", 1, 1, 2, 0, 0, 0},
		{"0.5", 0.5, 0, 1, 1, 5, 5},
		{"-1.50", 1.5, 1, 2, 1, 50, 5},
		{"1.03", 1.03, 1, 2, 2, 3, 3},
		{"1.230", 1.23, 1, 3, 2, 230, 23},
		{"100.0", 100, 100, 1, 0, 0, 0},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			op, ok := plural.OperandFromString(tc.input)
			require.True(t, ok)
			require.Equal(t, tc.n, op.N)
			require.Equal(t, tc.i, op.I)
			require.Equal(t, tc.v, op.V)
			require.Equal(t, tc.w, op.W)
			require.Equal(t, tc.f, op.F)
			require.Equal(t, tc.t, op.T)
			require.Equal(t, 0, op.E)
		})
	}

	t.Run("rejects invalid numerals", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{"", "abc", "1.2.3", "--1", "1e5", "NaN", "Inf"} {
			_, ok := plural.OperandFromString(input)
			require.False(t, ok, "input %q", input)
		}
	})

	t.Run("magnitudes beyond exact decimal precision saturate", func(t *testing.T) {
		t.Parallel()

		op, ok := plural.OperandFromString("99999999999999999999")
		require.True(t, ok)
		require.Equal(t, uint64(math.MaxUint64), op.I)
		require.Equal(t, 1e20, op.N)
		require.Zero(t, op.V)
		require.Zero(t, op.F)

		op, ok = plural.OperandFromString("123456789012345678901234")
		require.True(t, ok)
		require.Equal(t, uint64(math.MaxUint64), op.I)
		require.Equal(t, 1.23456789012345678901234e23, op.N)

		//Still within uint64 range, just past the exact 19 digits
		op, ok = plural.OperandFromString("18000000000000000000")
		require.True(t, ok)
		require.Equal(t, uint64(1.8e19), op.I)
	})
}

func TestOperandFromNativeTypes(t *testing.T) {
	t.Parallel()

	t.Run("int64 has no visible fraction", func(t *testing.T) {
		t.Parallel()

		op := plural.OperandFromInt64(-3)
		require.Equal(t, float64(3), op.N)
		require.Equal(t, uint64(3), op.I)
		require.Zero(t, op.V)
		require.Zero(t, op.F)
	})

	t.Run("float64 has no visible fraction", func(t *testing.T) {
		t.Parallel()

		op := plural.OperandFromFloat64(-1.5)
		require.Equal(t, 1.5, op.N)
		require.Equal(t, uint64(1), op.I)
		require.Zero(t, op.V)
		require.Zero(t, op.W)
		require.Zero(t, op.F)
		require.Zero(t, op.T)
	})

	t.Run("min int64 saturates instead of wrapping", func(t *testing.T) {
		t.Parallel()

		op := plural.OperandFromInt64(math.MinInt64)
		require.Equal(t, uint64(math.MaxInt64)+1, op.I)
	})
}

func TestOperandFromCompact(t *testing.T) {
	t.Parallel()

	t.Run("decimal scaled by the suppressed exponent", func(t *testing.T) {
		t.Parallel()

		op, err := plural.OperandFromCompactDecimal(decimal.MustParse("2.3"), 6)
		require.NoError(t, err)
		require.Equal(t, 2300000.0, op.N)
		require.Equal(t, uint64(2300000), op.I)
		require.Zero(t, op.V)
		require.Equal(t, 6, op.E)
	})

	t.Run("trailing zeros survive the shift", func(t *testing.T) {
		t.Parallel()

		//1.50 shifted by 1 is 15.0, not 15
		op, err := plural.OperandFromCompactDecimal(decimal.MustParse("1.50"), 1)
		require.NoError(t, err)
		require.Equal(t, 15.0, op.N)
		require.Equal(t, uint64(15), op.I)
		require.Equal(t, int32(1), op.V)
		require.Zero(t, op.W)
		require.Zero(t, op.F)
		require.Equal(t, 1, op.E)
	})

	t.Run("fraction digits that remain after the shift", func(t *testing.T) {
		t.Parallel()

		op, err := plural.OperandFromCompactDecimal(decimal.MustParse("1.0000001"), 6)
		require.NoError(t, err)
		require.Equal(t, uint64(1000000), op.I)
		require.Equal(t, int32(1), op.V)
		require.Equal(t, int32(1), op.F)
		require.Equal(t, 6, op.E)
	})

	t.Run("exponent bounds", func(t *testing.T) {
		t.Parallel()

		_, err := plural.OperandFromCompactInt64(1, -1)
		require.ErrorIs(t, err, plural.ErrExponentRange)
		_, err = plural.OperandFromCompactInt64(1, plural.MaxSuppressedExponent+1)
		require.ErrorIs(t, err, plural.ErrExponentRange)

		op, err := plural.OperandFromCompactInt64(1, plural.MaxSuppressedExponent)
		require.NoError(t, err)
		require.Equal(t, plural.MaxSuppressedExponent, op.E)
	})

	t.Run("compact int64 has no visible fraction", func(t *testing.T) {
		t.Parallel()

		op, err := plural.OperandFromCompactInt64(2, 3)
		require.NoError(t, err)
		require.Equal(t, uint64(2000), op.I)
		require.Equal(t, 2000.0, op.N)
		require.Zero(t, op.V)
		require.Equal(t, 3, op.E)
	})
}
