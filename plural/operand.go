//Extract CLDR rule operands from numerals

package plural

import (
	"errors"
	"math"
	"strconv"

	"github.com/govalues/decimal"
)

// Operand is the CLDR-defined attribute tuple a plural rule condition is evaluated against.
//
// Using text or a decimal instead of a native int64/float64 preserves precision (trailing zeros and visible fraction digits), which can change plural selection in some locales.
//
// Operands are created per query and never mutated.
type Operand struct {
	N float64 //Absolute value of the input (integer and fraction)
	I uint64  //Integer digits of N. Saturates at the maximum value instead of wrapping
	V int32   //Count of visible fraction digits, with trailing zeros
	W int32   //Count of visible fraction digits, without trailing zeros
	F int32   //Visible fraction digits as an integer, with trailing zeros
	T int32   //Visible fraction digits as an integer, without trailing zeros
	E int     //Suppressed exponent for compact forms (“2.3 million” has E=6)
}

// MaxSuppressedExponent is the largest suppressed exponent accepted by the compact-form constructors
const MaxSuppressedExponent = 21

//F and T must fit a signed 32 bit integer, so only the first 9 visible fraction digits are read
const maxFractionDigits = 9

// ErrExponentRange is returned when a suppressed exponent is outside [0,MaxSuppressedExponent]
var ErrExponentRange = errors.New("Suppressed exponent out of range [0,21]")

// OperandFromString creates an Operand from a numeral in text form.
//
// ok is false when the text cannot be parsed as a decimal numeral.
func OperandFromString(s string) (val Operand, ok bool) {
	if len(s) == 0 {
		return Operand{}, false
	}
	d, err := decimal.Parse(s)
	if err != nil {
		//A well-formed numeral can still exceed the exact decimal range: best-effort with empty fraction fields, never absence
		if !isPlainNumeral(s) {
			return Operand{}, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return Operand{}, false
		}
		n := math.Abs(f)
		return Operand{N: n, I: saturatingUint64(n)}, true
	}
	op, err := operandFromDecimal(d, 0)
	if err != nil {
		return Operand{}, false
	}
	return op, true
}

//Digits with an optional leading sign and at most one decimal point
func isPlainNumeral(s string) bool {
	if len(s) != 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	digits, points := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.':
			points++
		default:
			return false
		}
	}
	return digits != 0 && points <= 1
}

// OperandFromDecimal creates an Operand from an arbitrary-precision decimal
func OperandFromDecimal(d decimal.Decimal) Operand {
	op, _ := operandFromDecimal(d, 0)
	return op
}

// OperandFromCompactDecimal creates an Operand for a compact-form number.
//
// The suppressed exponent must be explicitly denoted: a decimal 2.3 with suppressedExponent 6 is “2.3 million”. A decimal 2300000 with suppressedExponent 6 is “2300000 million”.
func OperandFromCompactDecimal(d decimal.Decimal, suppressedExponent int) (Operand, error) {
	return operandFromDecimal(d, suppressedExponent)
}

// OperandFromInt64 creates an Operand from a native integer. Native inputs cannot express precision, so the visible-fraction attributes are always zero
func OperandFromInt64(input int64) Operand {
	abs := saturatingAbs(input)
	return Operand{N: float64(abs), I: abs}
}

// OperandFromCompactInt64 creates an Operand for a compact-form native integer
func OperandFromCompactInt64(input int64, suppressedExponent int) (Operand, error) {
	d, err := decimal.New(input, 0)
	if err != nil {
		//Cannot happen for scale 0, but keep the failure explicit
		return Operand{}, err
	}
	op, err := operandFromDecimal(d, suppressedExponent)
	if err != nil {
		return Operand{}, err
	}
	return op.withoutFraction(), nil
}

// OperandFromFloat64 creates an Operand from a native float. Native inputs cannot express precision, so the visible-fraction attributes are always zero.
//
// The input must be finite; callers selecting on arbitrary floats should handle NaN and infinities themselves.
func OperandFromFloat64(input float64) Operand {
	op, err := OperandFromCompactFloat64(input, 0)
	if err != nil {
		return Operand{}
	}
	return op
}

// OperandFromCompactFloat64 creates an Operand for a compact-form native float
func OperandFromCompactFloat64(input float64, suppressedExponent int) (Operand, error) {
	if suppressedExponent < 0 || suppressedExponent > MaxSuppressedExponent {
		return Operand{}, ErrExponentRange
	}
	d, err := decimal.NewFromFloat64(input)
	if err != nil {
		//Magnitude beyond the exact decimal range: best-effort
		n := math.Abs(input) * math.Pow10(suppressedExponent)
		if n > math.MaxFloat64 {
			n = math.MaxFloat64
		}
		return Operand{N: n, I: saturatingUint64(n), E: suppressedExponent}, nil
	}
	op, err := operandFromDecimal(d, suppressedExponent)
	if err != nil {
		return Operand{}, err
	}
	return op.withoutFraction(), nil
}

//All Operand constructors end up here
func operandFromDecimal(d decimal.Decimal, suppressedExponent int) (Operand, error) {
	if suppressedExponent < 0 || suppressedExponent > MaxSuppressedExponent {
		return Operand{}, ErrExponentRange
	}

	//Scale the exact value left by the suppressed exponent
	abs := d.Abs()
	if suppressedExponent > 0 {
		if shifted, err := movePointRight(abs, suppressedExponent); err != nil {
			//Too large for exact decimal arithmetic. N may lose precision for very large values; it participates in matching but is never displayed
			n, _ := abs.Float64()
			n *= math.Pow10(suppressedExponent)
			if n > math.MaxFloat64 {
				n = math.MaxFloat64
			}
			return Operand{N: n, I: saturatingUint64(n), E: suppressedExponent}, nil
		} else {
			abs = shifted
		}
	}

	op := Operand{E: suppressedExponent}
	op.N, _ = abs.Float64()

	//A zero decimal scale means no visible fraction digits at all
	if abs.Scale() == 0 {
		if whole, _, ok := abs.Int64(0); ok {
			op.I = uint64(whole)
		} else {
			op.I = math.MaxUint64
		}
		return op, nil
	}

	//Visible fraction digit counts, with (V) and without (W) trailing zeros
	op.V = int32(abs.Scale())
	op.W = int32(abs.MinScale())

	//Fraction digits as integers. Digits past the cap are truncated, never rounded
	scaled := abs
	if scaled.Scale() > maxFractionDigits {
		scaled = scaled.Trunc(maxFractionDigits)
	}
	if whole, frac, ok := scaled.Int64(scaled.Scale()); ok {
		op.I = uint64(whole)
		op.F = int32(frac)
		op.T = stripTrailingZeros(op.F)
	} else {
		//Integer part exceeds the int64 range: saturate and forfeit the fraction digits
		op.I = math.MaxUint64
	}
	return op, nil
}

//Zero out the visible-fraction attributes (native inputs cannot express precision)
func (op Operand) withoutFraction() Operand {
	op.V, op.W, op.F, op.T = 0, 0, 0, 0
	return op
}

//Scale left by 10^e, reducing the decimal scale first so trailing zeros survive the shift (1.50 shifted by 1 is 15.0, not 15)
func movePointRight(d decimal.Decimal, e int) (decimal.Decimal, error) {
	targetScale := d.Scale() - e
	if targetScale < 0 {
		targetScale = 0
	}
	for e > 0 {
		step := e
		if step > 18 {
			step = 18
		}
		p, err := decimal.New(pow10int64(step), 0)
		if err != nil {
			return decimal.Decimal{}, err
		}
		if d, err = d.Mul(p); err != nil {
			return decimal.Decimal{}, err
		}
		e -= step
	}
	return d.Trim(targetScale), nil
}

func pow10int64(e int) int64 {
	ret := int64(1)
	for ; e > 0; e-- {
		ret *= 10
	}
	return ret
}

func stripTrailingZeros(f int32) int32 {
	for f != 0 && f%10 == 0 {
		f /= 10
	}
	return f
}

func saturatingAbs(v int64) uint64 {
	if v >= 0 {
		return uint64(v)
	}
	if v == math.MinInt64 {
		return uint64(math.MaxInt64) + 1
	}
	return uint64(-v)
}

func saturatingUint64(f float64) uint64 {
	if f >= math.MaxUint64 {
		return math.MaxUint64
	}
	if f <= 0 || math.IsNaN(f) {
		return 0
	}
	return uint64(f)
}
