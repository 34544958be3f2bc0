//Plural rule condition AST and its evaluator

package plural

import (
	"math"
	"strconv"
	"strings"
)

//The rule attributes an Operand exposes to conditions. attrN is the only non-integer attribute
type attribute uint8

const (
	attrN attribute = iota
	attrI
	attrV
	attrW
	attrF
	attrT
	attrE
)

var attributeNames = [...]string{"n", "i", "v", "w", "f", "t", "e"}

//A condition is an executable predicate over an Operand.
//writeTo produces a canonical serialization: the basis for structural predicate identity
type condition interface {
	matches(op Operand) bool
	writeTo(sb *strings.Builder)
}

//alwaysMatch is the compiled form of an empty condition (CLDR “other” entries carry samples only)
type alwaysMatch struct{}

func (alwaysMatch) matches(Operand) bool { return true }
func (alwaysMatch) writeTo(sb *strings.Builder) {
	sb.WriteString("true")
}

//orCondition is true when any branch is true
type orCondition []condition

func (c orCondition) matches(op Operand) bool {
	for _, branch := range c {
		if branch.matches(op) {
			return true
		}
	}
	return false
}
func (c orCondition) writeTo(sb *strings.Builder) {
	for i, branch := range c {
		if i != 0 {
			sb.WriteString(" or ")
		}
		branch.writeTo(sb)
	}
}

//andCondition is true when all branches are true
type andCondition []condition

func (c andCondition) matches(op Operand) bool {
	for _, branch := range c {
		if !branch.matches(op) {
			return false
		}
	}
	return true
}
func (c andCondition) writeTo(sb *strings.Builder) {
	for i, branch := range c {
		if i != 0 {
			sb.WriteString(" and ")
		}
		branch.writeTo(sb)
	}
}

//valueRange denotes the integers in [low,high] inclusive. A single value has low==high
type valueRange struct {
	low, high uint64
}

//comparison is one relation: attribute (mod modulus)? (=|!=) value-or-range list.
//negated means “!=”: the negation of the whole disjunction, i.e. none of the listed values/ranges match
type comparison struct {
	attr    attribute
	modulus uint64 //0 when the relation has no “mod”
	negated bool
	ranges  []valueRange
}

func (c comparison) matches(op Operand) bool {
	if c.attr == attrN {
		return c.matchesFloat(op.N) != c.negated
	}
	return c.matchesInt(c.intValue(op)) != c.negated
}

func (c comparison) intValue(op Operand) uint64 {
	switch c.attr {
	case attrI:
		return op.I
	case attrV:
		return uint64(op.V)
	case attrW:
		return uint64(op.W)
	case attrF:
		return uint64(op.F)
	case attrT:
		return uint64(op.T)
	case attrE:
		return uint64(op.E)
	default:
		panic("Unreachable code")
	}
}

func (c comparison) matchesInt(val uint64) bool {
	if c.modulus != 0 {
		val %= c.modulus
	}
	for _, r := range c.ranges {
		if val >= r.low && val <= r.high {
			return true
		}
	}
	return false
}

//n can carry a fraction: equality is exact, and a range only ever matches integers
func (c comparison) matchesFloat(val float64) bool {
	if c.modulus != 0 {
		val = math.Mod(val, float64(c.modulus))
	}
	for _, r := range c.ranges {
		if r.low == r.high {
			if val == float64(r.low) {
				return true
			}
		} else if val >= float64(r.low) && val <= float64(r.high) && math.Trunc(val) == val {
			return true
		}
	}
	return false
}

func (c comparison) writeTo(sb *strings.Builder) {
	sb.WriteString(attributeNames[c.attr])
	if c.modulus != 0 {
		sb.WriteString(" % ")
		sb.WriteString(strconv.FormatUint(c.modulus, 10))
	}
	if c.negated {
		sb.WriteString(" != ")
	} else {
		sb.WriteString(" = ")
	}
	for i, r := range c.ranges {
		if i != 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(r.low, 10))
		if r.low != r.high {
			sb.WriteString("..")
			sb.WriteString(strconv.FormatUint(r.high, 10))
		}
	}
}

//Canonical text form of a condition (normalized whitespace and operators)
func conditionString(c condition) string {
	var sb strings.Builder
	c.writeTo(&sb)
	return sb.String()
}
