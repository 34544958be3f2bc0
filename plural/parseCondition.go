//Parse CLDR plural rule conditions into executable predicates

package plural

import (
	"fmt"
	"strings"
)

/*
The grammar accepted here is the terse CLDR plural-rule syntax:

	condition     = and_condition ("or" and_condition)*
	and_condition = relation ("and" relation)*
	relation      = operand ("mod"|"%" number)? ("="|"!=") range_list
	range_list    = (number | number ".." number) ("," range_list)*
	operand       = "n"|"i"|"v"|"w"|"f"|"t"|"e"|"c"

A trailing “@integer”/“@decimal” marker introduces non-normative samples and is stripped before parsing. An empty condition compiles to the always-true predicate.
*/

type tokenKind uint8

const (
	tokAttribute tokenKind = iota
	tokNumber
	tokAnd
	tokOr
	tokMod
	tokEquals
	tokNotEquals
	tokComma
	tokRange
	tokEOF
)

type token struct {
	kind tokenKind
	attr attribute //Only for tokAttribute
	num  uint64    //Only for tokNumber
	pos  int
}

type conditionParser struct {
	src    string
	tokens []token
	index  int
}

//createCondition compiles one condition string (sample markers already stripped) into a predicate.
//Any string that does not fit the grammar is an error; the caller treats that as fatal
func createCondition(s string) (condition, error) {
	if strings.TrimSpace(s) == "" {
		return alwaysMatch{}, nil
	}

	var p conditionParser
	if err := p.tokenize(s); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, p.errorAt(p.peek(), "Expected “and”, “or”, or end of condition")
	}
	return cond, nil
}

func (p *conditionParser) tokenize(s string) error {
	p.src = s
	index, strLen := 0, len(s)
	for index < strLen {
		start := index
		ch := s[index]
		switch {
		case ch == ' ' || ch == '\t':
			index++
		case ch >= '0' && ch <= '9':
			const base10Shift, maxBeforeShift = 10, (1<<64 - 1) / 10
			num := uint64(0)
			for index < strLen && s[index] >= '0' && s[index] <= '9' {
				if num > maxBeforeShift {
					return fmt.Errorf("Number too large at position %d in “%s”", start, s)
				}
				num = num*base10Shift + uint64(s[index]-'0')
				index++
			}
			p.tokens = append(p.tokens, token{kind: tokNumber, num: num, pos: start})
		case ch == '=':
			p.tokens = append(p.tokens, token{kind: tokEquals, pos: start})
			index++
		case ch == '!':
			if index+1 >= strLen || s[index+1] != '=' {
				return fmt.Errorf("“!” must be followed by “=” at position %d in “%s”", start, s)
			}
			p.tokens = append(p.tokens, token{kind: tokNotEquals, pos: start})
			index += 2
		case ch == ',':
			p.tokens = append(p.tokens, token{kind: tokComma, pos: start})
			index++
		case ch == '.':
			if index+1 >= strLen || s[index+1] != '.' {
				return fmt.Errorf("“.” must be followed by “.” at position %d in “%s”", start, s)
			}
			p.tokens = append(p.tokens, token{kind: tokRange, pos: start})
			index += 2
		case ch == '%':
			p.tokens = append(p.tokens, token{kind: tokMod, pos: start})
			index++
		case ch >= 'a' && ch <= 'z':
			for index < strLen && s[index] >= 'a' && s[index] <= 'z' {
				index++
			}
			if tok, err := keywordToken(s[start:index], start); err != nil {
				return fmt.Errorf("%s in “%s”", err.Error(), s)
			} else {
				p.tokens = append(p.tokens, tok)
			}
		default:
			return fmt.Errorf("Unexpected character “%c” at position %d in “%s”", ch, start, s)
		}
	}
	p.tokens = append(p.tokens, token{kind: tokEOF, pos: strLen})
	return nil
}

func keywordToken(word string, pos int) (token, error) {
	switch word {
	case "and":
		return token{kind: tokAnd, pos: pos}, nil
	case "or":
		return token{kind: tokOr, pos: pos}, nil
	case "mod":
		return token{kind: tokMod, pos: pos}, nil
	case "n", "i", "v", "w", "f", "t", "e":
		return token{kind: tokAttribute, attr: attribute(strings.Index("nivwfte", word)), pos: pos}, nil
	case "c": //CLDR alias for the suppressed exponent
		return token{kind: tokAttribute, attr: attrE, pos: pos}, nil
	default:
		return token{}, fmt.Errorf("Unknown word “%s” at position %d", word, pos)
	}
}

func (p *conditionParser) peek() token {
	return p.tokens[p.index]
}

func (p *conditionParser) next() token {
	t := p.tokens[p.index]
	if t.kind != tokEOF {
		p.index++
	}
	return t
}

func (p *conditionParser) errorAt(t token, msg string) error {
	return fmt.Errorf("%s at position %d in “%s”", msg, t.pos, p.src)
}

//condition = and_condition ("or" and_condition)*
func (p *conditionParser) parseCondition() (condition, error) {
	var branches orCondition
	for {
		branch, err := p.parseAndCondition()
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
		if p.peek().kind != tokOr {
			break
		}
		p.next()
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return branches, nil
}

//and_condition = relation ("and" relation)*
func (p *conditionParser) parseAndCondition() (condition, error) {
	var branches andCondition
	for {
		branch, err := p.parseRelation()
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
		if p.peek().kind != tokAnd {
			break
		}
		p.next()
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return branches, nil
}

//relation = operand ("mod"|"%" number)? ("="|"!=") range_list
func (p *conditionParser) parseRelation() (condition, error) {
	cmp := comparison{}

	if t := p.next(); t.kind != tokAttribute {
		return nil, p.errorAt(t, "Expected one of the operands n i v w f t e")
	} else {
		cmp.attr = t.attr
	}

	if p.peek().kind == tokMod {
		p.next()
		t := p.next()
		if t.kind != tokNumber {
			return nil, p.errorAt(t, "“mod” must be followed by a number")
		}
		if t.num == 0 {
			return nil, p.errorAt(t, "“mod 0” is not a valid modulus")
		}
		cmp.modulus = t.num
	}

	switch t := p.next(); t.kind {
	case tokEquals:
	case tokNotEquals:
		cmp.negated = true
	default:
		return nil, p.errorAt(t, "Expected “=” or “!=”")
	}

	ranges, err := p.parseRangeList()
	if err != nil {
		return nil, err
	}
	cmp.ranges = ranges
	return cmp, nil
}

//range_list = (number | number ".." number) ("," range_list)*
func (p *conditionParser) parseRangeList() ([]valueRange, error) {
	var ranges []valueRange
	for {
		t := p.next()
		if t.kind != tokNumber {
			return nil, p.errorAt(t, "Expected a number")
		}
		r := valueRange{low: t.num, high: t.num}
		if p.peek().kind == tokRange {
			p.next()
			t2 := p.next()
			if t2.kind != tokNumber {
				return nil, p.errorAt(t2, "Expected a number after “..”")
			}
			if t2.num < t.num {
				return nil, p.errorAt(t2, "Range bounds out of order")
			}
			r.high = t2.num
		}
		ranges = append(ranges, r)
		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	return ranges, nil
}

//stripSamples removes the non-normative “@integer”/“@decimal” sample marker and everything after it
func stripSamples(rule string) string {
	if idx := strings.IndexByte(rule, '@'); idx >= 0 {
		rule = rule[:idx]
	}
	return strings.TrimSpace(rule)
}
