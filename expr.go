package shparse

import (
	"strconv"
	"strings"
)

type bind int8

const (
	bindLowest bind = iota
	bindEq
	bindCmp
	bindAdd
	bindMul
)

var bindings = map[rune]bind{
	Eq:  bindEq,
	Ne:  bindEq,
	Lt:  bindCmp,
	Le:  bindCmp,
	Gt:  bindCmp,
	Ge:  bindCmp,
	Add: bindAdd,
	Sub: bindAdd,
	Mul: bindMul,
	Div: bindMul,
}

func bindPower(tok Token) bind {
	pow, ok := bindings[tok.Type]
	if !ok {
		return bindLowest
	}
	return pow
}

// parseArith parses a full arithmetic body. The caller has consumed the
// opening token; the matching closer is consumed here.
func (p *Parser) parseArith() (Expr, error) {
	expr, err := p.parseExpr(bindLowest)
	if err != nil {
		return nil, err
	}
	if p.curr.Type != EndMath {
		return nil, p.unexpected()
	}
	p.next()
	return expr, nil
}

func (p *Parser) parseExpr(pow bind) (Expr, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for pow < bindPower(p.curr) {
		op := p.curr.Type
		p.next()
		right, err := p.parseExpr(bindings[op])
		if err != nil {
			return nil, err
		}
		left = createBinary(op, left, right)
	}
	return left, nil
}

func (p *Parser) parseAtom() (Expr, error) {
	switch p.curr.Type {
	case Numeric:
		return p.parseNumber(false)
	case Sub:
		if p.peek.Type != Numeric {
			return nil, p.unexpected()
		}
		p.next()
		return p.parseNumber(true)
	case Variable:
		id := splitIdent(p.curr.Literal)
		p.next()
		return createVar(id), nil
	case BegMath:
		p.next()
		expr, err := p.parseExpr(bindLowest)
		if err != nil {
			return nil, err
		}
		if p.curr.Type != EndMath {
			return nil, p.unexpected()
		}
		p.next()
		return expr, nil
	default:
		return nil, p.unexpected()
	}
}

func (p *Parser) parseNumber(neg bool) (Expr, error) {
	n, err := strconv.ParseInt(p.curr.Literal, 10, 64)
	if err != nil {
		return nil, p.unexpected()
	}
	if neg {
		n = -n
	}
	p.next()
	return createNumber(n), nil
}

// splitIdent splits a scanned identifier into its name and its raw
// subscript text.
func splitIdent(str string) Ident {
	var id Ident
	if x := strings.IndexByte(str, lsquare); x >= 0 {
		id.Name = str[:x]
		id.Index = strings.TrimSuffix(str[x+1:], "]")
	} else {
		id.Name = str
	}
	return id
}
