package parser

import (
	"fmt"

	"github.com/marrowdale/satsmt/core"
	"github.com/marrowdale/satsmt/formula"
)

// ParseFirstOrder parses the fully-parenthesized first-order surface
// syntax: variables (u-z plus alphanumeric), constants (digits or a-d
// plus alphanumeric, or _), functions (f-t), equality =, unary ~, binary
// &,|,->, and quantifiers A/E with [...]. Quantifiers are accepted here —
// the parser builds their formula.Formula nodes — but the SMT entry point
// rejects a quantified result via formula.Formula.IsQuantified, since
// that core is quantifier-free only.
func ParseFirstOrder(input string) (formula.Formula, error) {
	toks, err := lex(input)
	if err != nil {
		return formula.Formula{}, err
	}
	p := &foParser{toks: toks}
	f, err := p.parseFormula()
	if err != nil {
		return formula.Formula{}, err
	}
	if !p.atEOF() {
		return formula.Formula{}, core.NewLogicError("parser", "ParseFirstOrder", core.KindMalformed,
			fmt.Sprintf("unexpected trailing input at position %d", p.peek().pos))
	}
	return f, nil
}

type foParser struct {
	toks []token
	pos  int
}

func (p *foParser) peek() token { return p.toks[p.pos] }
func (p *foParser) atEOF() bool { return p.peek().kind == tokEOF }

func (p *foParser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *foParser) expect(k tokenKind, desc string) (token, error) {
	if p.peek().kind != k {
		return token{}, core.NewLogicError("parser", "ParseFirstOrder", core.KindMalformed,
			fmt.Sprintf("expected %s at position %d", desc, p.peek().pos))
	}
	return p.advance(), nil
}

func (p *foParser) parseFormula() (formula.Formula, error) {
	switch p.peek().kind {
	case tokNot:
		p.advance()
		inner, err := p.parseFormula()
		if err != nil {
			return formula.Formula{}, err
		}
		return formula.Not(inner), nil

	case tokLParen:
		p.advance()
		lhs, err := p.parseFormula()
		if err != nil {
			return formula.Formula{}, err
		}
		opTok := p.advance()
		rhs, err := p.parseFormula()
		if err != nil {
			return formula.Formula{}, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return formula.Formula{}, err
		}
		switch opTok.kind {
		case tokAnd:
			return formula.And(lhs, rhs), nil
		case tokOr:
			return formula.Or(lhs, rhs), nil
		case tokImplies:
			return formula.Implies(lhs, rhs), nil
		default:
			return formula.Formula{}, core.NewLogicError("parser", "ParseFirstOrder", core.KindMalformed,
				fmt.Sprintf("expected a binary connective at position %d", opTok.pos))
		}

	case tokIdent:
		if p.peek().value == "A" || p.peek().value == "E" {
			return p.parseQuantifier()
		}
		return p.parseEquality()

	default:
		return formula.Formula{}, core.NewLogicError("parser", "ParseFirstOrder", core.KindMalformed,
			fmt.Sprintf("expected a formula at position %d", p.peek().pos))
	}
}

func (p *foParser) parseQuantifier() (formula.Formula, error) {
	kw := p.advance()
	if _, err := p.expect(tokLBracket, "'['"); err != nil {
		return formula.Formula{}, err
	}
	v, err := p.expect(tokIdent, "a bound variable")
	if err != nil {
		return formula.Formula{}, err
	}
	if _, err := p.expect(tokRBracket, "']'"); err != nil {
		return formula.Formula{}, err
	}
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return formula.Formula{}, err
	}
	body, err := p.parseFormula()
	if err != nil {
		return formula.Formula{}, err
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return formula.Formula{}, err
	}
	if kw.value == "A" {
		return formula.ForAll(v.value, body), nil
	}
	return formula.Exists(v.value, body), nil
}

func (p *foParser) parseEquality() (formula.Formula, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return formula.Formula{}, err
	}
	if _, err := p.expect(tokEqual, "'='"); err != nil {
		return formula.Formula{}, err
	}
	rhs, err := p.parseTerm()
	if err != nil {
		return formula.Formula{}, err
	}
	return formula.Equal(lhs, rhs), nil
}

func (p *foParser) parseTerm() (formula.Term, error) {
	t, err := p.expect(tokIdent, "a term")
	if err != nil {
		return formula.Term{}, err
	}
	switch classifyFirstOrderIdent(t.value) {
	case identFunction:
		if p.peek().kind != tokLParen {
			// A bare function-range symbol with no application is a
			// nullary function: an uninterpreted constant spelled with a
			// function-range letter (e.g. "f" standing alone).
			return formula.Func(t.value), nil
		}
		p.advance()
		args, err := p.parseTermList()
		if err != nil {
			return formula.Term{}, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return formula.Term{}, err
		}
		return formula.Func(t.value, args...), nil

	case identVariable:
		return formula.Var(t.value), nil

	default:
		return formula.Const(t.value), nil
	}
}

func (p *foParser) parseTermList() ([]formula.Term, error) {
	var args []formula.Term
	for {
		arg, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peek().kind == tokComma {
			p.advance()
			continue
		}
		return args, nil
	}
}

type identKind int

const (
	identConstant identKind = iota
	identFunction
	identVariable
)

// classifyFirstOrderIdent assigns an identifier to a lexical class by its
// leading character: a leading digit or underscore, or a letter in a-d,
// is a constant; f-t is a function symbol; u-z (and any other letter) is
// a variable.
func classifyFirstOrderIdent(name string) identKind {
	r := rune(name[0])
	switch {
	case r >= '0' && r <= '9', r == '_':
		return identConstant
	case r >= 'a' && r <= 'd':
		return identConstant
	case r >= 'f' && r <= 't':
		return identFunction
	default:
		return identVariable
	}
}
