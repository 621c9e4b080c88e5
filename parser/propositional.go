package parser

import (
	"fmt"

	"github.com/marrowdale/satsmt/core"
	"github.com/marrowdale/satsmt/formula"
)

// ParsePropositional parses the fully-parenthesized propositional surface
// syntax: variables (lowercase letters optionally followed by digits),
// the constants T/F, unary ~, and the binary connectives
// &,|,->,<->,+,-&,-|. Because every binary group is explicitly
// parenthesized, no precedence table is needed — the recursive-descent
// parser below reads the grouping structure straight off the input.
func ParsePropositional(input string) (formula.Formula, error) {
	toks, err := lex(input)
	if err != nil {
		return formula.Formula{}, err
	}
	p := &propParser{toks: toks}
	f, err := p.parseFormula()
	if err != nil {
		return formula.Formula{}, err
	}
	if !p.atEOF() {
		return formula.Formula{}, core.NewLogicError("parser", "ParsePropositional", core.KindMalformed,
			fmt.Sprintf("unexpected trailing input at position %d", p.peek().pos))
	}
	return f, nil
}

type propParser struct {
	toks []token
	pos  int
}

func (p *propParser) peek() token { return p.toks[p.pos] }
func (p *propParser) atEOF() bool { return p.peek().kind == tokEOF }

func (p *propParser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *propParser) expect(k tokenKind, desc string) (token, error) {
	if p.peek().kind != k {
		return token{}, core.NewLogicError("parser", "ParsePropositional", core.KindMalformed,
			fmt.Sprintf("expected %s at position %d", desc, p.peek().pos))
	}
	return p.advance(), nil
}

func (p *propParser) parseFormula() (formula.Formula, error) {
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
		return applyBinary(opTok, lhs, rhs)

	case tokIdent:
		t := p.advance()
		switch t.value {
		case "T":
			return formula.True(), nil
		case "F":
			return formula.False(), nil
		default:
			if !isPropositionalVar(t.value) {
				return formula.Formula{}, core.NewLogicError("parser", "ParsePropositional", core.KindMalformed,
					fmt.Sprintf("invalid variable name %q at position %d", t.value, t.pos))
			}
			return formula.Var(t.value), nil
		}

	default:
		return formula.Formula{}, core.NewLogicError("parser", "ParsePropositional", core.KindMalformed,
			fmt.Sprintf("expected a formula at position %d", p.peek().pos))
	}
}

// applyBinary builds the Formula for a parenthesized "(lhs OP rhs)" group
// once its connective token is known.
func applyBinary(opTok token, lhs, rhs formula.Formula) (formula.Formula, error) {
	switch opTok.kind {
	case tokAnd:
		return formula.And(lhs, rhs), nil
	case tokOr:
		return formula.Or(lhs, rhs), nil
	case tokImplies:
		return formula.Implies(lhs, rhs), nil
	case tokIff:
		return formula.Iff(lhs, rhs), nil
	case tokXor:
		return formula.Xor(lhs, rhs), nil
	case tokNand:
		return formula.Nand(lhs, rhs), nil
	case tokNor:
		return formula.Nor(lhs, rhs), nil
	default:
		return formula.Formula{}, core.NewLogicError("parser", "ParsePropositional", core.KindMalformed,
			fmt.Sprintf("expected a binary connective at position %d", opTok.pos))
	}
}

// isPropositionalVar reports whether s is one or more lowercase letters
// followed by zero or more digits.
func isPropositionalVar(s string) bool {
	i := 0
	for i < len(s) && s[i] >= 'a' && s[i] <= 'z' {
		i++
	}
	if i == 0 {
		return false
	}
	for i < len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
		i++
	}
	return true
}
