package shparse

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrSyntax is wrapped by every error reported while parsing a script.
var ErrSyntax = errors.New("syntax error")

type Parser struct {
	scan *Scanner
	curr Token
	peek Token
}

func NewParser(r io.Reader) (*Parser, error) {
	s, err := Scan(r)
	if err != nil {
		return nil, err
	}
	p := Parser{scan: s}
	p.next()
	p.next()
	return &p, nil
}

// Parse reads a whole script from r. Either every command parses or an
// error wrapping ErrSyntax is returned; there is no partial result.
func Parse(r io.Reader) (*Script, error) {
	p, err := NewParser(r)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

func ParseString(str string) (*Script, error) {
	return Parse(strings.NewReader(str))
}

func (p *Parser) Parse() (*Script, error) {
	script := createScript()
	p.skipSep()
	for !p.done() {
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		script.Cmds = append(script.Cmds, node)
		if err := p.expectEnd(); err != nil {
			return nil, err
		}
		p.skipSep()
	}
	return script, nil
}

func (p *Parser) parseNode() (Node, error) {
	if p.curr.Type == Keyword && p.curr.Literal == kwFunction {
		return p.parseFunction(true)
	}
	if p.curr.Type == Literal && p.peek.Type == BegList {
		return p.parseFunction(false)
	}
	return p.parseList()
}

// parseFunction parses a function definition. The parens after the name
// are optional only when the function keyword introduces it.
func (p *Parser) parseFunction(kw bool) (Node, error) {
	if kw {
		p.next()
	}
	if p.curr.Type != Literal || !validName(p.curr.Literal) {
		return nil, p.unexpected()
	}
	decl := FuncDecl{Name: p.curr.Literal}
	p.next()
	p.skipBlank()
	if p.curr.Type == BegList {
		p.next()
		p.skipBlank()
		if err := p.expect(EndList); err != nil {
			return nil, err
		}
	} else if !kw {
		return nil, p.unexpected()
	}
	p.skipSep()
	body, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	decl.Body = body
	return &decl, nil
}

func (p *Parser) parseList() (*List, error) {
	var list List
	pl, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}
	list.Head = pl
	if p.curr.Type == And || p.curr.Type == Or {
		list.Op = p.curr.Type
		p.next()
		p.skipSep()
		rest, err := p.parseList()
		if err != nil {
			return nil, err
		}
		list.Rest = rest
	}
	return &list, nil
}

func (p *Parser) parsePipeline() (Pipeline, error) {
	var pl Pipeline
	p.skipBlank()
	if p.curr.Type == Not || (p.curr.Type == Keyword && p.curr.Literal == kwNot) {
		pl.Not = true
		p.next()
		p.skipBlank()
	}
	for {
		cmd, err := p.parseCompound()
		if err != nil {
			return pl, err
		}
		pl.Cmds = append(pl.Cmds, cmd)
		p.skipBlank()
		if p.curr.Type != Pipe {
			break
		}
		p.next()
		p.skipSep()
	}
	return pl, nil
}

func (p *Parser) parseCompound() (Compound, error) {
	var (
		cmd Compound
		err error
	)
	switch {
	case p.curr.Type == Keyword:
		switch p.curr.Literal {
		case kwWhile:
			cmd.Command, err = p.parseWhile()
		case kwFor:
			cmd.Command, err = p.parseFor()
		case kwIf:
			cmd.Command, err = p.parseIf()
		case kwCase:
			cmd.Command, err = p.parseCase()
		default:
			err = p.unexpected()
		}
		if err != nil {
			return cmd, err
		}
		p.skipBlank()
		for p.curr.IsRedirect() {
			rd, err := p.parseRedirect()
			if err != nil {
				return cmd, err
			}
			cmd.Redirect = append(cmd.Redirect, rd)
			p.skipBlank()
		}
	case p.curr.Type == BegMath:
		cmd.Command, err = p.parseArithCmd()
		if err != nil {
			return cmd, err
		}
		p.skipBlank()
		for p.curr.IsRedirect() {
			rd, err := p.parseRedirect()
			if err != nil {
				return cmd, err
			}
			cmd.Redirect = append(cmd.Redirect, rd)
			p.skipBlank()
		}
	default:
		err = p.parseSimple(&cmd)
	}
	return cmd, err
}

// parseSimple reads leading assignments then words and redirections in
// any order. The redirections belong to the enclosing compound.
func (p *Parser) parseSimple(cmd *Compound) error {
	sim := createSimple()
	for p.curr.Type == Literal && p.peek.Type == Equal && validTarget(p.curr.Literal) {
		as, err := p.parseAssign()
		if err != nil {
			return err
		}
		sim.Assigns = append(sim.Assigns, as)
		p.skipBlank()
	}
	for !p.done() && !p.curr.IsSequence() {
		switch {
		case p.curr.Type == Blank:
			p.next()
		case p.curr.IsRedirect():
			rd, err := p.parseRedirect()
			if err != nil {
				return err
			}
			cmd.Redirect = append(cmd.Redirect, rd)
		default:
			w, err := p.parseWord(expandAll)
			if err != nil {
				return err
			}
			sim.Words = append(sim.Words, w)
		}
	}
	if len(sim.Assigns) == 0 && len(sim.Words) == 0 {
		return p.unexpected()
	}
	cmd.Command = sim
	return nil
}

func (p *Parser) parseAssign() (Assign, error) {
	as := Assign{
		Ident: splitIdent(p.curr.Literal),
	}
	p.next()
	p.next()
	if p.curr.Type == BegList {
		return p.parseArray(as)
	}
	if p.curr.Eow() {
		as.Value = createWord("")
		return as, nil
	}
	w, err := p.parseWord(expandParams | expandSubst | expandArith)
	as.Value = w
	return as, err
}

func (p *Parser) parseArray(as Assign) (Assign, error) {
	as.Array = true
	p.next()
	for {
		p.skipSep()
		if p.curr.Type == EndList {
			p.next()
			return as, nil
		}
		if p.done() {
			return as, p.unexpected()
		}
		w, err := p.parseWord(expandParams | expandSubst | expandArith)
		if err != nil {
			return as, err
		}
		as.Words = append(as.Words, w)
	}
}

func (p *Parser) parseWhile() (Command, error) {
	p.next()
	cond, err := p.parseList()
	if err != nil {
		return nil, err
	}
	if err := p.expectSep(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(kwDo); err != nil {
		return nil, err
	}
	body, err := p.parseBody(kwDone)
	if err != nil {
		return nil, err
	}
	return &WhileClause{
		Cond: cond,
		Body: body,
	}, nil
}

func (p *Parser) parseFor() (Command, error) {
	p.next()
	if p.curr.Type == BegMath {
		return p.parseForExpr()
	}
	if p.curr.Type != Literal || !validName(p.curr.Literal) {
		return nil, p.unexpected()
	}
	loop := ForLoop{Ident: p.curr.Literal}
	p.next()
	p.skipBlank()
	if p.curr.Type == Keyword && p.curr.Literal == kwIn {
		p.next()
		for {
			p.skipBlank()
			if p.done() || p.curr.IsSequence() {
				break
			}
			w, err := p.parseWord(expandAll)
			if err != nil {
				return nil, err
			}
			loop.Words = append(loop.Words, w)
		}
	}
	if err := p.expectSep(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(kwDo); err != nil {
		return nil, err
	}
	body, err := p.parseBody(kwDone)
	if err != nil {
		return nil, err
	}
	loop.Body = body
	return &loop, nil
}

// parseForExpr parses the arithmetic for loop. Each omitted clause
// defaults to the constant one so the loop header always carries three
// expressions.
func (p *Parser) parseForExpr() (Command, error) {
	p.next()
	loop := ForExpr{
		Init: createNumber(1),
		Cond: createNumber(1),
		Step: createNumber(1),
	}
	var err error
	if p.curr.Type != Sep {
		if loop.Init, err = p.parseExpr(bindLowest); err != nil {
			return nil, err
		}
	}
	if err := p.expect(Sep); err != nil {
		return nil, err
	}
	if p.curr.Type != Sep {
		if loop.Cond, err = p.parseExpr(bindLowest); err != nil {
			return nil, err
		}
	}
	if err := p.expect(Sep); err != nil {
		return nil, err
	}
	if p.curr.Type != EndMath {
		if loop.Step, err = p.parseExpr(bindLowest); err != nil {
			return nil, err
		}
	}
	if err := p.expect(EndMath); err != nil {
		return nil, err
	}
	p.skipBlank()
	if p.curr.Type == Sep {
		p.skipSep()
	}
	if err := p.expectKeyword(kwDo); err != nil {
		return nil, err
	}
	body, err := p.parseBody(kwDone)
	if err != nil {
		return nil, err
	}
	loop.Body = body
	return &loop, nil
}

func (p *Parser) parseIf() (Command, error) {
	p.next()
	cond, err := p.parseList()
	if err != nil {
		return nil, err
	}
	if err := p.expectSep(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(kwThen); err != nil {
		return nil, err
	}
	clause := IfClause{Cond: cond}
	if clause.Then, err = p.parseList(); err != nil {
		return nil, err
	}
	if err := p.expectSep(); err != nil {
		return nil, err
	}
	if p.curr.Type == Keyword && p.curr.Literal == kwElse {
		p.next()
		if clause.Else, err = p.parseList(); err != nil {
			return nil, err
		}
		if err := p.expectSep(); err != nil {
			return nil, err
		}
	}
	if err := p.expectKeyword(kwFi); err != nil {
		return nil, err
	}
	return &clause, nil
}

func (p *Parser) parseCase() (Command, error) {
	p.next()
	word, err := p.parseWord(expandAll)
	if err != nil {
		return nil, err
	}
	p.skipBlank()
	if err := p.expectKeyword(kwIn); err != nil {
		return nil, err
	}
	p.skipSep()
	clause := CaseClause{Word: word}
	for !p.done() {
		if p.curr.Type == Keyword && p.curr.Literal == kwEsac {
			p.next()
			return &clause, nil
		}
		item, err := p.parseCaseItem()
		if err != nil {
			return nil, err
		}
		clause.Items = append(clause.Items, item)
		p.skipSep()
	}
	return nil, p.unexpected()
}

func (p *Parser) parseCaseItem() (CaseItem, error) {
	var item CaseItem
	if p.curr.Type == BegList {
		p.next()
		p.skipBlank()
	}
	for {
		w, err := p.parseWord(expandParams | expandSubst | expandArith | expandGlob)
		if err != nil {
			return item, err
		}
		item.Patterns = append(item.Patterns, w)
		p.skipBlank()
		if p.curr.Type != Pipe {
			break
		}
		p.next()
		p.skipBlank()
	}
	if err := p.expect(EndList); err != nil {
		return item, err
	}
	p.skipSep()
	if p.curr.Type != Terminate {
		body, err := p.parseList()
		if err != nil {
			return item, err
		}
		item.Body = body
		p.skipBlank()
		if p.curr.Type == Sep {
			p.skipSep()
		}
	}
	if err := p.expect(Terminate); err != nil {
		return item, err
	}
	return item, nil
}

func (p *Parser) parseArithCmd() (Command, error) {
	p.next()
	expr, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	return &ArithCmd{X: expr}, nil
}

// parseBody parses a loop body up to its closing keyword.
func (p *Parser) parseBody(kw string) (*List, error) {
	body, err := p.parseList()
	if err != nil {
		return nil, err
	}
	if err := p.expectSep(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(kw); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) parseRedirect() (Redirect, error) {
	rd := Redirect{Op: p.curr.Type}
	switch rd.Op {
	case RedirectIn, DupIn:
		rd.Fd = 0
	default:
		rd.Fd = 1
	}
	if p.curr.Literal != "" {
		fd, err := strconv.Atoi(p.curr.Literal)
		if err != nil {
			return rd, p.unexpected()
		}
		rd.Fd = fd
	}
	p.next()
	p.skipBlank()
	w, err := p.parseWord(expandParams | expandSubst | expandArith)
	rd.Word = w
	return rd, err
}

func (p *Parser) parseWord(opts wordOpts) (Word, error) {
	var parts []Word
	for !p.curr.Eow() {
		switch p.curr.Type {
		case Literal, Numeric:
			parts = append(parts, createWord(p.curr.Literal))
			p.next()
		case Equal:
			parts = append(parts, createWord("="))
			p.next()
		case Variable:
			if opts&expandParams == 0 {
				return nil, p.unexpected()
			}
			parts = append(parts, createVar(splitIdent(p.curr.Literal)))
			p.next()
		case BegExp:
			if opts&expandParams == 0 {
				return nil, p.unexpected()
			}
			w, err := p.parseExpansion()
			if err != nil {
				return nil, err
			}
			parts = append(parts, w)
		case BegSub:
			if opts&expandSubst == 0 {
				return nil, p.unexpected()
			}
			w, err := p.parseSubstitution()
			if err != nil {
				return nil, err
			}
			parts = append(parts, w)
		case BegMath:
			if opts&expandArith == 0 {
				return nil, p.unexpected()
			}
			p.next()
			expr, err := p.parseArith()
			if err != nil {
				return nil, err
			}
			parts = append(parts, &ExpandMath{X: expr})
		case Braces:
			parts = append(parts, p.parseBraces(opts))
			p.next()
		default:
			return nil, p.unexpected()
		}
	}
	if len(parts) == 0 {
		return nil, p.unexpected()
	}
	return assembleWord(parts, opts), nil
}

func (p *Parser) parseBraces(opts wordOpts) Word {
	if opts&expandBraces != 0 {
		if words, ok := expandBrace("", p.curr.Literal, ""); ok {
			return &ExpandBrace{Words: words}
		}
	}
	return createWord("{" + p.curr.Literal + "}")
}

// assembleWord combines the scanned pieces of one word. A word made of a
// single piece keeps its node; pieces glued together are flattened back
// to text, with brace alternatives multiplied out.
func assembleWord(parts []Word, opts wordOpts) Word {
	if len(parts) == 1 {
		if w, ok := parts[0].(*ExpandWord); ok && opts&expandGlob != 0 && isGlob(w.Literal) {
			return &ExpandGlob{Pattern: w.Literal}
		}
		return parts[0]
	}
	var (
		words = []string{""}
		brace bool
	)
	for _, part := range parts {
		if b, ok := part.(*ExpandBrace); ok {
			brace = true
			words = crossWords(words, b.Words)
			continue
		}
		words = crossWords(words, []string{printWord(part)})
	}
	if brace {
		return &ExpandBrace{Words: words}
	}
	str := words[0]
	if opts&expandGlob != 0 && isGlob(str) {
		return &ExpandGlob{Pattern: str}
	}
	return createWord(str)
}

func crossWords(list, next []string) []string {
	out := make([]string, 0, len(list)*len(next))
	for _, a := range list {
		for _, b := range next {
			out = append(out, a+b)
		}
	}
	return out
}

func (p *Parser) parseExpansion() (Word, error) {
	p.next()
	var length bool
	if p.curr.Type == Length {
		length = true
		p.next()
	}
	if p.curr.Type != Literal {
		return nil, p.unexpected()
	}
	id := splitIdent(p.curr.Literal)
	if !validName(id.Name) {
		return nil, p.unexpected()
	}
	p.next()
	if length {
		if err := p.expect(EndExp); err != nil {
			return nil, err
		}
		return &ExpandLength{Ident: id}, nil
	}
	switch p.curr.Type {
	case EndExp:
		p.next()
		return createVar(id), nil
	case Slice:
		return p.parseSlice(id)
	case TrimPrefix, TrimPrefixLong, TrimSuffix, TrimSuffixLong:
		return p.parseTrim(id)
	case Replace, ReplaceAll, ReplacePrefix, ReplaceSuffix:
		return p.parseReplace(id)
	default:
		return nil, p.unexpected()
	}
}

func (p *Parser) parseSlice(id Ident) (Word, error) {
	p.next()
	w := ExpandSlice{Ident: id}
	if p.curr.Type == Numeric {
		n, err := strconv.Atoi(p.curr.Literal)
		if err != nil {
			return nil, p.unexpected()
		}
		w.Offset = n
		p.next()
	}
	if p.curr.Type == Slice {
		p.next()
		if p.curr.Type == Numeric {
			n, err := strconv.Atoi(p.curr.Literal)
			if err != nil {
				return nil, p.unexpected()
			}
			w.Size = n
			p.next()
		}
	}
	if err := p.expect(EndExp); err != nil {
		return nil, err
	}
	return &w, nil
}

func (p *Parser) parseTrim(id Ident) (Word, error) {
	w := ExpandTrim{
		Ident: id,
		Op:    p.curr.Type,
	}
	p.next()
	if p.curr.Type == Literal {
		w.Pattern = p.curr.Literal
		p.next()
	}
	if err := p.expect(EndExp); err != nil {
		return nil, err
	}
	return &w, nil
}

func (p *Parser) parseReplace(id Ident) (Word, error) {
	w := ExpandReplace{
		Ident: id,
		Op:    p.curr.Type,
	}
	p.next()
	if p.curr.Type == Literal {
		w.From = p.curr.Literal
		p.next()
	}
	if p.curr.Type == Replace {
		p.next()
		if p.curr.Type == Literal {
			w.To = p.curr.Literal
			p.next()
		}
	}
	if err := p.expect(EndExp); err != nil {
		return nil, err
	}
	return &w, nil
}

func (p *Parser) parseSubstitution() (Word, error) {
	p.next()
	p.skipSep()
	body, err := p.parseList()
	if err != nil {
		return nil, err
	}
	p.skipSep()
	if err := p.expect(EndSub); err != nil {
		return nil, err
	}
	return &ExpandSub{Body: body}, nil
}

func (p *Parser) next() {
	p.curr = p.peek
	p.peek = p.scan.Scan()
}

func (p *Parser) done() bool {
	return p.curr.Type == EOF
}

func (p *Parser) skipBlank() {
	for p.curr.Type == Blank {
		p.next()
	}
}

func (p *Parser) skipSep() {
	for p.curr.Type == Blank || p.curr.Type == Sep || p.curr.Type == Comment {
		p.next()
	}
}

func (p *Parser) expect(kind rune) error {
	if p.curr.Type != kind {
		return p.unexpected()
	}
	p.next()
	return nil
}

// expectSep requires a command separator then swallows any run of them.
func (p *Parser) expectSep() error {
	p.skipBlank()
	if p.curr.Type != Sep && p.curr.Type != Comment {
		return p.unexpected()
	}
	p.skipSep()
	return nil
}

func (p *Parser) expectKeyword(kw string) error {
	if p.curr.Type != Keyword || p.curr.Literal != kw {
		return p.unexpected()
	}
	p.next()
	return nil
}

func (p *Parser) expectEnd() error {
	switch p.curr.Type {
	case EOF, Sep, Comment:
		return nil
	default:
		return p.unexpected()
	}
}

func (p *Parser) unexpected() error {
	return fmt.Errorf("%w: unexpected token %s", ErrSyntax, p.curr)
}

func validTarget(str string) bool {
	x := strings.IndexByte(str, lsquare)
	if x < 0 {
		return validName(str)
	}
	return validName(str[:x]) && strings.HasSuffix(str, "]") && len(str) > x+2
}
