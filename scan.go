package shparse

import (
	"bytes"
	"io"
	"unicode/utf8"
)

const (
	space      = ' '
	tab        = '\t'
	nl         = '\n'
	cr         = '\r'
	semicolon  = ';'
	pound      = '#'
	dollar     = '$'
	lparen     = '('
	rparen     = ')'
	lcurly     = '{'
	rcurly     = '}'
	lsquare    = '['
	rsquare    = ']'
	underscore = '_'
	ampersand  = '&'
	pipe       = '|'
	langle     = '<'
	rangle     = '>'
	equal      = '='
	bang       = '!'
	plus       = '+'
	minus      = '-'
	star       = '*'
	slash      = '/'
	percent    = '%'
	colon      = ':'
	backslash  = '\\'
)

type cursor struct {
	char rune
	curr int
	next int
}

type Scanner struct {
	input []byte
	cursor

	str   bytes.Buffer
	state scanstack
	exp   expMode
}

func Scan(r io.Reader) (*Scanner, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s := Scanner{
		input: buf,
		state: defaultStack(),
	}
	s.read()
	return &s, nil
}

func (s *Scanner) Scan() Token {
	s.reset()
	var tok Token
	if s.done() {
		if s.char == utf8.RuneError {
			tok.Type = Invalid
			s.char = 0
			s.curr = len(s.input)
			s.next = len(s.input)
			return tok
		}
		tok.Type = EOF
		return tok
	}
	switch {
	case s.state.Math():
		s.scanMath(&tok)
	case s.state.Expansion():
		s.scanExpansion(&tok)
	default:
		s.scanDefault(&tok)
	}
	return tok
}

func (s *Scanner) scanDefault(tok *Token) {
	switch k := s.peek(); {
	case isBlank(s.char):
		tok.Type = Blank
		s.skip(isBlank)
	case isNL(s.char):
		tok.Type = Sep
		s.skip(isNL)
	case s.char == semicolon:
		s.read()
		tok.Type = Sep
		if s.char == semicolon {
			s.read()
			tok.Type = Terminate
			s.skipBlank()
		}
	case isComment(s.char):
		s.scanComment(tok)
	case isDollar(s.char):
		s.scanDollar(tok)
	case s.char == lcurly:
		s.scanBraces(tok)
	case isRedirect(s.char):
		s.scanRedirect(tok, "")
	case isDigit(s.char):
		s.scanDigits(tok)
	case s.char == pipe:
		s.read()
		tok.Type = Pipe
		if s.char == pipe {
			s.read()
			tok.Type = Or
			s.skipBlank()
		}
	case s.char == ampersand:
		s.read()
		tok.Type = Invalid
		if s.char == ampersand {
			s.read()
			tok.Type = And
			s.skipBlank()
		}
	case isAssign(s.char):
		s.read()
		tok.Type = Equal
	case s.char == lparen:
		s.read()
		if s.char == lparen {
			s.read()
			tok.Type = BegMath
			s.state.EnterMath()
			break
		}
		tok.Type = BegList
		s.state.OpenParen()
	case s.char == rparen:
		s.read()
		if s.state.Substitution() && s.state.Parens() == 0 {
			tok.Type = EndSub
			s.state.LeaveSub()
			break
		}
		tok.Type = EndList
		s.state.CloseParen()
	case s.char == bang && isBlank(k):
		s.read()
		tok.Type = Not
		s.skipBlank()
	default:
		s.scanLiteral(tok)
	}
}

func (s *Scanner) scanLiteral(tok *Token) {
	for !s.done() && !stopLiteral(s.char) {
		s.write(s.char)
		s.read()
	}
	tok.Type = Literal
	tok.Literal = s.string()
	if IsKeyword(tok.Literal) {
		tok.Type = Keyword
		s.skipBlank()
		return
	}
	s.skipBlankUntil(isSequence)
}

func (s *Scanner) scanDigits(tok *Token) {
	for isDigit(s.char) {
		s.write(s.char)
		s.read()
	}
	if isRedirect(s.char) {
		fd := s.string()
		s.reset()
		s.scanRedirect(tok, fd)
		return
	}
	s.scanLiteral(tok)
}

func (s *Scanner) scanRedirect(tok *Token, fd string) {
	tok.Literal = fd
	switch s.char {
	case langle:
		s.read()
		tok.Type = RedirectIn
		if s.char == ampersand {
			s.read()
			tok.Type = DupIn
		}
	case rangle:
		s.read()
		tok.Type = RedirectOut
		if s.char == rangle {
			s.read()
			tok.Type = AppendOut
		} else if s.char == ampersand {
			s.read()
			tok.Type = DupOut
		}
	default:
		tok.Type = Invalid
	}
	s.skipBlank()
}

func (s *Scanner) scanDollar(tok *Token) {
	s.read()
	switch {
	case s.char == lcurly:
		s.read()
		tok.Type = BegExp
		s.state.EnterExpansion()
		s.exp = expIdent
	case s.char == lparen && s.peek() == lparen:
		s.read()
		s.read()
		tok.Type = BegMath
		s.state.EnterMath()
	case s.char == lparen:
		s.read()
		tok.Type = BegSub
		s.state.EnterSub()
	default:
		s.scanIdent(tok)
	}
}

func (s *Scanner) scanIdent(tok *Token) {
	if !isLetter(s.char) && s.char != underscore {
		tok.Type = Invalid
		return
	}
	for isIdent(s.char) {
		s.write(s.char)
		s.read()
	}
	tok.Type = Variable
	tok.Literal = s.string()
}

// scanBraces captures the raw body of a {...} segment in one token. When
// the segment does not close before a word boundary, the opening curly is
// part of a plain literal instead.
func (s *Scanner) scanBraces(tok *Token) {
	old := s.cursor
	s.read()
	for !s.done() && s.char != rcurly && !stopBrace(s.char) {
		s.write(s.char)
		s.read()
	}
	if s.char == rcurly {
		tok.Type = Braces
		tok.Literal = s.string()
		s.read()
		return
	}
	s.cursor = old
	s.reset()
	s.write(s.char)
	s.read()
	s.scanLiteral(tok)
}

func (s *Scanner) scanComment(tok *Token) {
	s.read()
	s.skipBlank()
	for !s.done() && !isNL(s.char) {
		s.write(s.char)
		s.read()
	}
	tok.Type = Comment
	tok.Literal = s.string()
}

func (s *Scanner) scanMath(tok *Token) {
	s.skipBlank()
	if s.done() {
		tok.Type = EOF
		return
	}
	switch {
	case isDigit(s.char):
		for isDigit(s.char) {
			s.write(s.char)
			s.read()
		}
		tok.Type = Numeric
		tok.Literal = s.string()
	case isLetter(s.char) || s.char == underscore:
		s.scanSubscript(tok)
	default:
		s.scanMathOp(tok)
	}
}

// scanSubscript reads an identifier with an optional [index] suffix. The
// subscript text is kept verbatim in the token literal.
func (s *Scanner) scanSubscript(tok *Token) {
	for isIdent(s.char) {
		s.write(s.char)
		s.read()
	}
	tok.Type = Variable
	if s.char == lsquare {
		for !s.done() && s.char != rsquare {
			s.write(s.char)
			s.read()
		}
		if s.char != rsquare {
			tok.Type = Invalid
		} else {
			s.write(s.char)
			s.read()
		}
	}
	tok.Literal = s.string()
}

func (s *Scanner) scanMathOp(tok *Token) {
	switch s.char {
	case plus:
		tok.Type = Add
	case minus:
		tok.Type = Sub
	case star:
		tok.Type = Mul
	case slash:
		tok.Type = Div
	case semicolon:
		tok.Type = Sep
	case equal:
		tok.Type = Invalid
		if s.peek() == equal {
			s.read()
			tok.Type = Eq
		}
	case bang:
		tok.Type = Invalid
		if s.peek() == equal {
			s.read()
			tok.Type = Ne
		}
	case langle:
		tok.Type = Lt
		if s.peek() == equal {
			s.read()
			tok.Type = Le
		}
	case rangle:
		tok.Type = Gt
		if s.peek() == equal {
			s.read()
			tok.Type = Ge
		}
	case lparen:
		tok.Type = BegMath
		s.state.EnterMath()
	case rparen:
		tok.Type = EndMath
		s.state.LeaveMath()
		if !s.state.Math() {
			if s.peek() != rparen {
				tok.Type = Invalid
			} else {
				s.read()
			}
		}
	default:
		tok.Type = Invalid
	}
	s.read()
}

func (s *Scanner) scanExpansion(tok *Token) {
	switch s.exp {
	case expPattern:
		s.scanExpOperand(tok, false)
	case expFrom:
		s.scanExpOperand(tok, true)
	case expTo:
		s.scanExpOperand(tok, false)
	case expSlice:
		s.scanExpNumber(tok)
	default:
		s.scanExpIdent(tok)
	}
}

func (s *Scanner) scanExpIdent(tok *Token) {
	switch {
	case s.char == rcurly:
		s.read()
		tok.Type = EndExp
		s.state.LeaveExpansion()
	case s.char == pound && s.prev() == lcurly:
		s.read()
		tok.Type = Length
	case isLetter(s.char) || s.char == underscore:
		s.scanSubscript(tok)
		if tok.Type == Variable {
			tok.Type = Literal
		}
	case s.char == colon:
		s.read()
		tok.Type = Slice
		s.exp = expSlice
	case s.char == pound:
		s.read()
		tok.Type = TrimPrefix
		if s.char == pound {
			s.read()
			tok.Type = TrimPrefixLong
		}
		s.exp = expPattern
	case s.char == percent:
		s.read()
		tok.Type = TrimSuffix
		if s.char == percent {
			s.read()
			tok.Type = TrimSuffixLong
		}
		s.exp = expPattern
	case s.char == slash:
		s.read()
		tok.Type = Replace
		switch s.char {
		case slash:
			s.read()
			tok.Type = ReplaceAll
		case pound:
			s.read()
			tok.Type = ReplacePrefix
		case percent:
			s.read()
			tok.Type = ReplaceSuffix
		}
		s.exp = expFrom
	default:
		s.read()
		tok.Type = Invalid
	}
}

// scanExpOperand reads a pattern or replacement operand up to the closing
// curly. When sep is set a bare slash separates the search text from its
// replacement; a backslash escapes slash, curly and backslash.
func (s *Scanner) scanExpOperand(tok *Token, sep bool) {
	switch {
	case s.char == rcurly:
		s.read()
		tok.Type = EndExp
		s.state.LeaveExpansion()
	case sep && s.char == slash:
		s.read()
		tok.Type = Replace
		s.exp = expTo
	default:
		for !s.done() && s.char != rcurly && !(sep && s.char == slash) {
			if s.char == backslash && canEscape(s.peek()) {
				s.read()
			}
			s.write(s.char)
			s.read()
		}
		tok.Type = Literal
		tok.Literal = s.string()
	}
}

func (s *Scanner) scanExpNumber(tok *Token) {
	switch {
	case s.char == rcurly:
		s.read()
		tok.Type = EndExp
		s.state.LeaveExpansion()
	case s.char == colon:
		s.read()
		tok.Type = Slice
	case s.char == minus || isDigit(s.char):
		if s.char == minus {
			s.write(s.char)
			s.read()
		}
		for isDigit(s.char) {
			s.write(s.char)
			s.read()
		}
		tok.Type = Numeric
		tok.Literal = s.string()
	default:
		s.read()
		tok.Type = Invalid
	}
}

func (s *Scanner) skip(accept func(rune) bool) {
	for !s.done() && accept(s.char) {
		s.read()
	}
}

func (s *Scanner) skipBlank() {
	s.skip(isBlank)
}

func (s *Scanner) skipBlankUntil(fn func(rune) bool) {
	if !isBlank(s.char) {
		return
	}
	old := s.cursor
	s.skipBlank()
	if !fn(s.char) {
		s.cursor = old
	}
}

func (s *Scanner) done() bool {
	return s.char == 0 || s.char == utf8.RuneError
}

func (s *Scanner) read() {
	if s.next >= len(s.input) {
		s.char = 0
		s.curr = len(s.input)
		return
	}
	r, n := utf8.DecodeRune(s.input[s.next:])
	if r == utf8.RuneError || r == 0 {
		r = utf8.RuneError
	}
	s.char, s.curr, s.next = r, s.next, s.next+n
}

func (s *Scanner) peek() rune {
	r, _ := utf8.DecodeRune(s.input[s.next:])
	return r
}

func (s *Scanner) prev() rune {
	r, _ := utf8.DecodeLastRune(s.input[:s.curr])
	return r
}

func (s *Scanner) reset() {
	s.str.Reset()
}

func (s *Scanner) write(r rune) {
	s.str.WriteRune(r)
}

func (s *Scanner) string() string {
	return s.str.String()
}

type expMode int8

const (
	expIdent expMode = iota
	expSlice
	expPattern
	expFrom
	expTo
)

type scanState int8

const (
	scanNormal scanState = iota
	scanSub
	scanExp
	scanArith
)

type frame struct {
	state  scanState
	parens int
}

type scanstack []frame

func defaultStack() scanstack {
	return scanstack{{state: scanNormal}}
}

func (s *scanstack) Curr() scanState {
	n := len(*s)
	if n == 0 {
		return scanNormal
	}
	return (*s)[n-1].state
}

func (s *scanstack) Push(st scanState) {
	*s = append(*s, frame{state: st})
}

func (s *scanstack) Pop() {
	if n := len(*s); n > 1 {
		*s = (*s)[:n-1]
	}
}

func (s *scanstack) Math() bool {
	return s.Curr() == scanArith
}

func (s *scanstack) EnterMath() {
	s.Push(scanArith)
}

func (s *scanstack) LeaveMath() {
	if s.Math() {
		s.Pop()
	}
}

func (s *scanstack) Expansion() bool {
	return s.Curr() == scanExp
}

func (s *scanstack) EnterExpansion() {
	s.Push(scanExp)
}

func (s *scanstack) LeaveExpansion() {
	if s.Expansion() {
		s.Pop()
	}
}

func (s *scanstack) Substitution() bool {
	return s.Curr() == scanSub
}

func (s *scanstack) EnterSub() {
	s.Push(scanSub)
}

func (s *scanstack) LeaveSub() {
	if s.Substitution() {
		s.Pop()
	}
}

func (s *scanstack) Parens() int {
	if n := len(*s); n > 0 {
		return (*s)[n-1].parens
	}
	return 0
}

func (s *scanstack) OpenParen() {
	if n := len(*s); n > 0 {
		(*s)[n-1].parens++
	}
}

func (s *scanstack) CloseParen() {
	if n := len(*s); n > 0 && (*s)[n-1].parens > 0 {
		(*s)[n-1].parens--
	}
}

func stopLiteral(r rune) bool {
	switch r {
	case space, tab, nl, cr, semicolon, pipe, ampersand, langle, rangle, lparen, rparen, equal, dollar, lcurly:
		return true
	default:
		return false
	}
}

func stopBrace(r rune) bool {
	switch r {
	case space, tab, nl, cr, semicolon, pipe, ampersand, langle, rangle, lparen, rparen, equal, dollar, lcurly:
		return true
	default:
		return false
	}
}

func canEscape(r rune) bool {
	return r == slash || r == rcurly || r == backslash
}

func isSequence(r rune) bool {
	switch r {
	case semicolon, pipe, ampersand, langle, rangle, lparen, rparen, nl, cr:
		return true
	default:
		return false
	}
}

func isBlank(r rune) bool {
	return r == space || r == tab
}

func isNL(r rune) bool {
	return r == nl || r == cr
}

func isComment(r rune) bool {
	return r == pound
}

func isDollar(r rune) bool {
	return r == dollar
}

func isAssign(r rune) bool {
	return r == equal
}

func isRedirect(r rune) bool {
	return r == langle || r == rangle
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdent(r rune) bool {
	return isLetter(r) || isDigit(r) || r == underscore
}
