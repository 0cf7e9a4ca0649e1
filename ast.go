package shparse

// Node is either a function declaration or a pipeline list. A Script is
// an ordered sequence of nodes.
type Node interface {
	node()
}

// Word is one of the word forms a command argument can take: a plain
// literal, a brace expansion already enumerated, a parameter expansion,
// a command substitution, an arithmetic expansion or a glob pattern.
type Word interface {
	word()
}

// Command is one of the command forms a pipeline stage can take.
type Command interface {
	command()
}

// Expr is a node of an arithmetic expression.
type Expr interface {
	expr()
}

type Script struct {
	Cmds []Node
}

// Ident is a variable reference with an optional subscript. Index holds
// the raw text between the square brackets and is empty for a plain
// variable.
type Ident struct {
	Name  string
	Index string
}

// Assign binds a value to a variable before a command runs or as a
// standalone command. Array assignments carry their values in Words.
type Assign struct {
	Ident Ident
	Value Word
	Words []Word
	Array bool
}

// Redirect rewires the given file descriptor of a command. Word is the
// target filename, or the source descriptor for the dup forms.
type Redirect struct {
	Fd   int
	Op   rune
	Word Word
}

// Compound is a single pipeline stage: a command with the redirections
// that apply to it.
type Compound struct {
	Command
	Redirect []Redirect
}

// Pipeline chains one or more compounds with the pipe operator. Not
// records a leading bang.
type Pipeline struct {
	Not  bool
	Cmds []Compound
}

// List chains pipelines with the && and || operators. The operators
// associate from the left but the chain nests to the right: in
// a && b || c the Rest of the first node holds b || c with Op set
// to And on the first node and Or on the second.
type List struct {
	Head Pipeline
	Op   rune
	Rest *List
}

func (*List) node() {}

// FuncDecl names a compound so it can be invoked later. Only the
// definition is recorded here.
type FuncDecl struct {
	Name string
	Body Compound
}

func (*FuncDecl) node() {}

// Simple is an ordinary command invocation: zero or more leading
// assignments then zero or more words. At least one of the two sets is
// non-empty.
type Simple struct {
	Assigns []Assign
	Words   []Word
}

type WhileClause struct {
	Cond *List
	Body *List
}

// ForLoop iterates a variable over a list of words.
type ForLoop struct {
	Ident string
	Words []Word
	Body  *List
}

// ForExpr is the arithmetic for loop. Omitted clauses default to the
// constant one.
type ForExpr struct {
	Init Expr
	Cond Expr
	Step Expr
	Body *List
}

type IfClause struct {
	Cond *List
	Then *List
	Else *List
}

type CaseClause struct {
	Word  Word
	Items []CaseItem
}

// CaseItem matches a set of patterns against the case word. Body may be
// nil for an empty action.
type CaseItem struct {
	Patterns []Word
	Body     *List
}

// ArithCmd evaluates an arithmetic expression for its exit status.
type ArithCmd struct {
	X Expr
}

func (*Simple) command()      {}
func (*WhileClause) command() {}
func (*ForLoop) command()     {}
func (*ForExpr) command()     {}
func (*IfClause) command()    {}
func (*CaseClause) command()  {}
func (*ArithCmd) command()    {}

// ExpandWord is a plain literal word.
type ExpandWord struct {
	Literal string
}

// ExpandBrace holds the words a brace segment enumerates to. The
// enumeration happens while parsing.
type ExpandBrace struct {
	Words []string
}

// ExpandVar substitutes the value of a variable.
type ExpandVar struct {
	Ident
}

// ExpandLength substitutes the length of the value of a variable.
type ExpandLength struct {
	Ident
}

// ExpandSlice substitutes a substring of the value of a variable.
type ExpandSlice struct {
	Ident
	Offset int
	Size   int
}

// ExpandTrim removes the shortest or longest prefix or suffix matching
// a pattern. Op is one of the trim token kinds.
type ExpandTrim struct {
	Ident
	Op      rune
	Pattern string
}

// ExpandReplace substitutes occurrences of From with To. Op is one of
// the replace token kinds.
type ExpandReplace struct {
	Ident
	Op   rune
	From string
	To   string
}

// ExpandSub substitutes the output of a nested command list.
type ExpandSub struct {
	Body *List
}

// ExpandMath substitutes the value of an arithmetic expression.
type ExpandMath struct {
	X Expr
}

// ExpandGlob is a word containing unquoted glob metacharacters. The
// pattern is recorded as written, matching is left to the caller.
type ExpandGlob struct {
	Pattern string
}

func (*ExpandWord) word()    {}
func (*ExpandBrace) word()   {}
func (*ExpandVar) word()     {}
func (*ExpandLength) word()  {}
func (*ExpandSlice) word()   {}
func (*ExpandTrim) word()    {}
func (*ExpandReplace) word() {}
func (*ExpandSub) word()     {}
func (*ExpandMath) word()    {}
func (*ExpandGlob) word()    {}

// Number is an integer literal of an arithmetic expression.
type Number struct {
	Value int64
}

// Binary applies one of the arithmetic or comparison operators to its
// operands. Op is the operator token kind.
type Binary struct {
	Op    rune
	Left  Expr
	Right Expr
}

func (*Number) expr()    {}
func (*Binary) expr()    {}
func (*ExpandVar) expr() {}

func createScript() *Script {
	return &Script{}
}

func createSimple() *Simple {
	return &Simple{}
}

func createWord(str string) *ExpandWord {
	return &ExpandWord{Literal: str}
}

func createVar(id Ident) *ExpandVar {
	return &ExpandVar{Ident: id}
}

func createNumber(n int64) *Number {
	return &Number{Value: n}
}

func createBinary(op rune, left, right Expr) *Binary {
	return &Binary{
		Op:    op,
		Left:  left,
		Right: right,
	}
}
