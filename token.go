package shparse

import (
	"fmt"
	"sort"
)

const (
	EOF = -(iota + 1)
	Blank
	Sep
	Comment
	Keyword
	Literal
	Numeric
	Variable
	Braces
	BegExp
	EndExp
	Length         // ${#var}
	Slice          // ${var:off:len}
	TrimPrefix     // ${var#pattern}
	TrimPrefixLong // ${var##pattern}
	TrimSuffix     // ${var%pattern}
	TrimSuffixLong // ${var%%pattern}
	Replace        // ${var/from/to}
	ReplaceAll     // ${var//from/to}
	ReplacePrefix  // ${var/#from/to}
	ReplaceSuffix  // ${var/%from/to}
	BegSub
	EndSub
	BegList
	EndList
	BegMath
	EndMath
	Pipe
	And
	Or
	Not
	Equal
	Terminate
	RedirectIn  // < | 0<
	RedirectOut // > | 1>
	AppendOut   // >> | 1>>
	DupIn       // <& | 0<&
	DupOut      // >& | 1>&
	Add
	Sub
	Mul
	Div
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	Invalid
)

const (
	kwIf       = "if"
	kwThen     = "then"
	kwElif     = "elif"
	kwElse     = "else"
	kwFi       = "fi"
	kwFor      = "for"
	kwIn       = "in"
	kwWhile    = "while"
	kwDo       = "do"
	kwDone     = "done"
	kwCase     = "case"
	kwEsac     = "esac"
	kwFunction = "function"
	kwNot      = "!"
)

var keywords = []string{
	kwIf,
	kwThen,
	kwElif,
	kwElse,
	kwFi,
	kwFor,
	kwIn,
	kwWhile,
	kwDo,
	kwDone,
	kwCase,
	kwEsac,
	kwFunction,
	kwNot,
}

func init() {
	sort.Strings(keywords)
}

// IsKeyword reports whether str is one of the reserved words of the
// grammar. Reserved words can neither name a variable nor stand as a
// bare literal word.
func IsKeyword(str string) bool {
	i := sort.SearchStrings(keywords, str)
	return i < len(keywords) && keywords[i] == str
}

type Token struct {
	Literal string
	Type    rune
}

func (t Token) IsRedirect() bool {
	switch t.Type {
	case RedirectIn, RedirectOut, AppendOut, DupIn, DupOut:
		return true
	default:
		return false
	}
}

func (t Token) IsSequence() bool {
	switch t.Type {
	case Sep, Pipe, And, Or, Terminate, BegList, EndList, EndSub, Comment:
		return true
	default:
		return false
	}
}

// Eow reports whether the token ends the word being assembled.
func (t Token) Eow() bool {
	return t.Type == EOF || t.Type == Blank || t.IsSequence() || t.IsRedirect()
}

func (t Token) String() string {
	var prefix string
	switch t.Type {
	case EOF:
		return "<eof>"
	case Blank:
		return "<blank>"
	case Sep:
		return "<sep>"
	case Equal:
		return "<equal>"
	case Terminate:
		return "<terminate>"
	case Pipe:
		return "<pipe>"
	case And:
		return "<and>"
	case Or:
		return "<or>"
	case Not:
		return "<not>"
	case BegExp:
		return "<beg-expansion>"
	case EndExp:
		return "<end-expansion>"
	case BegSub:
		return "<beg-substitution>"
	case EndSub:
		return "<end-substitution>"
	case BegList:
		return "<beg-list>"
	case EndList:
		return "<end-list>"
	case BegMath:
		return "<beg-arithmetic>"
	case EndMath:
		return "<end-arithmetic>"
	case Length:
		return "<length>"
	case Slice:
		return "<slice>"
	case TrimPrefix:
		return "<trim-prefix>"
	case TrimPrefixLong:
		return "<trim-prefix-long>"
	case TrimSuffix:
		return "<trim-suffix>"
	case TrimSuffixLong:
		return "<trim-suffix-long>"
	case Replace:
		return "<replace>"
	case ReplaceAll:
		return "<replace-all>"
	case ReplacePrefix:
		return "<replace-prefix>"
	case ReplaceSuffix:
		return "<replace-suffix>"
	case RedirectIn:
		return "<redirect-in>"
	case RedirectOut:
		return "<redirect-out>"
	case AppendOut:
		return "<append-out>"
	case DupIn:
		return "<dup-in>"
	case DupOut:
		return "<dup-out>"
	case Add:
		return "<add>"
	case Sub:
		return "<sub>"
	case Mul:
		return "<mul>"
	case Div:
		return "<div>"
	case Eq:
		return "<eq>"
	case Ne:
		return "<ne>"
	case Lt:
		return "<lt>"
	case Le:
		return "<le>"
	case Gt:
		return "<gt>"
	case Ge:
		return "<ge>"
	case Keyword:
		prefix = "keyword"
	case Literal:
		prefix = "literal"
	case Numeric:
		prefix = "numeric"
	case Variable:
		prefix = "variable"
	case Braces:
		prefix = "braces"
	case Comment:
		prefix = "comment"
	case Invalid:
		prefix = "invalid"
	default:
		prefix = "unknown"
	}
	return fmt.Sprintf("%s(%s)", prefix, t.Literal)
}
