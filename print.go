package shparse

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format renders a script back to source in a canonical form: one node
// per line, expansions written out in full and keywords separated by
// semicolons.
func Format(script *Script) string {
	var str strings.Builder
	for i, n := range script.Cmds {
		if i > 0 {
			str.WriteRune(nl)
		}
		str.WriteString(printNode(n))
	}
	return str.String()
}

func Print(w io.Writer, script *Script) error {
	_, err := io.WriteString(w, Format(script))
	return err
}

func printNode(n Node) string {
	switch n := n.(type) {
	case *FuncDecl:
		return fmt.Sprintf("%s() %s", n.Name, printCompound(n.Body))
	case *List:
		return printList(n)
	default:
		return ""
	}
}

func printList(list *List) string {
	var str strings.Builder
	str.WriteString(printPipeline(list.Head))
	for list.Rest != nil {
		str.WriteString(printOp(list.Op))
		list = list.Rest
		str.WriteString(printPipeline(list.Head))
	}
	return str.String()
}

func printPipeline(pl Pipeline) string {
	var str strings.Builder
	if pl.Not {
		str.WriteString("! ")
	}
	for i, cmd := range pl.Cmds {
		if i > 0 {
			str.WriteString(" | ")
		}
		str.WriteString(printCompound(cmd))
	}
	return str.String()
}

func printCompound(cmd Compound) string {
	var str strings.Builder
	str.WriteString(printCommand(cmd.Command))
	for _, rd := range cmd.Redirect {
		str.WriteRune(space)
		str.WriteString(printRedirect(rd))
	}
	return str.String()
}

func printCommand(cmd Command) string {
	switch cmd := cmd.(type) {
	case *Simple:
		return printSimple(cmd)
	case *WhileClause:
		return fmt.Sprintf("while %s; do %s; done", printList(cmd.Cond), printList(cmd.Body))
	case *ForLoop:
		var str strings.Builder
		str.WriteString("for ")
		str.WriteString(cmd.Ident)
		if len(cmd.Words) > 0 {
			str.WriteString(" in")
			for _, w := range cmd.Words {
				str.WriteRune(space)
				str.WriteString(printWord(w))
			}
		}
		fmt.Fprintf(&str, "; do %s; done", printList(cmd.Body))
		return str.String()
	case *ForExpr:
		init := printExpr(cmd.Init, false)
		cond := printExpr(cmd.Cond, false)
		step := printExpr(cmd.Step, false)
		return fmt.Sprintf("for ((%s; %s; %s)); do %s; done", init, cond, step, printList(cmd.Body))
	case *IfClause:
		var str strings.Builder
		fmt.Fprintf(&str, "if %s; then %s; ", printList(cmd.Cond), printList(cmd.Then))
		if cmd.Else != nil {
			fmt.Fprintf(&str, "else %s; ", printList(cmd.Else))
		}
		str.WriteString(kwFi)
		return str.String()
	case *CaseClause:
		var str strings.Builder
		fmt.Fprintf(&str, "case %s in", printWord(cmd.Word))
		for _, item := range cmd.Items {
			str.WriteRune(space)
			str.WriteString(printCaseItem(item))
		}
		str.WriteRune(space)
		str.WriteString(kwEsac)
		return str.String()
	case *ArithCmd:
		return fmt.Sprintf("((%s))", printExpr(cmd.X, false))
	default:
		return ""
	}
}

func printCaseItem(item CaseItem) string {
	var str strings.Builder
	for i, w := range item.Patterns {
		if i > 0 {
			str.WriteRune(pipe)
		}
		str.WriteString(printWord(w))
	}
	str.WriteRune(rparen)
	if item.Body != nil {
		str.WriteRune(space)
		str.WriteString(printList(item.Body))
	}
	str.WriteString(" ;;")
	return str.String()
}

func printSimple(cmd *Simple) string {
	var str strings.Builder
	for i, as := range cmd.Assigns {
		if i > 0 {
			str.WriteRune(space)
		}
		str.WriteString(printAssign(as))
	}
	for i, w := range cmd.Words {
		if i > 0 || len(cmd.Assigns) > 0 {
			str.WriteRune(space)
		}
		str.WriteString(printWord(w))
	}
	return str.String()
}

func printAssign(as Assign) string {
	var str strings.Builder
	str.WriteString(printIdent(as.Ident))
	str.WriteRune(equal)
	if as.Array {
		str.WriteRune(lparen)
		for i, w := range as.Words {
			if i > 0 {
				str.WriteRune(space)
			}
			str.WriteString(printWord(w))
		}
		str.WriteRune(rparen)
		return str.String()
	}
	if as.Value != nil {
		str.WriteString(printWord(as.Value))
	}
	return str.String()
}

func printRedirect(rd Redirect) string {
	var str strings.Builder
	switch rd.Op {
	case RedirectIn, DupIn:
		if rd.Fd != 0 {
			str.WriteString(strconv.Itoa(rd.Fd))
		}
	default:
		if rd.Fd != 1 {
			str.WriteString(strconv.Itoa(rd.Fd))
		}
	}
	switch rd.Op {
	case RedirectIn:
		str.WriteRune(langle)
	case RedirectOut:
		str.WriteRune(rangle)
	case AppendOut:
		str.WriteString(">>")
	case DupIn:
		str.WriteString("<&")
	case DupOut:
		str.WriteString(">&")
	}
	str.WriteString(printWord(rd.Word))
	return str.String()
}

func printIdent(id Ident) string {
	if id.Index != "" {
		return fmt.Sprintf("%s[%s]", id.Name, id.Index)
	}
	return id.Name
}

func printWord(w Word) string {
	switch w := w.(type) {
	case *ExpandWord:
		return w.Literal
	case *ExpandBrace:
		return fmt.Sprintf("{%s}", strings.Join(w.Words, ","))
	case *ExpandVar:
		return fmt.Sprintf("${%s}", printIdent(w.Ident))
	case *ExpandLength:
		return fmt.Sprintf("${#%s}", printIdent(w.Ident))
	case *ExpandSlice:
		return fmt.Sprintf("${%s:%d:%d}", printIdent(w.Ident), w.Offset, w.Size)
	case *ExpandTrim:
		return fmt.Sprintf("${%s%s%s}", printIdent(w.Ident), printOp(w.Op), w.Pattern)
	case *ExpandReplace:
		return fmt.Sprintf("${%s%s%s/%s}", printIdent(w.Ident), printOp(w.Op), w.From, w.To)
	case *ExpandSub:
		return fmt.Sprintf("$(%s)", printList(w.Body))
	case *ExpandMath:
		return fmt.Sprintf("$((%s))", printExpr(w.X, false))
	case *ExpandGlob:
		return w.Pattern
	default:
		return ""
	}
}

func printExpr(e Expr, nested bool) string {
	switch e := e.(type) {
	case *Number:
		return strconv.FormatInt(e.Value, 10)
	case *ExpandVar:
		return printIdent(e.Ident)
	case *Binary:
		str := fmt.Sprintf("%s %s %s", printExpr(e.Left, true), printOp(e.Op), printExpr(e.Right, true))
		if nested {
			return fmt.Sprintf("(%s)", str)
		}
		return str
	default:
		return ""
	}
}

func printOp(op rune) string {
	switch op {
	case And:
		return " && "
	case Or:
		return " || "
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case TrimPrefix:
		return "#"
	case TrimPrefixLong:
		return "##"
	case TrimSuffix:
		return "%"
	case TrimSuffixLong:
		return "%%"
	case Replace:
		return "/"
	case ReplaceAll:
		return "//"
	case ReplacePrefix:
		return "/#"
	case ReplaceSuffix:
		return "/%"
	default:
		return ""
	}
}
