package shparse_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rudolf101/shparse"
)

func TestFormat(t *testing.T) {
	data := []struct {
		Input string
		Want  string
	}{
		{
			Input: "echo   hello    world",
			Want:  "echo hello world",
		},
		{
			Input: "a&&b ||c",
			Want:  "a && b || c",
		},
		{
			Input: "x=1 run 2>err.txt",
			Want:  "x=1 run 2>err.txt",
		},
		{
			Input: "while read x\ndo\necho $x\ndone",
			Want:  "while read x; do echo ${x}; done",
		},
		{
			Input: "echo ${v:3}",
			Want:  "echo ${v:3:0}",
		},
		{
			Input: "echo {a,b}end",
			Want:  "echo {aend,bend}",
		},
	}
	for _, in := range data {
		script, err := shparse.ParseString(in.Input)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", in.Input, err)
			continue
		}
		if got := shparse.Format(script); got != in.Want {
			t.Errorf("%s: format mismatch! want %q, got %q", in.Input, in.Want, got)
		}
	}
}

func TestFormatRoundtrip(t *testing.T) {
	data := []string{
		`echo hello world`,
		`a && b || c`,
		`! fgrep x | wc -l`,
		`x=1 y=2 env`,
		`arr=(a b c)`,
		`run 2> err.txt >> out.log`,
		`while read line; do echo ${line}; done`,
		`for f in one two; do mv ${f} ${f}.bak; done`,
		`for ((; i < 3; )); do tick; done`,
		`if test -f x; then echo yes; else echo no; fi`,
		"case $x in\na|b) echo ab ;;\n(c) ;;\nesac",
		`greet() echo hi`,
		`((2 + 3 * 4))`,
		`(((1 - 2) - 3))`,
		`echo $((x + 1))`,
		`echo $(ls | wc -l)`,
		`echo ${v#pre} ${v%%suf} ${v/a/b} ${#v} ${v:0:3}`,
		`echo {a,b}end {1..3}`,
		`ls *.go`,
	}
	for _, in := range data {
		first, err := shparse.ParseString(in)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", in, err)
			continue
		}
		str := shparse.Format(first)
		second, err := shparse.ParseString(str)
		if err != nil {
			t.Errorf("%s: fail to reparse %q: %s", in, str, err)
			continue
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%s: scripts differ after rendering %q (-first +second):\n%s", in, str, diff)
		}
	}
}
