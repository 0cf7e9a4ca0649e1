package shparse_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rudolf101/shparse"
)

func TestParseWord(t *testing.T) {
	data := []struct {
		Input string
		Want  shparse.Word
	}{
		{
			Input: `plain`,
			Want:  word("plain"),
		},
		{
			Input: `key=value`,
			Want:  word("key=value"),
		},
		{
			Input: `$var`,
			Want:  variable("var"),
		},
		{
			Input: `${var}`,
			Want:  variable("var"),
		},
		{
			Input: `${arr[2]}`,
			Want:  &shparse.ExpandVar{Ident: shparse.Ident{Name: "arr", Index: "2"}},
		},
		{
			Input: `${#var}`,
			Want:  &shparse.ExpandLength{Ident: shparse.Ident{Name: "var"}},
		},
		{
			Input: `${var:1:3}`,
			Want:  &shparse.ExpandSlice{Ident: shparse.Ident{Name: "var"}, Offset: 1, Size: 3},
		},
		{
			Input: `${var:2}`,
			Want:  &shparse.ExpandSlice{Ident: shparse.Ident{Name: "var"}, Offset: 2},
		},
		{
			Input: `${var#pre}`,
			Want:  &shparse.ExpandTrim{Ident: shparse.Ident{Name: "var"}, Op: shparse.TrimPrefix, Pattern: "pre"},
		},
		{
			Input: `${var##pre}`,
			Want:  &shparse.ExpandTrim{Ident: shparse.Ident{Name: "var"}, Op: shparse.TrimPrefixLong, Pattern: "pre"},
		},
		{
			Input: `${var%suf}`,
			Want:  &shparse.ExpandTrim{Ident: shparse.Ident{Name: "var"}, Op: shparse.TrimSuffix, Pattern: "suf"},
		},
		{
			Input: `${var%%suf}`,
			Want:  &shparse.ExpandTrim{Ident: shparse.Ident{Name: "var"}, Op: shparse.TrimSuffixLong, Pattern: "suf"},
		},
		{
			Input: `${var/from/to}`,
			Want:  &shparse.ExpandReplace{Ident: shparse.Ident{Name: "var"}, Op: shparse.Replace, From: "from", To: "to"},
		},
		{
			Input: `${var//from/to}`,
			Want:  &shparse.ExpandReplace{Ident: shparse.Ident{Name: "var"}, Op: shparse.ReplaceAll, From: "from", To: "to"},
		},
		{
			Input: `${var/#from/to}`,
			Want:  &shparse.ExpandReplace{Ident: shparse.Ident{Name: "var"}, Op: shparse.ReplacePrefix, From: "from", To: "to"},
		},
		{
			Input: `${var/%from/to}`,
			Want:  &shparse.ExpandReplace{Ident: shparse.Ident{Name: "var"}, Op: shparse.ReplaceSuffix, From: "from", To: "to"},
		},
		{
			Input: `${var/from}`,
			Want:  &shparse.ExpandReplace{Ident: shparse.Ident{Name: "var"}, Op: shparse.Replace, From: "from"},
		},
		{
			Input: `$((x + 1))`,
			Want: &shparse.ExpandMath{
				X: &shparse.Binary{Op: shparse.Add, Left: variable("x"), Right: number(1)},
			},
		},
		{
			Input: `{a,b,c}`,
			Want:  &shparse.ExpandBrace{Words: []string{"a", "b", "c"}},
		},
		{
			Input: `{1..5}`,
			Want:  &shparse.ExpandBrace{Words: []string{"1", "2", "3", "4", "5"}},
		},
		{
			Input: `{5..1}`,
			Want:  &shparse.ExpandBrace{Words: []string{"5", "4", "3", "2", "1"}},
		},
		{
			Input: `{0..10..5}`,
			Want:  &shparse.ExpandBrace{Words: []string{"0", "5", "10"}},
		},
		{
			Input: `{a..e}`,
			Want:  &shparse.ExpandBrace{Words: []string{"a", "b", "c", "d", "e"}},
		},
		{
			Input: `img{1..3}.png`,
			Want:  &shparse.ExpandBrace{Words: []string{"img1.png", "img2.png", "img3.png"}},
		},
		{
			Input: `{x}`,
			Want:  word("{x}"),
		},
		{
			Input: `{}`,
			Want:  word("{}"),
		},
		{
			Input: `*.go`,
			Want:  &shparse.ExpandGlob{Pattern: "*.go"},
		},
		{
			Input: `file?.txt`,
			Want:  &shparse.ExpandGlob{Pattern: "file?.txt"},
		},
		{
			Input: `[abc]123`,
			Want:  &shparse.ExpandGlob{Pattern: "[abc]123"},
		},
	}
	for _, in := range data {
		got, err := shparse.ParseString("echo " + in.Input)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", in.Input, err)
			continue
		}
		w := lastWord(t, got)
		if diff := cmp.Diff(in.Want, w); diff != "" {
			t.Errorf("%s: word mismatch (-want +got):\n%s", in.Input, diff)
		}
	}
}

func lastWord(t *testing.T, script *shparse.Script) shparse.Word {
	t.Helper()
	list, ok := script.Cmds[0].(*shparse.List)
	if !ok {
		t.Fatalf("unexpected node type %T", script.Cmds[0])
	}
	sim, ok := list.Head.Cmds[0].Command.(*shparse.Simple)
	if !ok {
		t.Fatalf("unexpected command type %T", list.Head.Cmds[0].Command)
	}
	if len(sim.Words) == 0 {
		t.Fatalf("command has no words")
	}
	return sim.Words[len(sim.Words)-1]
}
