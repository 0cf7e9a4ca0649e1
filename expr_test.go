package shparse_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rudolf101/shparse"
)

func TestParseExpr(t *testing.T) {
	data := []struct {
		Input string
		Want  shparse.Expr
	}{
		{
			Input: `((42))`,
			Want:  number(42),
		},
		{
			Input: `((-4))`,
			Want:  number(-4),
		},
		{
			Input: `((2 + 3 * 4))`,
			Want: &shparse.Binary{
				Op:    shparse.Add,
				Left:  number(2),
				Right: &shparse.Binary{Op: shparse.Mul, Left: number(3), Right: number(4)},
			},
		},
		{
			Input: `((1 - 2 - 3))`,
			Want: &shparse.Binary{
				Op:    shparse.Sub,
				Left:  &shparse.Binary{Op: shparse.Sub, Left: number(1), Right: number(2)},
				Right: number(3),
			},
		},
		{
			Input: `(((1 + 2) * 3))`,
			Want: &shparse.Binary{
				Op:    shparse.Mul,
				Left:  &shparse.Binary{Op: shparse.Add, Left: number(1), Right: number(2)},
				Right: number(3),
			},
		},
		{
			Input: `((x <= 5))`,
			Want:  &shparse.Binary{Op: shparse.Le, Left: variable("x"), Right: number(5)},
		},
		{
			Input: `((1 < 2 == 3 < 4))`,
			Want: &shparse.Binary{
				Op:    shparse.Eq,
				Left:  &shparse.Binary{Op: shparse.Lt, Left: number(1), Right: number(2)},
				Right: &shparse.Binary{Op: shparse.Lt, Left: number(3), Right: number(4)},
			},
		},
		{
			Input: `((n / 2 + n / 3))`,
			Want: &shparse.Binary{
				Op:    shparse.Add,
				Left:  &shparse.Binary{Op: shparse.Div, Left: variable("n"), Right: number(2)},
				Right: &shparse.Binary{Op: shparse.Div, Left: variable("n"), Right: number(3)},
			},
		},
		{
			Input: `((arr[0] != 9))`,
			Want: &shparse.Binary{
				Op:    shparse.Ne,
				Left:  &shparse.ExpandVar{Ident: shparse.Ident{Name: "arr", Index: "0"}},
				Right: number(9),
			},
		},
	}
	for _, in := range data {
		got, err := shparse.ParseString(in.Input)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", in.Input, err)
			continue
		}
		list, ok := got.Cmds[0].(*shparse.List)
		if !ok {
			t.Errorf("%s: unexpected node type %T", in.Input, got.Cmds[0])
			continue
		}
		cmd, ok := list.Head.Cmds[0].Command.(*shparse.ArithCmd)
		if !ok {
			t.Errorf("%s: unexpected command type %T", in.Input, list.Head.Cmds[0].Command)
			continue
		}
		if diff := cmp.Diff(in.Want, cmd.X); diff != "" {
			t.Errorf("%s: expression mismatch (-want +got):\n%s", in.Input, diff)
		}
	}
}
