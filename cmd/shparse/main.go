package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rudolf101/shparse"
)

func main() {
	var (
		tree   bool
		tokens bool
	)
	root := cobra.Command{
		Use:           "shparse [file...]",
		Short:         "parse shell scripts and print their structure",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			if tokens {
				return scanFiles(args)
			}
			return parseFiles(args, tree)
		},
	}
	root.Flags().BoolVar(&tree, "tree", false, "print the syntax tree instead of the rendered script")
	root.Flags().BoolVar(&tokens, "tokens", false, "print the token stream and stop")
	if err := root.Execute(); err != nil {
		if errors.Is(err, shparse.ErrSyntax) {
			fmt.Fprintln(os.Stderr, "Parsing error")
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func parseFiles(files []string, tree bool) error {
	if len(files) == 0 {
		script, err := shparse.Parse(os.Stdin)
		if err != nil {
			return err
		}
		show(script, tree)
		return nil
	}
	scripts := make([]*shparse.Script, len(files))
	var grp errgroup.Group
	for i, file := range files {
		i, file := i, file
		grp.Go(func() error {
			r, err := os.Open(file)
			if err != nil {
				return err
			}
			defer r.Close()
			script, err := shparse.Parse(r)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			scripts[i] = script
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}
	for _, script := range scripts {
		show(script, tree)
	}
	return nil
}

func show(script *shparse.Script, tree bool) {
	if tree {
		dumpScript(os.Stdout, script)
		return
	}
	fmt.Println(shparse.Format(script))
}

func scanFiles(files []string) error {
	if len(files) == 0 {
		return scanTokens(os.Stdin)
	}
	for _, file := range files {
		r, err := os.Open(file)
		if err != nil {
			return err
		}
		err = scanTokens(r)
		r.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func scanTokens(r io.Reader) error {
	scan, err := shparse.Scan(r)
	if err != nil {
		return err
	}
	for {
		tok := scan.Scan()
		fmt.Println(tok)
		if tok.Type == shparse.EOF {
			return nil
		}
	}
}

func dumpScript(w io.Writer, script *shparse.Script) {
	for _, n := range script.Cmds {
		switch n := n.(type) {
		case *shparse.FuncDecl:
			fmt.Fprintf(w, "function %s\n", n.Name)
			dumpCompound(w, n.Body, 1)
		case *shparse.List:
			dumpList(w, n, 0)
		}
	}
}

func dumpList(w io.Writer, list *shparse.List, depth int) {
	dumpPipeline(w, list.Head, depth)
	for list.Rest != nil {
		switch list.Op {
		case shparse.And:
			fmt.Fprintf(w, "%sand\n", pad(depth))
		case shparse.Or:
			fmt.Fprintf(w, "%sor\n", pad(depth))
		}
		list = list.Rest
		dumpPipeline(w, list.Head, depth)
	}
}

func dumpPipeline(w io.Writer, pl shparse.Pipeline, depth int) {
	if pl.Not {
		fmt.Fprintf(w, "%snot\n", pad(depth))
	}
	for _, cmd := range pl.Cmds {
		dumpCompound(w, cmd, depth)
	}
}

func dumpCompound(w io.Writer, cmd shparse.Compound, depth int) {
	switch c := cmd.Command.(type) {
	case *shparse.Simple:
		fmt.Fprintf(w, "%scommand: %s\n", pad(depth), shparse.Format(wrap(cmd)))
	case *shparse.WhileClause:
		fmt.Fprintf(w, "%swhile\n", pad(depth))
		dumpList(w, c.Cond, depth+1)
		fmt.Fprintf(w, "%sdo\n", pad(depth))
		dumpList(w, c.Body, depth+1)
	case *shparse.ForLoop:
		fmt.Fprintf(w, "%sfor %s\n", pad(depth), c.Ident)
		dumpList(w, c.Body, depth+1)
	case *shparse.ForExpr:
		fmt.Fprintf(w, "%sfor ((...))\n", pad(depth))
		dumpList(w, c.Body, depth+1)
	case *shparse.IfClause:
		fmt.Fprintf(w, "%sif\n", pad(depth))
		dumpList(w, c.Cond, depth+1)
		fmt.Fprintf(w, "%sthen\n", pad(depth))
		dumpList(w, c.Then, depth+1)
		if c.Else != nil {
			fmt.Fprintf(w, "%selse\n", pad(depth))
			dumpList(w, c.Else, depth+1)
		}
	case *shparse.CaseClause:
		fmt.Fprintf(w, "%scase\n", pad(depth))
		for _, item := range c.Items {
			fmt.Fprintf(w, "%sitem\n", pad(depth+1))
			if item.Body != nil {
				dumpList(w, item.Body, depth+2)
			}
		}
	case *shparse.ArithCmd:
		fmt.Fprintf(w, "%sarithmetic: %s\n", pad(depth), shparse.Format(wrap(cmd)))
	}
}

func wrap(cmd shparse.Compound) *shparse.Script {
	list := shparse.List{
		Head: shparse.Pipeline{Cmds: []shparse.Compound{cmd}},
	}
	return &shparse.Script{Cmds: []shparse.Node{&list}}
}

func pad(depth int) string {
	return strings.Repeat("  ", depth)
}
