// Command spc drives the lexer+preprocessor pipeline over one or more
// SourcePawn source files and prints the resulting token stream or
// diagnostics. Laid out the way isaacev-Plaid_v1/plaid.go structures its
// urfave/cli commands: one subcommand, a handful of boolean flags wired
// straight to pipeline options, and a plain stdout/stderr report at the end.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/assyrianic/spc/internal/compiler"
	"github.com/assyrianic/spc/internal/lexer"
	"github.com/assyrianic/spc/internal/preprocessor"
	"github.com/assyrianic/spc/internal/source"
	"github.com/assyrianic/spc/internal/token"
)

func main() {
	app := cli.NewApp()
	app.Name = "spc"
	app.Usage = "SourcePawn lexer and preprocessor front end"
	app.Version = "0.1.0"

	app.Commands = []cli.Command{
		{
			Name:      "lex",
			Aliases:   []string{"l"},
			Usage:     "tokenize one or more source files and print the resulting stream",
			ArgsUsage: "FILE...",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "no-color", Usage: "disable ANSI colors in diagnostic output"},
				cli.BoolFlag{Name: "trace-comments", Usage: "attribute front/tail comment blocks"},
				cli.BoolFlag{Name: "dump-comments", Usage: "print attributed comment blocks after the token stream"},
				cli.StringSliceFlag{Name: "include, I", Usage: "additional directory to search for <...> includes"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() == 0 {
					return cli.NewExitError("spc lex: at least one FILE is required", 1)
				}
				for _, path := range c.Args() {
					if err := runLex(c, path); err != nil {
						return cli.NewExitError(err.Error(), 1)
					}
				}
				return nil
			},
		},
	}

	app.Action = func(c *cli.Context) error {
		return cli.ShowAppHelp(c)
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runLex(c *cli.Context, path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	cc := compiler.New()
	cc.Reporter.NoColor = c.Bool("no-color")

	loader := &diskLoader{includeDirs: c.StringSlice("include")}
	pp := preprocessor.New(cc, loader)
	file := source.NewFile(path, string(contents))
	pp.Start(lexer.Options{TraceComments: c.Bool("trace-comments")}, file)

	for {
		tok := pp.Current().Next()
		if tok.Kind == token.KindEOF {
			break
		}
		printToken(cc, tok)
	}

	if c.Bool("dump-comments") {
		for _, rec := range pp.Comments() {
			label := "front"
			if rec.Pos == lexer.CommentTail {
				label = "tail"
			}
			for _, b := range rec.Blocks {
				fmt.Printf("%s comment: lines %d-%d\n", label, b.Start.Line, b.End.Line)
			}
		}
	}

	if out := cc.Reporter.Render(); out != "" {
		fmt.Fprint(os.Stderr, out)
	}
	if cc.Reporter.HasErrors() {
		return fmt.Errorf("%s: lexing failed", path)
	}
	return nil
}

func printToken(cc *compiler.Context, tok token.Token) {
	switch tok.Kind {
	case token.KindName, token.KindLabel, token.KindStringLiteral:
		fmt.Printf("%-18s %s\n", tok.Kind, cc.Atoms.String(tok.Atom))
	case token.KindIntegerLiteral, token.KindHexLiteral:
		fmt.Printf("%-18s %d\n", tok.Kind, tok.Int)
	case token.KindFloatLiteral:
		fmt.Printf("%-18s %g\n", tok.Kind, tok.Float)
	case token.KindCharLiteral:
		fmt.Printf("%-18s %q\n", tok.Kind, tok.Char)
	default:
		fmt.Printf("%-18s\n", tok.Kind)
	}
}

// diskLoader implements preprocessor.FileLoader against the real
// filesystem: quoted includes resolve relative to the including file,
// angle-bracket includes search the configured -I directories.
type diskLoader struct {
	includeDirs []string
}

func (d *diskLoader) Load(filename, currentPath string, system bool) (string, string, bool) {
	var candidates []string
	if !system {
		candidates = append(candidates, filepath.Join(filepath.Dir(currentPath), filename))
	}
	for _, dir := range d.includeDirs {
		candidates = append(candidates, filepath.Join(dir, filename))
	}
	if !system && len(d.includeDirs) == 0 {
		candidates = append(candidates, filename)
	}

	for _, candidate := range candidates {
		b, err := os.ReadFile(candidate)
		if err == nil {
			return candidate, string(b), true
		}
	}
	return "", "", false
}
