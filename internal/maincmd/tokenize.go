package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/paulocustodio/bfpp/internal/comment"
	"github.com/paulocustodio/bfpp/internal/scanner"
	"github.com/paulocustodio/bfpp/internal/source"
	"github.com/paulocustodio/bfpp/internal/token"
)

// Tokenize prints the raw token stream for the given files: comments are
// stripped but no macro is expanded and no directive is interpreted.
func (c *Cmd) Tokenize(_ context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(stdio, args)
}

// TokenizeFiles scans every file in order and writes one line per token to
// stdio.Stdout, stopping at the first file it cannot open.
func TokenizeFiles(stdio mainer.Stdio, files []string) error {
	fs := source.NewFileStack()
	for i := len(files) - 1; i >= 0; i-- {
		if ok, isCycle := fs.PushFile(files[i]); !ok {
			if isCycle {
				err := fmt.Errorf("cannot open %q: include cycle", files[i])
				fmt.Fprintln(stdio.Stderr, err)
				return err
			}
			err := fmt.Errorf("cannot open %q", files[i])
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
	}

	stripper := comment.New(fs)
	lexer := scanner.NewLexer(stripper, fs.Filename)
	for {
		tok := lexer.Get()
		printToken(stdio, tok)
		if tok.Kind == token.EndOfInput {
			return nil
		}
	}
}

func printToken(stdio mainer.Stdio, tok token.Token) {
	switch tok.Kind {
	case token.Integer:
		fmt.Fprintf(stdio.Stdout, "%s: %s %d\n", tok.Loc, tok.Kind, tok.Int)
	case token.String:
		fmt.Fprintf(stdio.Stdout, "%s: %s %q\n", tok.Loc, tok.Kind, tok.Str)
	case token.EndOfLine, token.EndOfInput:
		fmt.Fprintf(stdio.Stdout, "%s: %s\n", tok.Loc, tok.Kind)
	default:
		fmt.Fprintf(stdio.Stdout, "%s: %s %q\n", tok.Loc, tok.Kind, tok.Text)
	}
}
