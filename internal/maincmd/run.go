package maincmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mna/mainer"

	"github.com/paulocustodio/bfpp/internal/diag"
	"github.com/paulocustodio/bfpp/internal/macrotab"
	"github.com/paulocustodio/bfpp/internal/output"
	"github.com/paulocustodio/bfpp/internal/parser"
	"github.com/paulocustodio/bfpp/internal/scanner"
	"github.com/paulocustodio/bfpp/internal/source"
	"github.com/paulocustodio/bfpp/internal/tape"
	"github.com/paulocustodio/bfpp/internal/token"
)

// Run expands the given files and prints the resulting Brainfuck program.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return c.runOrExpand(ctx, stdio, args)
}

// Expand is an alias of Run, for users who think of the pipeline in terms
// of macro expansion rather than compilation.
func (c *Cmd) Expand(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return c.runOrExpand(ctx, stdio, args)
}

func (c *Cmd) runOrExpand(_ context.Context, stdio mainer.Stdio, args []string) error {
	out, diags, err := RunFiles(c.Defines, c.StackBase, args)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	if diags.HasErrors() {
		diags.Sort()
		fmt.Fprint(stdio.Stderr, diags.String())
		return diags.Err()
	}

	w := stdio.Stdout
	var f *os.File
	if c.Output != "" {
		f, err = os.Create(c.Output)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
		defer f.Close()
		w = f
	}
	fmt.Fprint(w, out.PrettyPrint())
	log.Printf("[DEBUG] emitted %d instructions", out.Len())
	return nil
}

// RunFiles drives the full pipeline over files: predefining macros,
// running the parser to completion, and folding adjacent tape movements
// in the emitted output. It always returns the output buffer and
// diagnostics reporter so the caller can decide how to report errors.
func RunFiles(defines string, stackBase int, files []string) (*output.Buffer, *diag.Reporter, error) {
	diags := &diag.Reporter{}
	macros := macrotab.New()
	tp := tape.New()
	if stackBase > 0 {
		tp.SetStackBase(stackBase)
	}
	out := output.New(diags)

	if err := applyDefines(macros, defines); err != nil {
		return out, diags, err
	}

	fs := source.NewFileStack()
	for i := len(files) - 1; i >= 0; i-- {
		if ok, isCycle := fs.PushFile(files[i]); !ok {
			if isCycle {
				return out, diags, fmt.Errorf("cannot open %q: include cycle", files[i])
			}
			return out, diags, fmt.Errorf("cannot open %q", files[i])
		}
	}

	p := parser.New(fs, macros, tp, out, diags)
	p.Run()
	out.OptimizeTapeMovements()
	return out, diags, nil
}

// applyDefines predefines one object-like macro per comma-separated "name"
// or "name=value" entry, in left-to-right order, evaluating value (if
// present) as a bare integer literal.
func applyDefines(macros *macrotab.Table, defines string) error {
	if defines == "" {
		return nil
	}
	for _, d := range strings.Split(defines, ",") {
		name, value, hasValue := strings.Cut(d, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("invalid -D argument %q: missing macro name", d)
		}
		var body []token.Token
		if hasValue {
			toks := scanner.ScanString(strings.TrimSpace(value), "<command-line>")
			if len(toks) != 2 || toks[0].Kind != token.Integer {
				return fmt.Errorf("invalid -D argument %q: value must be an integer", d)
			}
			body = []token.Token{toks[0]}
		} else {
			body = []token.Token{token.MakeInt(1, token.Location{Filename: "<command-line>"})}
		}
		macros.Define(&macrotab.Macro{Name: name, Body: body, Loc: token.Location{Filename: "<command-line>"}})
	}
	return nil
}
