// Package source implements the pushable stack of input files the scanner
// reads from. It is deliberately thin: comment stripping, tokenizing and
// diagnostics all live in other packages.
package source

import (
	"bufio"
	"io"
	"os"

	"github.com/paulocustodio/bfpp/internal/token"
)

// inputFile wraps one open stream and tracks its own line counter, one
// logical line at a time rather than rune-by-rune.
type inputFile struct {
	filename string
	r        *bufio.Reader
	closer   io.Closer // nil for streams the stack does not own (e.g. stdin)
	lineNum  int
	eof      bool
}

// getLine reads one line (stripping the trailing newline, and a trailing
// '\r' from CRLF line endings). It reports false only once the file is
// fully exhausted; a final line with no trailing newline is still returned.
func (f *inputFile) getLine() (string, bool) {
	if f.eof {
		return "", false
	}
	line, err := f.r.ReadString('\n')
	if err != nil {
		f.eof = true
		if len(line) == 0 {
			return "", false
		}
	}
	f.lineNum++
	line = trimEOL(line)
	return line, true
}

func trimEOL(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	if n := len(s); n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}

func (f *inputFile) close() {
	if f.closer != nil {
		f.closer.Close()
	}
}

// FileStack is a pushable stack of input sources. #include pushes a new
// file in front of the current one; reaching its end-of-file pops back to
// the including file automatically, the same way the original bfpp
// FileStack::getline falls through to the parent file.
type FileStack struct {
	stack []*inputFile
	open  map[string]bool // filenames currently open, for include-loop detection
}

// NewFileStack returns an empty file stack.
func NewFileStack() *FileStack {
	return &FileStack{open: make(map[string]bool)}
}

// PushFile opens filename and pushes it. It reports whether the file was
// successfully opened; the caller is expected to emit a diagnostic on
// failure (open error or include cycle) using the provided location.
func (fs *FileStack) PushFile(filename string) (ok bool, isCycle bool) {
	if fs.open[filename] {
		return false, true
	}
	f, err := os.Open(filename)
	if err != nil {
		return false, false
	}
	fs.push(filename, bufio.NewReader(f), f)
	return true, false
}

// PushStream pushes an already-open reader under a virtual filename (used
// for stdin, and for tests). The stack does not own the stream and will not
// close it on pop.
func (fs *FileStack) PushStream(r io.Reader, virtualName string) {
	fs.push(virtualName, bufio.NewReader(r), nil)
}

func (fs *FileStack) push(filename string, r *bufio.Reader, closer io.Closer) {
	fs.open[filename] = true
	fs.stack = append(fs.stack, &inputFile{filename: filename, r: r, closer: closer, lineNum: 1})
}

// PopFile closes and discards the top-of-stack file.
func (fs *FileStack) PopFile() {
	if len(fs.stack) == 0 {
		return
	}
	top := fs.stack[len(fs.stack)-1]
	top.close()
	delete(fs.open, top.filename)
	fs.stack = fs.stack[:len(fs.stack)-1]
}

// GetLine reads the next logical line, popping exhausted files and falling
// through to the parent file, recursively, until a line is produced or the
// whole stack is empty.
func (fs *FileStack) GetLine() (string, bool) {
	for len(fs.stack) > 0 {
		top := fs.stack[len(fs.stack)-1]
		if line, ok := top.getLine(); ok {
			return line, true
		}
		fs.PopFile()
	}
	return "", false
}

// IsEOF reports true only once the stack itself is empty: a nested
// #include hitting EOF does not end the run, only popping the last file
// does.
func (fs *FileStack) IsEOF() bool {
	return len(fs.stack) == 0
}

// Filename returns the current top-of-stack filename, or "" if the stack is
// empty.
func (fs *FileStack) Filename() string {
	if len(fs.stack) == 0 {
		return ""
	}
	return fs.stack[len(fs.stack)-1].filename
}

// Line returns the current top-of-stack line number, or 0 if empty.
func (fs *FileStack) Line() int {
	if len(fs.stack) == 0 {
		return 0
	}
	return fs.stack[len(fs.stack)-1].lineNum
}

// Loc builds a Location at the given column using the current top-of-stack
// filename/line.
func (fs *FileStack) Loc(column int) token.Location {
	return token.Location{Filename: fs.Filename(), Line: fs.Line(), Column: column}
}

// Depth returns how many files are currently open (nested #includes).
func (fs *FileStack) Depth() int { return len(fs.stack) }
