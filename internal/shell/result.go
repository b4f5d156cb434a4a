package shell

import (
	"fmt"
	"io"
)

// Result is the outcome of a shell command.
type Result interface {
	// Print writes the result for a terminal.
	Print(w io.Writer)
	// IsExit reports whether the shell should stop.
	IsExit() bool
}

// ErrorResult holds a failed command error.
type ErrorResult struct {
	Err error
}

// Print implements [Result].
func (e ErrorResult) Print(w io.Writer) {
	fmt.Fprintf(w, "error: %v\n", e.Err)
}

// IsExit implements [Result].
func (e ErrorResult) IsExit() bool {
	return false
}

// ExitResult stops the shell.
type ExitResult struct{}

// Print implements [Result].
func (e ExitResult) Print(io.Writer) {}

// IsExit implements [Result].
func (e ExitResult) IsExit() bool {
	return true
}

// HelpResult lists the shell commands.
type HelpResult struct{}

// Print implements [Result].
func (h HelpResult) Print(w io.Writer) {
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  .help                      Show this help message")
	fmt.Fprintln(w, "  .exit                      Exit the shell")
	fmt.Fprintln(w, "  .find [query] [options]    Print matching documents")
	fmt.Fprintln(w, "  .count [query]             Print the number of matching documents")
	fmt.Fprintln(w, "  .insert <doc|[docs]>       Insert one document or all of a list")
	fmt.Fprintln(w, "  .update <query> <patch>    Merge patch into matching documents")
	fmt.Fprintln(w, "  .remove <query>            Remove matching documents")
	fmt.Fprintln(w, "  .clear                     Remove every document")
	fmt.Fprintln(w, "  .save [file]               Write every document to file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments are JSON objects. Find options:")
	fmt.Fprintln(w, `  {"sort":"age:-1,name","skip":10,"limit":5,"fields":{"name":1}}`)
	fmt.Fprintln(w, `Dates are written as {"$$date":<unix milliseconds>}.`)
}

// IsExit implements [Result].
func (h HelpResult) IsExit() bool {
	return false
}

// DocsResult holds serialized documents, one per line.
type DocsResult struct {
	Lines [][]byte
}

// Print implements [Result].
func (d DocsResult) Print(w io.Writer) {
	for _, line := range d.Lines {
		fmt.Fprintf(w, "%s\n", line)
	}
}

// IsExit implements [Result].
func (d DocsResult) IsExit() bool {
	return false
}

// CountResult holds a number of documents.
type CountResult struct {
	N int64
}

// Print implements [Result].
func (c CountResult) Print(w io.Writer) {
	fmt.Fprintln(w, c.N)
}

// IsExit implements [Result].
func (c CountResult) IsExit() bool {
	return false
}

// IDsResult holds the ids of inserted documents.
type IDsResult struct {
	IDs []string
}

// Print implements [Result].
func (i IDsResult) Print(w io.Writer) {
	for _, id := range i.IDs {
		fmt.Fprintln(w, id)
	}
}

// IsExit implements [Result].
func (i IDsResult) IsExit() bool {
	return false
}

// WriteResult holds the number of documents touched by a mutation.
type WriteResult struct {
	Op string
	N  int64
}

// Print implements [Result].
func (r WriteResult) Print(w io.Writer) {
	fmt.Fprintf(w, "%s %d\n", r.Op, r.N)
}

// IsExit implements [Result].
func (r WriteResult) IsExit() bool {
	return false
}

// SaveResult reports a written file.
type SaveResult struct {
	File string
}

// Print implements [Result].
func (s SaveResult) Print(w io.Writer) {
	fmt.Fprintf(w, "saved %s\n", s.File)
}

// IsExit implements [Result].
func (s SaveResult) IsExit() bool {
	return false
}
