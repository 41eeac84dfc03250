package storefront

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Notifier is how the app talks to the person at the keyboard: passing
// toasts, a blocking alert, and a yes/no confirmation.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
	Alert(msg string)
	Confirm(prompt string) bool
}

// TermNotifier prints notifications to a writer and reads confirmations
// from a reader, line-buffered.
type TermNotifier struct {
	Out io.Writer
	In  *bufio.Reader
}

func NewTermNotifier(out io.Writer, in io.Reader) *TermNotifier {
	return &TermNotifier{Out: out, In: bufio.NewReader(in)}
}

func (n *TermNotifier) Success(msg string) { fmt.Fprintf(n.Out, "ok: %s\n", msg) }
func (n *TermNotifier) Error(msg string)   { fmt.Fprintf(n.Out, "error: %s\n", msg) }
func (n *TermNotifier) Info(msg string)    { fmt.Fprintf(n.Out, "%s\n", msg) }

func (n *TermNotifier) Alert(msg string) {
	fmt.Fprintf(n.Out, "!! %s\n[press enter]\n", msg)
	_, _ = n.In.ReadString('\n')
}

func (n *TermNotifier) Confirm(prompt string) bool {
	fmt.Fprintf(n.Out, "%s [y/N] ", prompt)
	line, err := n.In.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes" || answer == "s" || answer == "sim"
}
