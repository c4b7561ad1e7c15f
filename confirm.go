package walletapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
)

// Decision is the answer the user gives to a review.
type Decision int

const (
	Denied Decision = iota
	Approved
)

func (d Decision) String() string {
	if d == Approved {
		return "approved"
	}
	return "denied"
}

// Confirmer asks a human to approve a review. RequestApproval may block for
// as long as the user needs. Any error is treated as a denial.
type Confirmer interface {
	RequestApproval(ctx context.Context, review Review) (Decision, error)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, review Review) (Decision, error)

func (f ConfirmerFunc) RequestApproval(ctx context.Context, review Review) (Decision, error) {
	return f(ctx, review)
}

// PolicyConfirmer answers every review with the same decision. It is meant
// for scripted emulator runs.
type PolicyConfirmer struct {
	Decision Decision
}

func (p PolicyConfirmer) RequestApproval(ctx context.Context, review Review) (Decision, error) {

	slog.Debug("Policy decision", "Title", review.Title, "Decision", p.Decision)

	return p.Decision, nil

}

// LineReader is the input side of the console confirmer. *readline.Instance
// satisfies it.
type LineReader interface {
	Readline() (string, error)
}

// ConsoleConfirmer prints the review and waits for a y/n answer.
type ConsoleConfirmer struct {
	In  LineReader
	Out io.Writer
}

func (c *ConsoleConfirmer) RequestApproval(ctx context.Context, review Review) (Decision, error) {

	title := color.New(color.Bold, color.FgYellow)

	fmt.Fprintln(c.Out)
	title.Fprintln(c.Out, review.Title)

	for _, item := range review.Items {
		fmt.Fprintf(c.Out, "  %-8s %s\n", item.Key, item.Value)
	}

	for {

		if err := ctx.Err(); err != nil {
			return Denied, err
		}

		fmt.Fprint(c.Out, "Approve? [y/n] ")

		line, err := c.In.Readline()

		if errors.Is(err, io.EOF) {
			return Denied, nil
		}

		if err != nil {
			return Denied, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return Approved, nil
		case "n", "no":
			return Denied, nil
		}
	}

}
