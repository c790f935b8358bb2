package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// PathPrompter asks for the export path on the terminal. An empty answer
// accepts the suggestion; "-" cancels.
type PathPrompter struct {
	reader *LineReader
	writer io.Writer
}

// NewPathPrompter creates a prompter reading from r and writing prompts to w.
func NewPathPrompter(r io.Reader, w io.Writer) *PathPrompter {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &PathPrompter{reader: NewLineReader(r), writer: w}
}

// PromptPath shows the suggested path and returns the user's choice.
func (p *PathPrompter) PromptPath(ctx context.Context, suggested string) (string, error) {
	prompt := FormatPrompt("Save quotation as") + SubtleStyle.Render("["+suggested+"] ")
	if _, err := fmt.Fprint(p.writer, prompt); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := p.reader.ReadLine(ctx)
	switch {
	case errors.Is(err, io.EOF):
		return "", nil
	case err != nil:
		return "", err
	case answer == "-":
		return "", nil
	case answer == "":
		return suggested, nil
	default:
		return answer, nil
	}
}
