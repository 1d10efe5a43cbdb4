package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// PreviewMarkdownInput renders Body; HTML receives the output.
type PreviewMarkdownInput struct {
	Body string
	HTML *string
}

type markdownRenderer interface {
	RenderMarkdown(body string) (string, error)
}

// PreviewMarkdownCommand renders a template body without saving it.
type PreviewMarkdownCommand struct {
	renderer markdownRenderer
}

// NewPreviewMarkdownCommand creates the command.
func NewPreviewMarkdownCommand(renderer markdownRenderer) *PreviewMarkdownCommand {
	return &PreviewMarkdownCommand{renderer: renderer}
}

var _ gocommand.Commander[PreviewMarkdownInput] = (*PreviewMarkdownCommand)(nil)

// Execute renders the body.
func (c *PreviewMarkdownCommand) Execute(_ context.Context, msg PreviewMarkdownInput) error {
	if c.renderer == nil {
		return errors.New("preview command requires renderer")
	}
	html, err := c.renderer.RenderMarkdown(msg.Body)
	if err != nil {
		return err
	}
	if msg.HTML != nil {
		*msg.HTML = html
	}
	return nil
}
