package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

const defaultWrapWidth = 80

// DetectMarkdownStyle picks a glamour style. GLAMOUR_STYLE wins; otherwise the
// terminal background is queried, falling back to "dark" when it does not answer
// within timeout.
func DetectMarkdownStyle(timeout time.Duration) string {
	style := os.Getenv("GLAMOUR_STYLE")
	if style != "" && style != "auto" {
		return style
	}

	ch := make(chan string, 1)
	go func() {
		out := termenv.NewOutput(os.Stdout)
		if out.HasDarkBackground() {
			ch <- "dark"
			return
		}
		ch <- "light"
	}()

	select {
	case s := <-ch:
		return s
	case <-time.After(timeout):
		return "dark"
	}
}

// RenderMarkdown renders note content for the terminal. A non-positive width
// uses the default wrap width.
func RenderMarkdown(content, style string, width int) (string, error) {
	if width <= 0 {
		width = defaultWrapWidth
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
