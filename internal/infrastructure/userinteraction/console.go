package userinteraction

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"askbox/internal/application/port/output"
	"askbox/internal/domain/entity"
	"askbox/internal/infrastructure/markup"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	_ output.QuestionSource = (*Console)(nil)
	_ output.DisplayRegion  = (*Console)(nil)
	_ output.TriggerControl = (*Console)(nil)
)

// Console is the terminal version of the page: the question comes from a
// preset value or the reader, and the display region is the writer.
type Console struct {
	reader *bufio.Reader
	out    io.Writer
	logger output.LoggerPort

	preset    string
	hasPreset bool
	spinner   bool

	mu       sync.Mutex
	disabled bool
	active   *pterm.SpinnerPrinter
	pending  string
}

type ConsoleOption func(*Console)

// WithQuestion makes Question return q instead of reading the input.
func WithQuestion(q string) ConsoleOption {
	return func(c *Console) {
		c.preset = q
		c.hasPreset = true
	}
}

// WithSpinner shows transient text as a spinner while the trigger is disabled.
func WithSpinner(enabled bool) ConsoleOption {
	return func(c *Console) { c.spinner = enabled }
}

func WithLogger(l output.LoggerPort) ConsoleOption {
	return func(c *Console) { c.logger = l }
}

func NewConsole(in io.Reader, out io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{
		reader: bufio.NewReader(in),
		out:    out,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Console) Question() string {
	if c.hasPreset {
		return c.preset
	}

	fmt.Fprint(c.out, "Question: ")
	line, err := c.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		if c.logger != nil {
			c.logger.Warn("Failed to read question", "error", err)
		}
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}

func (c *Console) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.spinner && c.disabled {
		c.showTransient(text)
		return
	}
	c.stopSpinner()
	fmt.Fprintln(c.out, text)
}

func (c *Console) SetMarkup(m entity.Markup) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopSpinner()
	c.pending = ""

	doc, err := markup.Inspect(m)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("Failed to inspect markup", "error", err)
		}
		fmt.Fprintln(c.out, m.String())
		return
	}

	for _, pre := range doc.Preformatted {
		fmt.Fprintln(c.out, pre)
	}
	if len(doc.Links) > 0 {
		fmt.Fprintln(c.out)
	}
	label := color.New(color.FgCyan, color.Bold)
	link := color.New(color.Underline)
	for _, l := range doc.Links {
		label.Fprint(c.out, "Source: ")
		link.Fprintln(c.out, l.Href)
	}
}

func (c *Console) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = true
}

// Enable re-enables input. Text still showing in the spinner is final, so it
// is printed permanently.
func (c *Console) Enable() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.disabled = false
	pending := c.pending
	c.stopSpinner()
	if pending != "" {
		fmt.Fprintln(c.out, pending)
	}
}

func (c *Console) Disabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}

func (c *Console) showTransient(text string) {
	if c.active != nil {
		c.active.UpdateText(text)
		c.pending = text
		return
	}
	sp, err := pterm.DefaultSpinner.WithWriter(c.out).WithRemoveWhenDone(true).Start(text)
	if err != nil {
		fmt.Fprintln(c.out, text)
		return
	}
	c.active = sp
	c.pending = text
}

func (c *Console) stopSpinner() {
	c.pending = ""
	if c.active == nil {
		return
	}
	_ = c.active.Stop()
	c.active = nil
}
