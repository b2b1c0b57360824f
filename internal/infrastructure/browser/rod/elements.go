package rod

import (
	"askbox/internal/application/port/output"
	"askbox/internal/domain/entity"
	"askbox/internal/infrastructure/markup"

	"github.com/go-rod/rod"
)

var (
	_ output.QuestionSource = (*Input)(nil)
	_ output.DisplayRegion  = (*Display)(nil)
	_ output.TriggerControl = (*Button)(nil)
)

const (
	promptSelector   = "#prompt"
	responseSelector = "#response"
	buttonSelector   = "button"
)

// element resolves its selector on every use, the same way the page script
// looks elements up on every click.
type element struct {
	selector string
	find     func() (*rod.Element, error)
	logger   output.LoggerPort
}

func (e *element) eval(js string, params ...interface{}) {
	el, err := e.find()
	if err != nil {
		e.logger.Error("Element not found", "selector", e.selector, "error", err)
		return
	}
	if _, err := el.Eval(js, params...); err != nil {
		e.logger.Error("Element update failed", "selector", e.selector, "error", err)
	}
}

type Input struct {
	element *element
}

func (i *Input) Question() string {
	el, err := i.element.find()
	if err != nil {
		i.element.logger.Error("Element not found", "selector", i.element.selector, "error", err)
		return ""
	}
	v, err := el.Property("value")
	if err != nil {
		i.element.logger.Error("Read value failed", "selector", i.element.selector, "error", err)
		return ""
	}
	return v.Str()
}

type Display struct {
	element *element
}

func (d *Display) SetText(text string) {
	d.element.eval(`function (t) { this.innerText = t }`, text)
}

func (d *Display) SetMarkup(m entity.Markup) {
	d.element.eval(`function (h) { this.innerHTML = h }`, markup.Clean(m, nil).String())
}

// Text returns the region's rendered text.
func (d *Display) Text() string {
	el, err := d.element.find()
	if err != nil {
		return ""
	}
	text, err := el.Text()
	if err != nil {
		return ""
	}
	return text
}

// Markup returns the region's innerHTML.
func (d *Display) Markup() entity.Markup {
	el, err := d.element.find()
	if err != nil {
		return ""
	}
	res, err := el.Eval(`function () { return this.innerHTML }`)
	if err != nil {
		return ""
	}
	return entity.Markup(res.Value.Str())
}

type Button struct {
	element *element
}

func (b *Button) Disable() {
	b.element.eval(`function (d) { this.disabled = d }`, true)
}

func (b *Button) Enable() {
	b.element.eval(`function (d) { this.disabled = d }`, false)
}

func (b *Button) Disabled() bool {
	el, err := b.element.find()
	if err != nil {
		return false
	}
	v, err := el.Property("disabled")
	if err != nil {
		return false
	}
	return v.Bool()
}
