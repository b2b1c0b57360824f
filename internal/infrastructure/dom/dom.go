//go:build js && wasm

// Package dom binds the ask handler to the page through syscall/js.
package dom

import (
	"context"
	"syscall/js"

	"askbox/internal/application/port/input"
	"askbox/internal/application/port/output"
	"askbox/internal/domain/entity"
	"askbox/internal/infrastructure/markup"
)

var (
	_ output.QuestionSource = (*Input)(nil)
	_ output.DisplayRegion  = (*Display)(nil)
	_ output.TriggerControl = (*Button)(nil)
)

const (
	PromptID     = "prompt"
	ResponseID   = "response"
	ButtonQuery  = "button"
	DispatchName = "askboxDispatch"
)

func document() js.Value {
	return js.Global().Get("document")
}

type Input struct {
	id string
}

func NewInput(id string) *Input {
	return &Input{id: id}
}

// Question reads the element's current value on every call.
func (i *Input) Question() string {
	el := document().Call("getElementById", i.id)
	if el.IsNull() || el.IsUndefined() {
		return ""
	}
	return el.Get("value").String()
}

type Display struct {
	id string
}

func NewDisplay(id string) *Display {
	return &Display{id: id}
}

func (d *Display) element() (js.Value, bool) {
	el := document().Call("getElementById", d.id)
	return el, !el.IsNull() && !el.IsUndefined()
}

func (d *Display) SetText(text string) {
	if el, ok := d.element(); ok {
		el.Set("innerText", text)
	}
}

func (d *Display) SetMarkup(m entity.Markup) {
	if el, ok := d.element(); ok {
		el.Set("innerHTML", markup.Clean(m, nil).String())
	}
}

type Button struct {
	query string
}

func NewButton(query string) *Button {
	return &Button{query: query}
}

func (b *Button) set(disabled bool) {
	el := document().Call("querySelector", b.query)
	if el.IsNull() || el.IsUndefined() {
		return
	}
	el.Set("disabled", disabled)
}

func (b *Button) Disable() { b.set(true) }
func (b *Button) Enable()  { b.set(false) }

// Bind installs window[name] so the page's click handler can start a cycle.
// The callback returns immediately; the cycle runs on its own goroutine.
// The returned func releases the callback.
func Bind(name string, handler input.AskHandler) func() {
	fn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		handler.Dispatch(context.Background())
		return nil
	})
	js.Global().Set(name, fn)
	return func() {
		js.Global().Delete(name)
		fn.Release()
	}
}
