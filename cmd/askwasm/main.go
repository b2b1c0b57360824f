//go:build js && wasm

package main

import (
	"askbox/internal/infrastructure/backend/httpask"
	"askbox/internal/infrastructure/dom"
	"askbox/internal/infrastructure/logger"
	"askbox/internal/infrastructure/markup"
	"askbox/internal/usecase/ask"
)

func main() {
	log, err := logger.NewLoggerAdapter(logger.Config{Level: "info", Path: "stdout"})
	if err != nil {
		println("logger unavailable:", err.Error())
		log = logger.NewNopLogger()
	}

	handler := ask.New(ask.Deps{
		Source:   dom.NewInput(dom.PromptID),
		Display:  dom.NewDisplay(dom.ResponseID),
		Trigger:  dom.NewButton(dom.ButtonQuery),
		Backend:  httpask.NewClient(httpask.WithLogger(log)),
		Renderer: markup.NewRenderer(),
		Logger:   log,
	})

	dom.Bind(dom.DispatchName, handler)
	log.Info("Ask handler bound", "binding", dom.DispatchName)

	select {}
}
