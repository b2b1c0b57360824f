package di

import (
	"fmt"

	"askbox/internal/application/port/output"
	"askbox/internal/infrastructure/backend/httpask"
	"askbox/internal/infrastructure/logger"
	"askbox/internal/infrastructure/markup"
	"askbox/internal/usecase/ask"
)

type Container struct {
	Logger   output.LoggerPort
	Backend  output.AskBackend
	Renderer output.AnswerRenderer
}

type Config struct {
	Endpoint string
	LogLevel string
	LogFile  string
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(logger.Config{Level: cfg.LogLevel, Path: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	backend := httpask.NewClient(
		httpask.WithEndpoint(cfg.Endpoint),
		httpask.WithLogger(log.WithField("component", "backend")),
	)

	return &Container{
		Logger:   log,
		Backend:  backend,
		Renderer: markup.NewRenderer(),
	}, nil
}

// NewHandler wires a handler to one front-end's collaborators.
func (c *Container) NewHandler(source output.QuestionSource, display output.DisplayRegion, trigger output.TriggerControl) *ask.UseCase {
	return ask.New(ask.Deps{
		Source:   source,
		Display:  display,
		Trigger:  trigger,
		Backend:  c.Backend,
		Renderer: c.Renderer,
		Logger:   c.Logger.WithField("component", "ask"),
	})
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
