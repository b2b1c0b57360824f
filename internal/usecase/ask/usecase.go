package ask

import (
	"context"
	"strings"

	"askbox/internal/application/port/input"
	"askbox/internal/application/port/output"
	"askbox/internal/domain/entity"
)

var _ input.AskHandler = (*UseCase)(nil)

type UseCase struct {
	source   output.QuestionSource
	display  output.DisplayRegion
	trigger  output.TriggerControl
	backend  output.AskBackend
	renderer output.AnswerRenderer
	logger   output.LoggerPort
}

type Deps struct {
	Source   output.QuestionSource
	Display  output.DisplayRegion
	Trigger  output.TriggerControl
	Backend  output.AskBackend
	Renderer output.AnswerRenderer
	Logger   output.LoggerPort
}

func New(deps Deps) *UseCase {
	return &UseCase{
		source:   deps.Source,
		display:  deps.Display,
		trigger:  deps.Trigger,
		backend:  deps.Backend,
		renderer: deps.Renderer,
		logger:   deps.Logger,
	}
}

// Handle runs one ask cycle and returns when the display holds its final
// content and the trigger is enabled again.
func (uc *UseCase) Handle(ctx context.Context) entity.Outcome {
	question := uc.source.Question()

	if strings.TrimSpace(question) == "" {
		uc.logger.Debug("Empty question rejected")
		uc.display.SetText(entity.PromptMessage)
		return entity.OutcomeRejected
	}

	uc.trigger.Disable()
	defer uc.trigger.Enable()

	uc.display.SetText(entity.ThinkingMessage)
	uc.logger.Info("Asking backend", "questionLen", len(question))

	switch res := uc.backend.Ask(ctx, entity.Question{Question: question}).(type) {
	case entity.Answered:
		uc.display.SetMarkup(uc.renderer.RenderAnswer(res.Answer))
		uc.logger.Info("Answer rendered", "answerLen", len(res.Answer.Answer), "hasSource", res.Answer.HasSource())
		return entity.OutcomeAnswered
	case entity.Failed:
		uc.display.SetText(entity.UnreachableMessage)
		uc.logger.Warn("Backend call failed", "kind", string(res.Kind), "error", res.Err)
		return entity.OutcomeFailed
	default:
		uc.display.SetText(entity.UnreachableMessage)
		uc.logger.Error("Unexpected backend result", "result", res)
		return entity.OutcomeFailed
	}
}

// Dispatch starts Handle on its own goroutine. Event bindings call it and
// return right away.
func (uc *UseCase) Dispatch(ctx context.Context) input.Task {
	t := &task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.outcome = uc.Handle(ctx)
	}()
	return t
}

type task struct {
	done    chan struct{}
	outcome entity.Outcome
}

func (t *task) Done() <-chan struct{} {
	return t.done
}

func (t *task) Wait() entity.Outcome {
	<-t.done
	return t.outcome
}
