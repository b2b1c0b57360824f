package ask

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"askbox/internal/domain/entity"
	"askbox/internal/infrastructure/logger"
	"askbox/internal/infrastructure/markup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	value string
}

func (f *fakeSource) Question() string { return f.value }

type fakeDisplay struct {
	mu     sync.Mutex
	text   string
	markup entity.Markup
	writes []string
}

func (f *fakeDisplay) SetText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
	f.markup = ""
	f.writes = append(f.writes, "text:"+text)
}

func (f *fakeDisplay) SetMarkup(m entity.Markup) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = ""
	f.markup = m
	f.writes = append(f.writes, "markup")
}

func (f *fakeDisplay) snapshot() (string, entity.Markup) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text, f.markup
}

type fakeTrigger struct {
	mu       sync.Mutex
	disabled bool
	toggles  int
}

func (f *fakeTrigger) Disable() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disabled = true
	f.toggles++
}

func (f *fakeTrigger) Enable() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disabled = false
	f.toggles++
}

func (f *fakeTrigger) state() (bool, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disabled, f.toggles
}

type fakeBackend struct {
	mu        sync.Mutex
	calls     []entity.Question
	result    entity.Result
	started   chan struct{}
	release   chan struct{}
	beforeRet func()
}

func (f *fakeBackend) Ask(ctx context.Context, q entity.Question) entity.Result {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	f.mu.Unlock()

	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	if f.beforeRet != nil {
		f.beforeRet()
	}
	return f.result
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fixture struct {
	source  *fakeSource
	display *fakeDisplay
	trigger *fakeTrigger
	backend *fakeBackend
	uc      *UseCase
}

func newFixture(question string, result entity.Result) *fixture {
	f := &fixture{
		source:  &fakeSource{value: question},
		display: &fakeDisplay{},
		trigger: &fakeTrigger{},
		backend: &fakeBackend{result: result},
	}
	f.uc = New(Deps{
		Source:   f.source,
		Display:  f.display,
		Trigger:  f.trigger,
		Backend:  f.backend,
		Renderer: markup.NewRenderer(),
		Logger:   logger.NewNopLogger(),
	})
	return f
}

func TestHandle_EmptyQuestion(t *testing.T) {
	for _, q := range []string{"", " ", "\t", "\n  \r\n", "  "} {
		t.Run(q, func(t *testing.T) {
			f := newFixture(q, entity.Answered{Answer: entity.Answer{Answer: "unused"}})

			outcome := f.uc.Handle(context.Background())

			assert.Equal(t, entity.OutcomeRejected, outcome)
			assert.Equal(t, 0, f.backend.callCount())
			text, m := f.display.snapshot()
			assert.Equal(t, entity.PromptMessage, text)
			assert.Empty(t, m)
			disabled, toggles := f.trigger.state()
			assert.False(t, disabled)
			assert.Zero(t, toggles, "trigger must not be touched")
		})
	}
}

func TestHandle_EmptyQuestion_LeavesDisabledTriggerAlone(t *testing.T) {
	f := newFixture("   ", nil)
	f.trigger.disabled = true

	f.uc.Handle(context.Background())

	disabled, toggles := f.trigger.state()
	assert.True(t, disabled)
	assert.Zero(t, toggles)
}

func TestHandle_AnswerWithSource(t *testing.T) {
	f := newFixture("what is it?", entity.Answered{Answer: entity.Answer{Answer: "42", Source: "http://example.com"}})

	outcome := f.uc.Handle(context.Background())
	require.Equal(t, entity.OutcomeAnswered, outcome)

	_, m := f.display.snapshot()
	doc, err := markup.Inspect(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, doc.Preformatted)
	require.Len(t, doc.Links, 1)
	assert.Equal(t, "http://example.com", doc.Links[0].Href)
	assert.Equal(t, "http://example.com", doc.Links[0].Text)
	assert.Equal(t, "_blank", doc.Links[0].Target)

	disabled, _ := f.trigger.state()
	assert.False(t, disabled)
}

func TestHandle_AnswerWithoutSource(t *testing.T) {
	f := newFixture("hi", entity.Answered{Answer: entity.Answer{Answer: "hello"}})

	require.Equal(t, entity.OutcomeAnswered, f.uc.Handle(context.Background()))

	_, m := f.display.snapshot()
	doc, err := markup.Inspect(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, doc.Preformatted)
	assert.Empty(t, doc.Links)
}

func TestHandle_BackendFailure(t *testing.T) {
	kinds := []entity.FailureKind{entity.FailureTransport, entity.FailureDecode, entity.FailureMissingAnswer}
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			f := newFixture("ping", entity.Failed{Kind: kind, Err: errors.New("boom")})

			outcome := f.uc.Handle(context.Background())

			assert.Equal(t, entity.OutcomeFailed, outcome)
			text, m := f.display.snapshot()
			assert.Equal(t, entity.UnreachableMessage, text)
			assert.Empty(t, m)
			disabled, toggles := f.trigger.state()
			assert.False(t, disabled)
			assert.Equal(t, 2, toggles)
		})
	}
}

func TestHandle_SendsRawQuestion(t *testing.T) {
	f := newFixture("  padded  ", entity.Answered{Answer: entity.Answer{Answer: "ok"}})

	f.uc.Handle(context.Background())

	require.Equal(t, 1, f.backend.callCount())
	assert.Equal(t, "  padded  ", f.backend.calls[0].Question)
}

func TestHandle_WriteOrder(t *testing.T) {
	f := newFixture("q", entity.Answered{Answer: entity.Answer{Answer: "a"}})
	f.backend.beforeRet = func() {
		disabled, _ := f.trigger.state()
		assert.True(t, disabled, "trigger must be disabled while the request is outstanding")
	}

	f.uc.Handle(context.Background())

	assert.Equal(t, []string{"text:" + entity.ThinkingMessage, "markup"}, f.display.writes)
}

func TestHandle_ReenablesTriggerOnPanic(t *testing.T) {
	f := newFixture("q", nil)
	f.backend.beforeRet = func() { panic("collaborator exploded") }

	assert.Panics(t, func() { f.uc.Handle(context.Background()) })

	disabled, _ := f.trigger.state()
	assert.False(t, disabled)
}

func TestHandle_ReadsQuestionEachTime(t *testing.T) {
	f := newFixture("", entity.Answered{Answer: entity.Answer{Answer: "a"}})

	assert.Equal(t, entity.OutcomeRejected, f.uc.Handle(context.Background()))

	f.source.value = "now filled"
	assert.Equal(t, entity.OutcomeAnswered, f.uc.Handle(context.Background()))
	assert.Equal(t, 1, f.backend.callCount())
}

func TestDispatch_PlaceholderWhilePending(t *testing.T) {
	f := newFixture("q", entity.Failed{Kind: entity.FailureTransport})
	f.backend.started = make(chan struct{})
	f.backend.release = make(chan struct{})

	task := f.uc.Dispatch(context.Background())

	select {
	case <-f.backend.started:
	case <-time.After(2 * time.Second):
		t.Fatal("backend was never called")
	}

	text, _ := f.display.snapshot()
	assert.Equal(t, entity.ThinkingMessage, text)
	disabled, _ := f.trigger.state()
	assert.True(t, disabled)

	select {
	case <-task.Done():
		t.Fatal("task finished before the backend answered")
	default:
	}

	close(f.backend.release)

	assert.Equal(t, entity.OutcomeFailed, task.Wait())
	text, _ = f.display.snapshot()
	assert.Equal(t, entity.UnreachableMessage, text)
	disabled, _ = f.trigger.state()
	assert.False(t, disabled)
}

func TestDispatch_Rejected(t *testing.T) {
	f := newFixture("", nil)

	task := f.uc.Dispatch(context.Background())

	assert.Equal(t, entity.OutcomeRejected, task.Wait())
	<-task.Done()
	assert.Equal(t, 0, f.backend.callCount())
}
