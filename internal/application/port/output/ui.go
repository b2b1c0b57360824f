package output

import "askbox/internal/domain/entity"

type QuestionSource interface {
	Question() string
}

type DisplayRegion interface {
	SetText(text string)
	SetMarkup(markup entity.Markup)
}

type TriggerControl interface {
	Disable()
	Enable()
}

type AnswerRenderer interface {
	RenderAnswer(answer entity.Answer) entity.Markup
}
