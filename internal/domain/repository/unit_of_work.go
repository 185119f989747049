package repository

import (
	"context"
)

// Repositories набор репозиториев, привязанных к одной транзакции
type Repositories struct {
	Users        UserRepository
	Channels     ChannelRepository
	Questions    QuestionRepository
	Participants ParticipantRepository
	Answers      AnswerRepository
}

// UnitOfWork выполняет fn в рамках одной транзакции.
// Ошибка из fn (или паника) откатывает транзакцию, nil - фиксирует.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}
