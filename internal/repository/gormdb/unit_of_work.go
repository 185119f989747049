package gormdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-channels-api/internal/domain/repository"
)

// NewRepositories собирает репозитории поверх переданного соединения или транзакции
func NewRepositories(db *gorm.DB) repository.Repositories {
	return repository.Repositories{
		Users:        NewUserRepo(db),
		Channels:     NewChannelRepo(db),
		Questions:    NewQuestionRepo(db),
		Participants: NewParticipantRepo(db),
		Answers:      NewAnswerRepo(db),
	}
}

// UnitOfWork реализует repository.UnitOfWork через транзакции GORM
type UnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork создает UnitOfWork поверх пула соединений
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do выполняет fn в одной транзакции. Каждый вызов получает свой набор репозиториев.
func (u *UnitOfWork) Do(ctx context.Context, fn func(repos repository.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
