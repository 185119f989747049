package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
	"github.com/yourusername/quiz-channels-api/internal/domain/repository"
)

// ============================================================================
// Моки репозиториев для тестов сервисов
// ============================================================================

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetAdminByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetAdminByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) ListAdmins() ([]entity.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(userID uint, newPassword string) error {
	args := m.Called(userID, newPassword)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockChannelRepository реализует repository.ChannelRepository
type MockChannelRepository struct {
	mock.Mock
}

func (m *MockChannelRepository) Create(channel *entity.Channel) error {
	args := m.Called(channel)
	return args.Error(0)
}

func (m *MockChannelRepository) GetByID(id uint) (*entity.Channel, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Channel), args.Error(1)
}

func (m *MockChannelRepository) GetByCode(code string) (*entity.Channel, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Channel), args.Error(1)
}

func (m *MockChannelRepository) GetByName(name string) (*entity.Channel, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Channel), args.Error(1)
}

func (m *MockChannelRepository) ExistsByCode(code string) (bool, error) {
	args := m.Called(code)
	return args.Bool(0), args.Error(1)
}

func (m *MockChannelRepository) List() ([]entity.Channel, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Channel), args.Error(1)
}

func (m *MockChannelRepository) CountByAdmin(adminID uint) (int64, error) {
	args := m.Called(adminID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChannelRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockChannelRepository) DeleteAll() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByText(text string) (*entity.Question, error) {
	args := m.Called(text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) List() ([]entity.Question, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetRandomQuestions(limit int) ([]entity.Question, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockQuestionRepository) DeleteUnreferenced() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockParticipantRepository реализует repository.ParticipantRepository
type MockParticipantRepository struct {
	mock.Mock
}

func (m *MockParticipantRepository) Create(participant *entity.Participant) error {
	args := m.Called(participant)
	return args.Error(0)
}

func (m *MockParticipantRepository) GetByUserAndChannel(userID, channelID uint) (*entity.Participant, error) {
	args := m.Called(userID, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Participant), args.Error(1)
}

func (m *MockParticipantRepository) ResetStartTime(id uint, startedAt time.Time) error {
	args := m.Called(id, startedAt)
	return args.Error(0)
}

func (m *MockParticipantRepository) UpdateScore(id uint, score int) error {
	args := m.Called(id, score)
	return args.Error(0)
}

func (m *MockParticipantRepository) MarkSubmitted(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockParticipantRepository) ListWithAnswers() ([]entity.Participant, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Participant), args.Error(1)
}

func (m *MockParticipantRepository) ListByUserWithDetails(userID uint) ([]entity.Participant, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Participant), args.Error(1)
}

func (m *MockParticipantRepository) DeleteByChannel(channelID uint) (int64, error) {
	args := m.Called(channelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockParticipantRepository) DeleteAll() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockAnswerRepository реализует repository.AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) Create(answer *entity.Answer) error {
	args := m.Called(answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) Upsert(answer *entity.Answer) error {
	args := m.Called(answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) CountCorrect(participantID uint) (int64, error) {
	args := m.Called(participantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnswerRepository) CountByQuestion(questionID uint) (int64, error) {
	args := m.Called(questionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnswerRepository) DeleteByChannel(channelID uint) (int64, error) {
	args := m.Called(channelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnswerRepository) DeleteAll() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Delete(keys ...string) error {
	args := m.Called(keys)
	return args.Error(0)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

// MockPublisher реализует EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(eventType string, data interface{}) {
	m.Called(eventType, data)
}

// mockRepos собирает набор моков репозиториев
type mockRepos struct {
	users        *MockUserRepository
	channels     *MockChannelRepository
	questions    *MockQuestionRepository
	participants *MockParticipantRepository
	answers      *MockAnswerRepository
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		users:        new(MockUserRepository),
		channels:     new(MockChannelRepository),
		questions:    new(MockQuestionRepository),
		participants: new(MockParticipantRepository),
		answers:      new(MockAnswerRepository),
	}
}

func (r *mockRepos) assertExpectations(t mock.TestingT) {
	r.users.AssertExpectations(t)
	r.channels.AssertExpectations(t)
	r.questions.AssertExpectations(t)
	r.participants.AssertExpectations(t)
	r.answers.AssertExpectations(t)
}

// fakeUnitOfWork вызывает fn с моками вместо транзакции
type fakeUnitOfWork struct {
	repos *mockRepos
	calls int
}

func (u *fakeUnitOfWork) Do(_ context.Context, fn func(repos repository.Repositories) error) error {
	u.calls++
	return fn(repository.Repositories{
		Users:        u.repos.users,
		Channels:     u.repos.channels,
		Questions:    u.repos.questions,
		Participants: u.repos.participants,
		Answers:      u.repos.answers,
	})
}

func newFakeUnitOfWork() (*fakeUnitOfWork, *mockRepos) {
	repos := newMockRepos()
	return &fakeUnitOfWork{repos: repos}, repos
}
