package gormdb

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-channels-api/internal/config"
	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
	"github.com/yourusername/quiz-channels-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-channels-api/internal/pkg/errors"
	"github.com/yourusername/quiz-channels-api/pkg/database"
)

// newTestDB открывает файловую SQLite во временном каталоге и применяет миграции
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := database.NewSQLiteDB(fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.MigrateDB(db, config.DriverSQLite))
	return db
}

// fixture создает администратора, канал, участника и один вопрос
type fixture struct {
	admin       *entity.User
	player      *entity.User
	channel     *entity.Channel
	question    *entity.Question
	participant *entity.Participant
}

func newFixture(t *testing.T, repos repository.Repositories) fixture {
	t.Helper()
	f := fixture{
		admin:   &entity.User{Username: "admin", IsAdmin: true},
		player:  &entity.User{Username: "alice"},
		channel: &entity.Channel{Name: "AWS Basics", Code: "ABC123"},
		question: &entity.Question{
			Text: "What does AWS stand for?", OptionA: "Amazon Web Services", OptionB: "Advanced Web Services",
			OptionC: "Amazon Web Solutions", OptionD: "Advanced Web Solutions", CorrectAnswer: entity.OptionA,
		},
	}
	require.NoError(t, f.admin.SetPassword("secret"))
	require.NoError(t, repos.Users.Create(f.admin))
	require.NoError(t, repos.Users.Create(f.player))
	f.channel.AdminID = f.admin.ID
	require.NoError(t, repos.Channels.Create(f.channel))
	require.NoError(t, repos.Questions.Create(f.question))

	f.participant = &entity.Participant{UserID: f.player.ID, ChannelID: f.channel.ID, QuizStartedAt: time.Now().UTC()}
	require.NoError(t, repos.Participants.Create(f.participant))
	return f
}

func TestUserRepo_CreateStoresHashAndRejectsDuplicate(t *testing.T) {
	repos := NewRepositories(newTestDB(t))

	admin := &entity.User{Username: "root", IsAdmin: true}
	require.NoError(t, admin.SetPassword("secret"))
	require.NoError(t, repos.Users.Create(admin))
	assert.NotEqual(t, "secret", admin.Password)

	stored, err := repos.Users.GetAdminByUsername("root")
	require.NoError(t, err)
	assert.True(t, stored.CheckPassword("secret"))
	assert.False(t, stored.CheckPassword("wrong"))

	// Повторное имя нарушает уникальность
	err = repos.Users.Create(&entity.User{Username: "root"})
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestUserRepo_AdminLookupsIgnorePlayers(t *testing.T) {
	repos := NewRepositories(newTestDB(t))
	player := &entity.User{Username: "bob"}
	require.NoError(t, repos.Users.Create(player))

	_, err := repos.Users.GetAdminByUsername("bob")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	_, err = repos.Users.GetAdminByID(player.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	admins, err := repos.Users.ListAdmins()
	require.NoError(t, err)
	assert.Empty(t, admins)
}

func TestUserRepo_UpdatePassword(t *testing.T) {
	repos := NewRepositories(newTestDB(t))
	admin := &entity.User{Username: "root", IsAdmin: true}
	require.NoError(t, admin.SetPassword("old"))
	require.NoError(t, repos.Users.Create(admin))

	require.NoError(t, repos.Users.UpdatePassword(admin.ID, "new-password"))

	stored, err := repos.Users.GetByID(admin.ID)
	require.NoError(t, err)
	assert.True(t, stored.CheckPassword("new-password"))
	assert.False(t, stored.CheckPassword("old"))

	err = repos.Users.UpdatePassword(9999, "x")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestUserRepo_DeleteReferencedAdminConflicts(t *testing.T) {
	repos := NewRepositories(newTestDB(t))
	f := newFixture(t, repos)

	// Администратор владеет каналом, внешний ключ не дает удалить его
	err := repos.Users.Delete(f.admin.ID)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	err = repos.Users.Delete(9999)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestChannelRepo_CodeLookupsAndUniqueness(t *testing.T) {
	repos := NewRepositories(newTestDB(t))
	f := newFixture(t, repos)

	got, err := repos.Channels.GetByCode("ABC123")
	require.NoError(t, err)
	assert.Equal(t, f.channel.ID, got.ID)

	exists, err := repos.Channels.ExistsByCode("ABC123")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repos.Channels.ExistsByCode("ZZZ999")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repos.Channels.GetByCode("ZZZ999")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	// Тот же код в другом канале запрещен
	err = repos.Channels.Create(&entity.Channel{Name: "Other", Code: "ABC123", AdminID: f.admin.ID})
	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	count, err := repos.Channels.CountByAdmin(f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestParticipantAndAnswerRepos_Uniqueness(t *testing.T) {
	repos := NewRepositories(newTestDB(t))
	f := newFixture(t, repos)

	dup := &entity.Participant{UserID: f.player.ID, ChannelID: f.channel.ID, QuizStartedAt: time.Now()}
	assert.True(t, errors.Is(repos.Participants.Create(dup), apperrors.ErrConflict))

	answer := &entity.Answer{ParticipantID: f.participant.ID, QuestionID: f.question.ID, SelectedAnswer: "A", IsCorrect: true}
	require.NoError(t, repos.Answers.Create(answer))

	second := &entity.Answer{ParticipantID: f.participant.ID, QuestionID: f.question.ID, SelectedAnswer: "B"}
	assert.True(t, errors.Is(repos.Answers.Create(second), apperrors.ErrConflict))

	correct, err := repos.Answers.CountCorrect(f.participant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), correct)
}

func TestAnswerRepo_UpsertOverwritesSameQuestion(t *testing.T) {
	repos := NewRepositories(newTestDB(t))
	f := newFixture(t, repos)

	require.NoError(t, repos.Answers.Upsert(&entity.Answer{
		ParticipantID: f.participant.ID, QuestionID: f.question.ID, SelectedAnswer: "A", IsCorrect: true,
	}))
	require.NoError(t, repos.Answers.Upsert(&entity.Answer{
		ParticipantID: f.participant.ID, QuestionID: f.question.ID, SelectedAnswer: "C", IsCorrect: false,
	}))

	// Строка одна, в ней последний выбор
	count, err := repos.Answers.CountByQuestion(f.question.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	correct, err := repos.Answers.CountCorrect(f.participant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), correct)

	list, err := repos.Participants.ListWithAnswers()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Answers, 1)
	assert.Equal(t, "C", list[0].Answers[0].SelectedAnswer)
}

func TestParticipantRepo_StateUpdates(t *testing.T) {
	repos := NewRepositories(newTestDB(t))
	f := newFixture(t, repos)

	restart := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, repos.Participants.ResetStartTime(f.participant.ID, restart))
	require.NoError(t, repos.Participants.UpdateScore(f.participant.ID, 7))
	require.NoError(t, repos.Participants.MarkSubmitted(f.participant.ID))

	got, err := repos.Participants.GetByUserAndChannel(f.player.ID, f.channel.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Score)
	assert.True(t, got.QuizSubmitted)
	assert.True(t, restart.Equal(got.QuizStartedAt))

	assert.True(t, errors.Is(repos.Participants.UpdateScore(9999, 1), apperrors.ErrNotFound))
}

func TestParticipantRepo_ListByUserWithDetails(t *testing.T) {
	repos := NewRepositories(newTestDB(t))
	f := newFixture(t, repos)
	require.NoError(t, repos.Answers.Create(&entity.Answer{
		ParticipantID: f.participant.ID, QuestionID: f.question.ID, SelectedAnswer: "A", IsCorrect: true,
	}))

	list, err := repos.Participants.ListByUserWithDetails(f.player.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Channel)
	assert.Equal(t, "AWS Basics", list[0].Channel.Name)
	require.Len(t, list[0].Answers, 1)
	require.NotNil(t, list[0].Answers[0].Question)
	assert.Equal(t, "What does AWS stand for?", list[0].Answers[0].Question.Text)

	all, err := repos.Participants.ListWithAnswers()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "alice", all[0].User.Username)
}

func TestQuestionRepo_RandomAndDeleteUnreferenced(t *testing.T) {
	repos := NewRepositories(newTestDB(t))
	f := newFixture(t, repos)

	for i := 0; i < 4; i++ {
		require.NoError(t, repos.Questions.Create(&entity.Question{
			Text: fmt.Sprintf("Question %d", i), OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "C",
		}))
	}

	random, err := repos.Questions.GetRandomQuestions(3)
	require.NoError(t, err)
	assert.Len(t, random, 3)
	seen := map[uint]bool{}
	for _, q := range random {
		assert.False(t, seen[q.ID], "вопросы не должны повторяться")
		seen[q.ID] = true
	}

	// Запрос больше размера банка возвращает весь банк
	random, err = repos.Questions.GetRandomQuestions(50)
	require.NoError(t, err)
	assert.Len(t, random, 5)

	require.NoError(t, repos.Answers.Create(&entity.Answer{
		ParticipantID: f.participant.ID, QuestionID: f.question.ID, SelectedAnswer: "A", IsCorrect: true,
	}))
	deleted, err := repos.Questions.DeleteUnreferenced()
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)

	left, err := repos.Questions.List()
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, f.question.ID, left[0].ID)

	// Отвеченный вопрос удалить нельзя
	assert.True(t, errors.Is(repos.Questions.Delete(f.question.ID), apperrors.ErrConflict))
}

func TestChannelCascadeDelete(t *testing.T) {
	repos := NewRepositories(newTestDB(t))
	f := newFixture(t, repos)
	require.NoError(t, repos.Answers.Create(&entity.Answer{
		ParticipantID: f.participant.ID, QuestionID: f.question.ID, SelectedAnswer: "A", IsCorrect: true,
	}))

	answers, err := repos.Answers.DeleteByChannel(f.channel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), answers)
	participants, err := repos.Participants.DeleteByChannel(f.channel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), participants)
	require.NoError(t, repos.Channels.Delete(f.channel.ID))

	assert.True(t, errors.Is(repos.Channels.Delete(f.channel.ID), apperrors.ErrNotFound))
	count, err := repos.Answers.CountByQuestion(f.question.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUnitOfWork_RollbackOnError(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	boom := errors.New("boom")

	err := uow.Do(context.Background(), func(repos repository.Repositories) error {
		require.NoError(t, repos.Users.Create(&entity.User{Username: "ghost"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = NewUserRepo(db).GetByUsername("ghost")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	err = uow.Do(context.Background(), func(repos repository.Repositories) error {
		return repos.Users.Create(&entity.User{Username: "kept"})
	})
	require.NoError(t, err)
	_, err = NewUserRepo(db).GetByUsername("kept")
	assert.NoError(t, err)
}
