package service

// Типы событий, рассылаемых администраторам в реальном времени
const (
	EventParticipantJoined = "participant:joined"
	EventAnswerSubmitted   = "answer:submitted"
	EventQuizSubmitted     = "quiz:submitted"
	EventResultsCleared    = "results:cleared"
)

// EventPublisher рассылает события подписчикам (websocket-хаб админки)
type EventPublisher interface {
	Publish(eventType string, data interface{})
}

// NoopPublisher отбрасывает события
type NoopPublisher struct{}

// Publish ничего не делает
func (NoopPublisher) Publish(string, interface{}) {}

// ParticipantJoinedEvent отправляется после присоединения к каналу
type ParticipantJoinedEvent struct {
	Username      string `json:"username"`
	ChannelCode   string `json:"channel_code"`
	ChannelName   string `json:"channel_name"`
	QuizStartedAt string `json:"quiz_started_at"`
}

// AnswerSubmittedEvent отправляется после сохранения ответа
type AnswerSubmittedEvent struct {
	Username    string `json:"username"`
	ChannelCode string `json:"channel_code"`
	QuestionID  uint   `json:"question_id"`
	Correct     bool   `json:"correct"`
	Score       int    `json:"score"`
}

// QuizSubmittedEvent отправляется после сдачи викторины
type QuizSubmittedEvent struct {
	Username    string `json:"username"`
	ChannelCode string `json:"channel_code"`
	FinalScore  int    `json:"final_score"`
}

// ResultsClearedEvent отправляется после очистки всех результатов
type ResultsClearedEvent struct {
	Answers      int64 `json:"answers"`
	Participants int64 `json:"participants"`
	Channels     int64 `json:"channels"`
}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return NoopPublisher{}
	}
	return p
}
