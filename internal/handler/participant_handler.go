package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-channels-api/internal/handler/dto"
	"github.com/yourusername/quiz-channels-api/internal/service"
)

// ParticipantHandler обрабатывает публичные запросы участников викторины
type ParticipantHandler struct {
	userService     *service.UserService
	channelService  *service.ChannelService
	quizService     *service.QuizService
	questionService *service.QuestionService
}

// NewParticipantHandler создает новый обработчик участников
func NewParticipantHandler(
	userService *service.UserService,
	channelService *service.ChannelService,
	quizService *service.QuizService,
	questionService *service.QuestionService,
) *ParticipantHandler {
	return &ParticipantHandler{
		userService:     userService,
		channelService:  channelService,
		quizService:     quizService,
		questionService: questionService,
	}
}

// CreateUserRequest представляет запрос на создание пользователя
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	IsAdmin  bool   `json:"is_admin"`
}

// CreateUser создает пользователя без пароля
// POST /users/
func (h *ParticipantHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.Username, req.IsAdmin)
	if err != nil {
		handleError(c, err)
		return
	}

	resp, err := dto.NewUserResponse(user)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CreateChannelRequest представляет запрос на создание канала
type CreateChannelRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

// CreateChannel создает канал от имени администратора
// POST /channels/?admin_username=
func (h *ParticipantHandler) CreateChannel(c *gin.Context) {
	adminUsername, ok := requireQuery(c, "admin_username")
	if !ok {
		return
	}
	var req CreateChannelRequest
	if !bindJSON(c, &req) {
		return
	}

	channel, err := h.channelService.CreateChannel(c.Request.Context(), req.Name, adminUsername)
	if err != nil {
		handleError(c, err)
		return
	}

	resp, err := dto.NewChannelResponse(channel)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// JoinChannelRequest представляет запрос на присоединение к каналу
type JoinChannelRequest struct {
	Code     string `json:"code" binding:"required"`
	Username string `json:"username" binding:"required,max=100"`
}

// JoinChannel присоединяет участника к каналу по коду
// POST /join-channel/
func (h *ParticipantHandler) JoinChannel(c *gin.Context) {
	var req JoinChannelRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.quizService.JoinChannel(c.Request.Context(), req.Code, req.Username)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Joined successfully",
		"channel":         result.Channel.Name,
		"quiz_started_at": result.Participant.QuizStartedAt.UTC().Format(time.RFC3339Nano),
	})
}

// ListQuestions возвращает весь банк вопросов без правильных ответов
// GET /questions/
func (h *ParticipantHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.ListQuestions(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	resp, err := dto.NewQuestionListResponse(questions)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RandomQuestions возвращает случайную выборку вопросов
// GET /questions/random/:count
func (h *ParticipantHandler) RandomQuestions(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, "count must be an integer")
		return
	}

	questions, err := h.questionService.RandomQuestions(c.Request.Context(), count)
	if err != nil {
		handleError(c, err)
		return
	}
	resp, err := dto.NewQuestionListResponse(questions)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitAnswerRequest представляет ответ участника на вопрос
type SubmitAnswerRequest struct {
	QuestionID     uint   `json:"question_id" binding:"required"`
	SelectedAnswer string `json:"selected_answer" binding:"required,quiz_option"`
}

// SubmitAnswer сохраняет ответ и возвращает пересчитанный счет
// POST /submit-answer/?username=&channel_code=
func (h *ParticipantHandler) SubmitAnswer(c *gin.Context) {
	username, ok := requireQuery(c, "username")
	if !ok {
		return
	}
	channelCode, ok := requireQuery(c, "channel_code")
	if !ok {
		return
	}
	var req SubmitAnswerRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.quizService.SubmitAnswer(c.Request.Context(), username, channelCode, req.QuestionID, req.SelectedAnswer)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"correct": result.Correct, "score": result.Score})
}

// SubmitQuiz завершает викторину участника
// POST /submit-quiz/?username=&channel_code=
func (h *ParticipantHandler) SubmitQuiz(c *gin.Context) {
	username, ok := requireQuery(c, "username")
	if !ok {
		return
	}
	channelCode, ok := requireQuery(c, "channel_code")
	if !ok {
		return
	}

	score, err := h.quizService.SubmitQuiz(c.Request.Context(), username, channelCode)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz submitted successfully", "final_score": score})
}
