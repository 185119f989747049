package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"

	"github.com/yourusername/quiz-channels-api/internal/handler/dto"
	"github.com/yourusername/quiz-channels-api/internal/middleware"
	"github.com/yourusername/quiz-channels-api/internal/service"
)

// AdminHandler обрабатывает запросы админки
type AdminHandler struct {
	authService     *service.AuthService
	questionService *service.QuestionService
	resultService   *service.ResultService
	channelService  *service.ChannelService
	userService     *service.UserService
}

// NewAdminHandler создает новый обработчик админки
func NewAdminHandler(
	authService *service.AuthService,
	questionService *service.QuestionService,
	resultService *service.ResultService,
	channelService *service.ChannelService,
	userService *service.UserService,
) *AdminHandler {
	return &AdminHandler{
		authService:     authService,
		questionService: questionService,
		resultService:   resultService,
		channelService:  channelService,
		userService:     userService,
	}
}

// LoginRequest представляет запрос на вход администратора
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login проверяет учетные данные и выдает токен
// POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := gin.H{"success": true, "message": "Login successful"}
	if result.Token != "" {
		resp["token"] = result.Token
		resp["expires_at"] = result.ExpiresAt.UTC()
	}
	c.JSON(http.StatusOK, resp)
}

// QuestionRequest представляет поля вопроса при создании и обновлении
type QuestionRequest struct {
	Text          string `json:"text" binding:"required,max=1000"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required,quiz_option"`
}

func (h *AdminHandler) bindQuestion(c *gin.Context) (service.QuestionInput, bool) {
	var req QuestionRequest
	var in service.QuestionInput
	if !bindJSON(c, &req) {
		return in, false
	}
	if err := copier.Copy(&in, &req); err != nil {
		handleError(c, err)
		return in, false
	}
	return in, true
}

// ListQuestions возвращает банк вопросов с правильными ответами
// GET /admin/questions
func (h *AdminHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.ListQuestions(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	resp, err := dto.NewAdminQuestionListResponse(questions)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateQuestion добавляет вопрос в банк
// POST /admin/questions
func (h *AdminHandler) CreateQuestion(c *gin.Context) {
	in, ok := h.bindQuestion(c)
	if !ok {
		return
	}

	question, err := h.questionService.CreateQuestion(c.Request.Context(), in)
	if err != nil {
		handleError(c, err)
		return
	}
	resp, err := dto.NewAdminQuestionResponse(question)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateQuestion изменяет вопрос
// PUT /admin/questions/:id
func (h *AdminHandler) UpdateQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)
	in, ok := h.bindQuestion(c)
	if !ok {
		return
	}

	question, err := h.questionService.UpdateQuestion(c.Request.Context(), questionID, in)
	if err != nil {
		handleError(c, err)
		return
	}
	resp, err := dto.NewAdminQuestionResponse(question)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteQuestion удаляет вопрос, если на него еще не отвечали
// DELETE /admin/questions/:id
func (h *AdminHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	if err := h.questionService.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}

// ListResults возвращает результаты всех участников
// GET /admin/results
func (h *AdminHandler) ListResults(c *gin.Context) {
	results, err := h.resultService.ListResults(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	resp, err := dto.NewResultListResponse(results)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UserResults возвращает подробные результаты пользователя
// GET /admin/results/:username?channel_code=
func (h *AdminHandler) UserResults(c *gin.Context) {
	username := c.Param("username")
	if decoded, err := url.PathUnescape(username); err == nil {
		username = decoded
	}

	result, err := h.resultService.UserResults(c.Request.Context(), username, c.Query("channel_code"))
	if err != nil {
		handleError(c, err)
		return
	}
	resp, err := dto.NewDetailedResultResponse(result)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ClearResults удаляет все ответы, участия и каналы
// DELETE /admin/results
func (h *AdminHandler) ClearResults(c *gin.Context) {
	if _, err := h.resultService.ClearAll(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All results cleared successfully"})
}

// ListChannels возвращает все каналы
// GET /admin/channels
func (h *AdminHandler) ListChannels(c *gin.Context) {
	channels, err := h.channelService.ListChannels(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	resp, err := dto.NewChannelListResponse(channels)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteChannel удаляет канал вместе с участниками и их ответами
// DELETE /admin/channels/:id
func (h *AdminHandler) DeleteChannel(c *gin.Context) {
	channelID := c.MustGet("channelID").(uint)

	if err := h.channelService.DeleteChannel(c.Request.Context(), channelID); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Channel deleted successfully"})
}

// ListAdmins возвращает администраторов
// GET /admin/users
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.userService.ListAdmins(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	resp, err := dto.NewAdminUserListResponse(admins)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateAdminRequest представляет запрос на создание администратора
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=72"`
}

// CreateAdmin создает администратора
// POST /admin/users
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, err := h.userService.CreateAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	resp, err := dto.NewAdminUserResponse(admin)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdatePasswordRequest представляет запрос на смену пароля
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,max=72"`
}

// UpdatePassword меняет пароль администратора
// PUT /admin/users/:username/password
func (h *AdminHandler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.userService.UpdatePassword(c.Request.Context(), c.Param("username"), req.CurrentPassword, req.NewPassword)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// DeleteAdmin удаляет администратора
// DELETE /admin/users/:id?current_username=
// При включенных токенах текущим считается администратор из токена,
// current_username нужен только без проверки токена.
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	adminID := c.MustGet("userID").(uint)

	queryUsername := c.Query("current_username")
	currentUsername := c.GetString(middleware.ContextAdminUsername)
	switch {
	case currentUsername == "":
		currentUsername = queryUsername
	case queryUsername != "" && queryUsername != currentUsername:
		respondError(c, http.StatusBadRequest, "current_username does not match the authenticated admin")
		return
	}
	if currentUsername == "" {
		respondError(c, http.StatusUnprocessableEntity, "current_username is required")
		return
	}

	if err := h.userService.DeleteAdmin(c.Request.Context(), adminID, currentUsername); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// Health сообщает, что сервис запущен
// GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
