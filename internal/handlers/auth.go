package handlers

import (
	"errors"
	"net/http"
	"strings"

	"gareddit/internal/middleware"
	"gareddit/internal/models"
	"gareddit/internal/services"
	"gareddit/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	conn        *gorm.DB
	tokens      *services.TokenService
	mailService *services.MailService
}

func NewAuthHandler(conn *gorm.DB, tokens *services.TokenService, mail *services.MailService) *AuthHandler {
	return &AuthHandler{
		conn:        conn,
		tokens:      tokens,
		mailService: mail,
	}
}

type registerInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.JSON(http.StatusOK, ErrorsResult(fieldError("username", "You are already logged in.")))
		return
	}

	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorsResult(fieldError("username", "Invalid request body.")))
		return
	}

	if errs := utils.ValidateRegister(input.Username, input.Email, input.Password); len(errs) > 0 {
		c.JSON(http.StatusOK, ErrorsResult(errs))
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusOK, ErrorsResult(fieldError("username", "Something went wrong.")))
		return
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hash,
	}
	if err := h.conn.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusOK, ErrorsResult(fieldError("username", "Username or email already taken.")))
			return
		}
		c.JSON(http.StatusOK, ErrorsResult(fieldError("username", "Something went wrong.")))
		return
	}

	h.startSession(c, user.ID)
	c.JSON(http.StatusOK, UserResult(NewUserView(&user, user.ID)))
}

type loginInput struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.JSON(http.StatusOK, ErrorsResult(fieldError("usernameOrEmail", "You are already logged in.")))
		return
	}

	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorsResult(fieldError("usernameOrEmail", "Invalid request body.")))
		return
	}

	var user models.User
	query := h.conn.Where("username = ?", input.UsernameOrEmail)
	if strings.Contains(input.UsernameOrEmail, "@") {
		query = h.conn.Where("email = ?", input.UsernameOrEmail)
	}

	// Same message for an unknown account and a wrong password, so a caller
	// cannot probe which usernames exist.
	if err := query.First(&user).Error; err != nil {
		c.JSON(http.StatusOK, ErrorsResult(fieldError("usernameOrEmail", "Invalid username or password.")))
		return
	}
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		c.JSON(http.StatusOK, ErrorsResult(fieldError("usernameOrEmail", "Invalid username or password.")))
		return
	}

	h.startSession(c, user.ID)
	c.JSON(http.StatusOK, UserResult(NewUserView(&user, user.ID)))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{MaxAge: -1, Path: "/"})
	if err := session.Save(); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": NewUserView(user, user.ID)})
}

type forgotPasswordInput struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input forgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false})
		return
	}

	// The response is identical whether or not the account exists, so the
	// endpoint cannot be used to probe registered emails.
	var user models.User
	if err := h.conn.Where("email = ?", input.Email).First(&user).Error; err == nil {
		token := h.tokens.IssueResetToken(user.ID)
		h.mailService.SendPasswordResetEmail(user.Email, token)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type changePasswordInput struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var input changePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorsResult(fieldError("token", "Invalid request body.")))
		return
	}

	userID, ok := h.tokens.LookupResetToken(input.Token)
	if !ok {
		c.JSON(http.StatusOK, ErrorsResult(fieldError("token", "Token expired.")))
		return
	}

	var user models.User
	if err := h.conn.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusOK, ErrorsResult(fieldError("token", "User no longer exists.")))
		return
	}

	if errs := utils.ValidatePassword(input.NewPassword, "newPassword"); len(errs) > 0 {
		c.JSON(http.StatusOK, ErrorsResult(errs))
		return
	}

	hash, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusOK, ErrorsResult(fieldError("newPassword", "Something went wrong.")))
		return
	}
	if err := h.conn.Model(&user).Update("password", hash).Error; err != nil {
		c.JSON(http.StatusOK, ErrorsResult(fieldError("newPassword", "Something went wrong.")))
		return
	}

	// Single use: the token dies with the password change.
	h.tokens.ConsumeResetToken(input.Token)

	h.startSession(c, user.ID)
	c.JSON(http.StatusOK, UserResult(NewUserView(&user, user.ID)))
}

func (h *AuthHandler) startSession(c *gin.Context, userID uint) {
	session := sessions.Default(c)
	session.Set("user_id", userID)
	session.Save()
}
