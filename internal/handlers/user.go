package handlers

import (
	"errors"
	"net/http"

	"gareddit/internal/middleware"
	"gareddit/internal/models"
	"gareddit/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	conn *gorm.DB
}

func NewUserHandler(conn *gorm.DB) *UserHandler {
	return &UserHandler{conn: conn}
}

// Get returns one user, or null when absent. The email field follows the
// visibility rule: only the user themselves sees it.
func (h *UserHandler) Get(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	var user models.User
	if err := h.conn.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": NewUserView(&user, middleware.CurrentUserID(c))})
}

func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.conn.Order("id ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}

	viewerID := middleware.CurrentUserID(c)
	views := make([]*UserView, len(users))
	for i := range users {
		views[i] = NewUserView(&users[i], viewerID)
	}
	c.JSON(http.StatusOK, gin.H{"users": views})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	res := h.conn.Delete(&models.User{}, id)
	if res.Error != nil || res.RowsAffected == 0 {
		c.JSON(http.StatusOK, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
