package handlers

import (
	"net/http"

	"gareddit/internal/middleware"
	"gareddit/internal/services"
	"gareddit/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	votes     *services.VoteService
	reconcile *services.ReconcileService
}

func NewVoteHandler(votes *services.VoteService, reconcile *services.ReconcileService) *VoteHandler {
	return &VoteHandler{votes: votes, reconcile: reconcile}
}

type voteInput struct {
	Direction string `json:"direction"` // "up" or "down"
}

// Vote casts, retracts or flips the current user's vote on a post. The result
// is a plain boolean; persistence failures, including voting on a missing
// post, all normalize to ok=false.
func (h *VoteHandler) Vote(c *gin.Context) {
	user := middleware.CurrentUser(c)
	postID := uint(utils.StringToInt(c.Param("id")))

	var input voteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false})
		return
	}

	var dir services.Direction
	switch input.Direction {
	case "up":
		dir = services.Up
	case "down":
		dir = services.Down
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false})
		return
	}

	// Storage detail stays internal; the caller only sees false.
	if err := h.votes.Cast(postID, user.ID, dir); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false})
		return
	}

	h.reconcile.Schedule(postID)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
