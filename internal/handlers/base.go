package handlers

import (
	"gareddit/internal/models"
	"gareddit/internal/utils"

	"github.com/gin-gonic/gin"
)

// UserView shapes a user for API responses. Every path that returns a user
// (direct query, loader, join) must build it through NewUserView so the email
// visibility rule cannot be bypassed.
type UserView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// NewUserView hides the email from everyone but the user themselves.
func NewUserView(u *models.User, viewerID uint) *UserView {
	if u == nil {
		return nil
	}
	email := ""
	if viewerID == u.ID {
		email = u.Email
	}
	return &UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     email,
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}

// PostView shapes a post for API responses. VoteStatus is the viewer's vote
// value (1 or -1) or null when anonymous or not voted. ContentHTML is only
// set on detail responses.
type PostView struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	TextSnippet string    `json:"textSnippet"`
	Score       int       `json:"score"`
	Creator     *UserView `json:"creator"`
	VoteStatus  *int      `json:"voteStatus"`
	ContentHTML string    `json:"contentHtml,omitempty"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

const snippetLength = 50

func NewPostView(p *models.Post, creator *models.User, voteStatus *int, viewerID uint) *PostView {
	return &PostView{
		ID:          p.ID,
		Title:       p.Title,
		Text:        p.Text,
		TextSnippet: utils.Snippet(p.Text, snippetLength),
		Score:       p.Score,
		Creator:     NewUserView(creator, viewerID),
		VoteStatus:  voteStatus,
		CreatedAt:   p.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		UpdatedAt:   p.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}

// UserResult is the {user}|{errors} response shape shared by register, login
// and change-password.
func UserResult(user *UserView) gin.H {
	return gin.H{"user": user, "errors": nil}
}

func ErrorsResult(errs []utils.FieldError) gin.H {
	return gin.H{"user": nil, "errors": errs}
}

func fieldError(field, message string) []utils.FieldError {
	return []utils.FieldError{{Field: field, Message: message}}
}
