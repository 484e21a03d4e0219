package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gareddit/internal/config"
	"gareddit/internal/loader"
	"gareddit/internal/middleware"
	"gareddit/internal/models"
	"gareddit/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct {
	conn *gorm.DB
}

func NewPostHandler(conn *gorm.DB) *PostHandler {
	return &PostHandler{conn: conn}
}

// List serves the cursor-paginated feed, newest first. The cursor is the
// created_at of the last row of the previous page (unix milliseconds), which
// keeps pages stable while new posts land. One extra row is fetched to derive
// hasMore without a count query.
func (h *PostHandler) List(c *gin.Context) {
	limit := config.DefaultPostsQueryLimit
	if l := c.Query("limit"); l != "" {
		limit = utils.StringToInt(l)
	}
	if limit > config.MaxPostsQueryLimit {
		limit = config.MaxPostsQueryLimit
	}
	if limit < config.MinPostsQueryLimit {
		limit = config.MinPostsQueryLimit
	}

	query := h.conn.Order("created_at DESC").Limit(limit + 1)
	if cursor := c.Query("cursor"); cursor != "" {
		millis, err := strconv.ParseInt(cursor, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cursor"})
			return
		}
		query = query.Where("created_at < ?", time.UnixMilli(millis))
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}

	hasMore := len(posts) == limit+1
	if hasMore {
		posts = posts[:limit]
	}

	views := h.serializePosts(c, posts)

	resp := gin.H{"posts": views, "hasMore": hasMore}
	if len(posts) > 0 {
		resp["nextCursor"] = strconv.FormatInt(posts[len(posts)-1].CreatedAt.UnixMilli(), 10)
	}
	c.JSON(http.StatusOK, resp)
}

// serializePosts resolves creators and the viewer's vote status through the
// request's batched loaders: all keys are registered first, then the thunks
// are forced, so each relation costs one query for the whole page.
func (h *PostHandler) serializePosts(c *gin.Context, posts []models.Post) []*PostView {
	loaders := middleware.GetLoaders(c)
	viewerID := middleware.CurrentUserID(c)

	creatorThunks := make([]loader.Thunk[models.User], len(posts))
	voteThunks := make([]loader.Thunk[models.Vote], len(posts))
	for i, p := range posts {
		creatorThunks[i] = loaders.Creators.Load(p.CreatorID)
		if viewerID != 0 {
			voteThunks[i] = loaders.Votes.Load(loader.VoteKey{UserID: viewerID, PostID: p.ID})
		}
	}

	views := make([]*PostView, len(posts))
	for i := range posts {
		var creator *models.User
		if u, ok := creatorThunks[i](); ok {
			creator = &u
		}
		var voteStatus *int
		if viewerID != 0 {
			if v, ok := voteThunks[i](); ok {
				voteStatus = &v.Value
			}
		}
		views[i] = NewPostView(&posts[i], creator, voteStatus, viewerID)
	}
	return views
}

// Detail returns one post with rendered content, or null when absent.
func (h *PostHandler) Detail(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	var post models.Post
	if err := h.conn.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"post": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}

	views := h.serializePosts(c, []models.Post{post})
	view := views[0]
	view.ContentHTML = utils.RenderMarkdown(post.Text)

	c.JSON(http.StatusOK, gin.H{"post": view})
}

type postInput struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var input postInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	post := models.Post{
		CreatorID: user.ID,
		Title:     input.Title,
		Text:      input.Text,
	}
	if err := h.conn.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": NewPostView(&post, user, nil, user.ID)})
}

// Update edits a post's title and text, scoped to the creator. Anyone else
// gets a null result, indistinguishable from a missing post.
func (h *PostHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToInt(c.Param("id"))

	var input postInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	var post models.Post
	err := h.conn.Where("id = ? AND creator_id = ?", id, user.ID).First(&post).Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"post": nil})
		return
	}

	post.Title = input.Title
	post.Text = input.Text
	if err := h.conn.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": NewPostView(&post, user, nil, user.ID)})
}

// Delete removes a post, scoped to the creator. The ledger rows cascade.
func (h *PostHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToInt(c.Param("id"))

	res := h.conn.Where("id = ? AND creator_id = ?", id, user.ID).Delete(&models.Post{})
	if res.Error != nil || res.RowsAffected == 0 {
		c.JSON(http.StatusOK, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
