package api

import (
	"net/http"

	"github.com/Reyy01/Connectly/internal/feed"
	"github.com/gin-gonic/gin"
)

func (a *API) registerRoutes() {
	a.router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to Connectly")
	})

	a.router.POST("/createpost", a.createPost)
	a.router.GET("/posts/:page", a.getAllPosts)
	a.router.GET("/myposts/:postedBy/:page", a.getMyPosts)
	a.router.DELETE("/deletePost/:postId/:user", a.deletePost)
	a.router.PATCH("/editPost/:postId/:editByUser", a.editPost)
	a.router.POST("/addComment", a.addComment)
	a.router.DELETE("/deleteComment/:commentListId/:commentId/:user", a.deleteComment)
	a.router.PATCH("/editComment/:commentListId/:editByUser", a.editComment)
	a.router.POST("/addReaction", a.addReaction)
}

// POST /createpost
func (a *API) createPost(c *gin.Context) {
	var body struct {
		PostedBy     string `json:"postedBy" binding:"required"`
		PostedByName string `json:"postedByName" binding:"required"`
		Title        string `json:"title" binding:"required"`
		Body         string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := a.feed.CreatePost(a.ctx, body.PostedBy, body.PostedByName, body.Title, body.Body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"postId": id})
}

// GET /posts/:page
func (a *API) getAllPosts(c *gin.Context) {
	var param struct {
		Page int `uri:"page" binding:"min=1"`
	}
	if err := c.ShouldBindUri(&param); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := a.feed.GetFeed(a.ctx, param.Page, a.pageSize)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /myposts/:postedBy/:page
func (a *API) getMyPosts(c *gin.Context) {
	var param struct {
		PostedBy string `uri:"postedBy" binding:"required"`
		Page     int    `uri:"page" binding:"min=1"`
	}
	if err := c.ShouldBindUri(&param); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := a.feed.GetUserFeed(a.ctx, param.PostedBy, param.Page, a.pageSize)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// DELETE /deletePost/:postId/:user
func (a *API) deletePost(c *gin.Context) {
	if err := a.feed.DeletePost(a.ctx, c.Param("postId"), c.Param("user")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// PATCH /editPost/:postId/:editByUser
func (a *API) editPost(c *gin.Context) {
	var body struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.feed.EditPost(a.ctx, c.Param("postId"), c.Param("editByUser"), body.Title, body.Body); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post updated successfully"})
}

// POST /addComment
func (a *API) addComment(c *gin.Context) {
	var body struct {
		PostID    string `json:"postId" binding:"required"`
		CommentBy string `json:"commentBy" binding:"required"`
		Name      string `json:"name" binding:"required"`
		Comment   string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.feed.AddComment(a.ctx, body.PostID, body.CommentBy, body.Name, body.Comment); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Comment Posted"})
}

// DELETE /deleteComment/:commentListId/:commentId/:user
func (a *API) deleteComment(c *gin.Context) {
	if err := a.feed.DeleteComment(a.ctx, c.Param("commentListId"), c.Param("commentId"), c.Param("user")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// PATCH /editComment/:commentListId/:editByUser
func (a *API) editComment(c *gin.Context) {
	var body struct {
		CommentID string `json:"commentId" binding:"required"`
		CommentBy string `json:"commentBy" binding:"required"`
		Name      string `json:"name" binding:"required"`
		Comment   string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.feed.EditComment(a.ctx, c.Param("commentListId"), body.CommentID, c.Param("editByUser"), body.CommentBy, body.Name, body.Comment); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment updated successfully"})
}

// POST /addReaction
func (a *API) addReaction(c *gin.Context) {
	var body struct {
		PostID       string `json:"postId" binding:"required"`
		ReactedBy    string `json:"reactedBy" binding:"required"`
		ReactionType string `json:"reactionType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.feed.React(a.ctx, body.PostID, body.ReactedBy, feed.ReactionType(body.ReactionType)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reacted"})
}
