package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uniforum/uniforum/internal/app/models/dto"
	"github.com/uniforum/uniforum/internal/app/services"
	"github.com/uniforum/uniforum/internal/middleware"
)

// ForumController handles forum, post, comment and vote operations
type ForumController struct {
	forumService   services.ForumService
	postService    services.PostService
	commentService services.CommentService
	voteService    services.VoteService
}

// NewForumController creates a new ForumController
func NewForumController(
	forumService services.ForumService,
	postService services.PostService,
	commentService services.CommentService,
	voteService services.VoteService,
) *ForumController {
	return &ForumController{
		forumService:   forumService,
		postService:    postService,
		commentService: commentService,
		voteService:    voteService,
	}
}

func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func authenticatedUserID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return userID, true
}

// GetForums lists the forums visible to the authenticated user
// @Summary List visible forums
// @Description Returns the forums the authenticated user can access: all forums for admins, owned forums for professors, and the union of enrolled-course forums, matching group subforums and explicit grants for students
// @Tags forums
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ForumResponse} "Visible forums"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forums [get]
func (c *ForumController) GetForums(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}

	forums, err := c.forumService.GetForumsForUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      forums,
		Timestamp: time.Now(),
	})
}

// GetForum retrieves a single forum
// @Summary Get forum details
// @Tags forums
// @Produce json
// @Security BearerAuth
// @Param id path int true "Forum ID"
// @Success 200 {object} dto.APIResponse{data=dto.ForumResponse} "Forum"
// @Failure 403 {object} dto.ErrorResponse "Forum not visible to the user"
// @Failure 404 {object} dto.ErrorResponse "Forum not found"
// @Router /forums/{id} [get]
func (c *ForumController) GetForum(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}
	forumID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	forum, err := c.forumService.GetForumByID(ctx, userID, forumID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      forum,
		Timestamp: time.Now(),
	})
}

// GetPosts lists the posts of a forum
// @Summary List forum posts
// @Description Returns the display-ready feed of a forum: posts ranked pinned first, then by score, newest first among ties, each with its composed comment tree
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Forum ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.PostResponse} "Forum feed"
// @Failure 403 {object} dto.ErrorResponse "Forum not visible to the user"
// @Failure 404 {object} dto.ErrorResponse "Forum not found"
// @Router /forums/{id}/posts [get]
func (c *ForumController) GetPosts(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}
	forumID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	posts, err := c.postService.GetPostsByForum(ctx, userID, forumID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      posts,
		Timestamp: time.Now(),
	})
}

// CreatePost creates a post in a forum
// @Summary Create a post
// @Description Creates a post in a forum the user can access. Posts by professors and admins are pinned automatically.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Forum ID"
// @Param request body dto.PostRequest true "Post content"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse} "Post created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forum not visible to the user"
// @Failure 404 {object} dto.ErrorResponse "Forum not found"
// @Router /forums/{id}/posts [post]
func (c *ForumController) CreatePost(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}
	forumID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	post, err := c.postService.CreatePost(ctx, userID, forumID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      post,
		Timestamp: time.Now(),
	})
}

// GetPost retrieves a single post with its comment tree
// @Summary Get post details
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Post"
// @Failure 403 {object} dto.ErrorResponse "Post's forum not visible to the user"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [get]
func (c *ForumController) GetPost(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	post, err := c.postService.GetPostByID(ctx, userID, postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      post,
		Timestamp: time.Now(),
	})
}

// CreateComment creates a comment on a post
// @Summary Comment on a post
// @Description Creates a comment, optionally as a reply to another comment on the same post. Comments by professors and admins are pinned and may notify the post or parent comment author.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.CommentRequest true "Comment content"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Comment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or mismatched parent"
// @Failure 403 {object} dto.ErrorResponse "Post's forum not visible to the user"
// @Failure 404 {object} dto.ErrorResponse "Post or parent comment not found"
// @Router /posts/{id}/comments [post]
func (c *ForumController) CreateComment(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid comment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	comment, err := c.commentService.CreateComment(ctx, userID, postID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      comment,
		Timestamp: time.Now(),
	})
}

// VotePost applies a vote to a post
// @Summary Vote on a post
// @Description Applies a +1 or -1 vote. Repeating the same vote removes it; voting the other way flips it.
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.VoteRequest true "Vote value"
// @Success 200 {object} dto.APIResponse{data=dto.VoteResponse} "Vote applied"
// @Failure 400 {object} dto.ErrorResponse "Invalid vote value"
// @Failure 403 {object} dto.ErrorResponse "Post's forum not visible to the user"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/vote [post]
func (c *ForumController) VotePost(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid vote data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.voteService.VotePost(ctx, userID, postID, req.Value)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// VoteComment applies a vote to a comment
// @Summary Vote on a comment
// @Description Applies a +1 or -1 vote. Repeating the same vote removes it; voting the other way flips it.
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Param request body dto.VoteRequest true "Vote value"
// @Success 200 {object} dto.APIResponse{data=dto.VoteResponse} "Vote applied"
// @Failure 400 {object} dto.ErrorResponse "Invalid vote value"
// @Failure 403 {object} dto.ErrorResponse "Comment's forum not visible to the user"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Router /comments/{id}/vote [post]
func (c *ForumController) VoteComment(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		return
	}
	commentID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid vote data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.voteService.VoteComment(ctx, userID, commentID, req.Value)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
