package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"moodlog/internal/models/request_models"
	"moodlog/internal/services"
	"moodlog/pkg/middleware"
	"moodlog/pkg/utils"
)

type PostController struct {
	postService services.PostServiceInterface
}

func NewPostController(postService services.PostServiceInterface) *PostController {
	return &PostController{postService: postService}
}

// ListPosts godoc
// @Summary List my posts
// @Description All posts of the caller, newest first
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]response_models.PostResponse}
// @Router /posts [get]
func (p *PostController) ListPosts(c *gin.Context) {
	accountID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	posts, err := p.postService.List(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, posts, "Fetched posts successfully")
}

// GetPost godoc
// @Summary Get one post
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} utils.APIResponse{data=response_models.PostResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /posts/{id} [get]
func (p *PostController) GetPost(c *gin.Context) {
	accountID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrPostNotFound)
		return
	}

	post, err := p.postService.Get(c.Request.Context(), accountID, postID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, post, "Fetched post successfully")
}

// CreatePost godoc
// @Summary Create a post
// @Description Uploads the image, analyses the mood and refreshes suggestions
// @Tags Posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Photo"
// @Param caption formData string true "Caption"
// @Param tags formData []string false "Mood tags" collectionFormat(multi)
// @Success 200 {object} utils.APIResponse{data=response_models.PostResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /posts [post]
func (p *PostController) CreatePost(c *gin.Context) {
	accountID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var form request_models.CreatePostForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	var image io.Reader
	file, err := c.FormFile("image")
	switch {
	case err == nil:
		f, openErr := file.Open()
		if openErr != nil {
			utils.RespondError(c, http.StatusBadRequest, "Could not read image")
			return
		}
		defer f.Close()
		image = f
	case !errors.Is(err, http.ErrMissingFile):
		utils.RespondError(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	post, err := p.postService.Create(c.Request.Context(), accountID, services.CreatePostInput{
		Image:   image,
		Caption: form.Caption,
		Tags:    form.Tags,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, post, "Post created successfully")
}

// DeletePost godoc
// @Summary Delete a post
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /posts/{id} [delete]
func (p *PostController) DeletePost(c *gin.Context) {
	accountID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrPostNotFound)
		return
	}

	if err := p.postService.Delete(c.Request.Context(), accountID, postID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Post deleted successfully")
}

// Timeline godoc
// @Summary Posts grouped by day
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]response_models.TimelineDay}
// @Router /posts/timeline [get]
func (p *PostController) Timeline(c *gin.Context) {
	accountID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	days, err := p.postService.Timeline(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, days, "Fetched timeline successfully")
}
