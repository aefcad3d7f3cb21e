package controllers

import (
	"github.com/gin-gonic/gin"

	"moodlog/internal/services"
	"moodlog/pkg/utils"
)

type TagController struct {
	tagService services.TagServiceInterface
}

func NewTagController(tagService services.TagServiceInterface) *TagController {
	return &TagController{
		tagService: tagService,
	}
}

// ListAllTagsHandler godoc
// @Summary Mood tag vocabulary
// @Tags Tags
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]string}
// @Router /tags [get]
func (tc *TagController) ListAllTagsHandler(c *gin.Context) {
	utils.RespondSuccess(c, tc.tagService.ListMoodTags(), "Fetched tags successfully")
}
