package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moodlog/internal/services"
	"moodlog/pkg/middleware"
	"moodlog/pkg/utils"
)

type AnalyticsController struct {
	analyticsService services.AnalyticsServiceInterface
}

func NewAnalyticsController(analyticsService services.AnalyticsServiceInterface) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// GetAnalytics godoc
// @Summary Mood analytics
// @Description Trait averages, category counts, recent trends and suggestions
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response_models.AnalyticsReport}
// @Router /analytics [get]
func (a *AnalyticsController) GetAnalytics(c *gin.Context) {
	accountID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	report, err := a.analyticsService.BuildReport(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Fetched analytics successfully")
}
