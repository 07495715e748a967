package handler

import (
	"net/http"

	"attractions/internal/model"

	"github.com/gin-gonic/gin"
)

// ProjectTables обработчик для POST /project-tables: выбранные столбцы впечатлений достопримечательности.
func (h *Handler) ProjectTables(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err, gin.H{"projectedExperiences": [][]any{}})
		return
	}
	rows, err := h.ExperienceService.ProjectExperiences(c.Request.Context(), int(req.ID), req.ToSelect)
	if err != nil {
		abort(c, statusFor(err), err, gin.H{"projectedExperiences": [][]any{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projectedExperiences": rows})
}

// FilterExperiences обработчик для POST /filter-experiences: впечатления в рамках бюджета.
func (h *Handler) FilterExperiences(c *gin.Context) {
	var req filterExperiencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err, gin.H{"filteredExperiences": []model.ExperiencePrice{}})
		return
	}
	experiences, err := h.ExperienceService.FilterByBudget(c.Request.Context(), float64(req.Price), req.Comparison)
	if err != nil {
		abort(c, statusFor(err), err, gin.H{"filteredExperiences": []model.ExperiencePrice{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"filteredExperiences": experiences})
}

// FindCompletionists обработчик для POST /find-completionists.
func (h *Handler) FindCompletionists(c *gin.Context) {
	var req attractionIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err, gin.H{"data": []model.User{}})
		return
	}
	users, err := h.ExperienceService.FindCompletionists(c.Request.Context(), int(req.AttractionID))
	if err != nil {
		abort(c, http.StatusInternalServerError, err, gin.H{"data": []model.User{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}
