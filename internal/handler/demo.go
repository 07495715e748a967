package handler

import (
	"errors"
	"net/http"

	"attractions/internal/model"
	"attractions/internal/service"

	"github.com/gin-gonic/gin"
)

// GetDemotable обработчик для GET /demotable.
func (h *Handler) GetDemotable(c *gin.Context) {
	rows, err := h.DemoService.List(c.Request.Context())
	if err != nil {
		abort(c, http.StatusInternalServerError, err, gin.H{"data": []model.DemoRow{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// InsertDemotable обработчик для POST /insert-demotable.
func (h *Handler) InsertDemotable(c *gin.Context) {
	var req insertDemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err, gin.H{"success": false})
		return
	}
	if err := h.DemoService.Insert(c.Request.Context(), int(*req.ID), req.Name); err != nil {
		abort(c, demoStatus(err), err, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateNameDemotable обработчик для POST /update-name-demotable.
// Если строк с прежним именем нет, отвечает 500 и success=false.
func (h *Handler) UpdateNameDemotable(c *gin.Context) {
	var req updateDemoNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err, gin.H{"success": false})
		return
	}
	if err := h.DemoService.UpdateName(c.Request.Context(), req.OldName, req.NewName); err != nil {
		abort(c, demoStatus(err), err, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CountDemotable обработчик для GET /count-demotable.
func (h *Handler) CountDemotable(c *gin.Context) {
	count, err := h.DemoService.Count(c.Request.Context())
	if err != nil {
		abort(c, http.StatusInternalServerError, err, gin.H{"success": false, "count": -1})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

// demoStatus отвечает 500 на любую ошибку demotable, кроме некорректного ввода.
func demoStatus(err error) int {
	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
