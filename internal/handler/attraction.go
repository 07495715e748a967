package handler

import (
	"errors"
	"net/http"

	"attractions/internal/model"
	"attractions/internal/repository"
	"attractions/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAttractions обработчик для POST /get-attractions: достопримечательности города в виде [[id, name], ...].
func (h *Handler) GetAttractions(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err, gin.H{"data": []model.AttractionSummary{}})
		return
	}
	attractions, err := h.AttractionService.FindByLocation(c.Request.Context(), req.Province, req.City)
	if err != nil {
		abort(c, http.StatusInternalServerError, err, gin.H{"data": []model.AttractionSummary{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": attractions})
}

// AddAttraction обработчик для POST /add-attraction.
func (h *Handler) AddAttraction(c *gin.Context) {
	var req addAttractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err, gin.H{"data": false})
		return
	}
	a := model.NewAttraction{Province: req.Province, City: req.City}
	a.Name = req.Name
	a.Description = req.Description
	a.Category = req.Category
	a.OpeningHour = req.Open
	a.ClosingHour = req.Close
	a.Latitude = float64(*req.Lat)
	a.Longitude = float64(*req.Long)

	id, err := h.AttractionService.AddAttraction(c.Request.Context(), a)
	if err != nil {
		abort(c, statusFor(err), err, gin.H{"data": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": true, "id": id})
}

// UpdateAttraction обработчик для PUT /update-attraction.
func (h *Handler) UpdateAttraction(c *gin.Context) {
	var req updateAttractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err, gin.H{"success": false})
		return
	}
	err := h.AttractionService.UpdateAttraction(c.Request.Context(), model.AttractionUpdate{
		ID:          int(req.ID),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		OpeningHour: req.Open,
		ClosingHour: req.Close,
	})
	if err != nil {
		abort(c, statusFor(err), err, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteAttraction обработчик для DELETE /delete-attraction.
func (h *Handler) DeleteAttraction(c *gin.Context) {
	var req attractionIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err, gin.H{"success": false})
		return
	}
	if err := h.AttractionService.DeleteAttraction(c.Request.Context(), int(req.AttractionID)); err != nil {
		abort(c, statusFor(err), err, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CountAttractions обработчик для POST /count-attractions.
func (h *Handler) CountAttractions(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err, gin.H{"success": false, "count": -1})
		return
	}
	count, err := h.AttractionService.CountAttractions(c.Request.Context(), req.Province, req.City)
	if err != nil {
		abort(c, http.StatusInternalServerError, err, gin.H{"success": false, "count": -1})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

// CountAttractionsHaving обработчик для POST /count-attractions-having.
// Без minCount используется порог 2, как в браузерном клиенте.
func (h *Handler) CountAttractionsHaving(c *gin.Context) {
	var req countHavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err, gin.H{"success": false})
		return
	}
	minCount := 2
	if req.MinCount != nil {
		minCount = int(*req.MinCount)
	}
	cities, err := h.AttractionService.CitiesWithMoreThan(c.Request.Context(), minCount)
	if err != nil {
		abort(c, statusFor(err), err, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cities})
}

// AvgAttractionsPerProvince обработчик для GET /avg-attractions-per-province.
func (h *Handler) AvgAttractionsPerProvince(c *gin.Context) {
	averages, err := h.AttractionService.AveragePerProvince(c.Request.Context())
	if err != nil {
		abort(c, http.StatusInternalServerError, err, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": averages})
}

// InitiateTable обработчик для GET /initiate-table: восстанавливает исходные данные.
func (h *Handler) InitiateTable(c *gin.Context) {
	attractions, err := h.AttractionService.Repopulate(c.Request.Context())
	if err != nil {
		abort(c, http.StatusInternalServerError, err, gin.H{"data": []model.AttractionSummary{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": attractions})
}

// statusFor сопоставляет ошибку сервиса с HTTP-статусом.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, model.ErrInvalidColumn),
		errors.Is(err, model.ErrNoColumns),
		errors.Is(err, model.ErrInvalidComparison):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrCoordinateConflict),
		errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
