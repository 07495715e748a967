package handler

import (
	"net/http"

	"attractions/internal/model"

	"github.com/gin-gonic/gin"
)

// ListUsers обработчик для GET /users.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.UserService.ListUsers(c.Request.Context())
	if err != nil {
		abort(c, http.StatusInternalServerError, err, gin.H{"data": []model.User{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

// AddUser обработчик для POST /add-user.
func (h *Handler) AddUser(c *gin.Context) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err, gin.H{"success": false})
		return
	}
	id, err := h.UserService.CreateUser(c.Request.Context(), req.Name)
	if err != nil {
		abort(c, statusFor(err), err, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// CompleteExperience обработчик для POST /complete-experience.
func (h *Handler) CompleteExperience(c *gin.Context) {
	var req completeExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err, gin.H{"success": false})
		return
	}
	err := h.UserService.CompleteExperience(c.Request.Context(), int(req.UserID), int(req.ExperienceID))
	if err != nil {
		abort(c, statusFor(err), err, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
