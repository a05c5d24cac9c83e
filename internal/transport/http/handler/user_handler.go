package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"construction-pm/internal/domain"
	resp "construction-pm/internal/transport/http/response"
)

const msgUserNotFound = "User not found"

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int64, name, email, role string) error
	Delete(ctx context.Context, id int64) error
}

type UserHandler struct{ svc UserService }

func NewUserHandler(svc UserService) *UserHandler { return &UserHandler{svc: svc} }

type userUpdateReq struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Role  string `json:"role" binding:"required"`
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req userUpdateReq
	if !bind(c, &req) {
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req.Name, req.Email, req.Role); err != nil {
		writeError(c, err, msgUserNotFound)
		return
	}
	c.JSON(http.StatusOK, resp.Message("User updated successfully"))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, msgUserNotFound)
		return
	}
	c.JSON(http.StatusOK, resp.Message("User deleted successfully"))
}
