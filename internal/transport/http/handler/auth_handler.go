package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"construction-pm/internal/domain"
	"construction-pm/internal/service"
	resp "construction-pm/internal/transport/http/response"
	mw "construction-pm/internal/transport/http/middleware"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

type UserGetter interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
}

type AuthHandler struct {
	auth  AuthService
	users UserGetter
}

func NewAuthHandler(auth AuthService, users UserGetter) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if !bind(c, &req) {
		return
	}
	if _, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role); err != nil {
		writeError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, resp.Message("User registered successfully"))
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if !bind(c, &req) {
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, res)
}

// Me GET /api/me, behind AuthJWT.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := mw.ClaimsFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, ""))
		return
	}
	u, err := h.users.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		writeError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, u)
}
