package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelguru/travelguru/internal/common"
	"github.com/travelguru/travelguru/internal/logging"
	"github.com/travelguru/travelguru/internal/server/models"
	"github.com/travelguru/travelguru/internal/server/services"
)

type AuthHandler struct {
	svc    *services.AuthService
	logger logging.Logger
}

func NewAuthHandler(svc *services.AuthService, l logging.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: l.With("module", "auth_handler")}
}

type registerRequest struct {
	Email           string `json:"email"`
	UserName        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Phone           string `json:"phone"`
	Role            string `json:"role"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.svc.Register(c.Request.Context(), &services.RegisterRequest{
		Email:           req.Email,
		UserName:        req.UserName,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Phone:           req.Phone,
		Role:            req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info(c.Request.Context(), "user registered", "username", user.UserName)
	c.JSON(http.StatusCreated, newUserResponse(user))
}

type loginRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	pair, err := h.svc.Login(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info(c.Request.Context(), "login", "username", req.UserName)
	c.JSON(http.StatusOK, newTokenPairResponse(pair))
}

func (h *AuthHandler) Validate(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": identity.UserName, "role": identity.Role})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTokenPairResponse(pair))
}

type updateUserRequest struct {
	UserName  string  `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

// targetUsername resolves which account the request acts on. An absent
// username means the caller's own; a different one is forbidden.
func targetUsername(c *gin.Context, requested string) (string, bool) {
	identity := identityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return "", false
	}
	if requested == "" || requested == identity.UserName {
		return identity.UserName, true
	}
	c.JSON(http.StatusForbidden, gin.H{"error": "cannot act on another user"})
	return "", false
}

func (h *AuthHandler) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	username, ok := targetUsername(c, req.UserName)
	if !ok {
		return
	}

	user, err := h.svc.UpdateUser(c.Request.Context(), username, &models.UserUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

type deleteUserRequest struct {
	UserName      string `json:"username"`
	ConfirmDelete bool   `json:"confirm_delete"`
}

func (h *AuthHandler) DeleteUser(c *gin.Context) {
	var req deleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	username, ok := targetUsername(c, req.UserName)
	if !ok {
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), username, req.ConfirmDelete); err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info(c.Request.Context(), "user deleted", "username", username)
	c.JSON(http.StatusAccepted, gin.H{"message": "account deleted"})
}

type resetRequestRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req resetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	// the same answer whether or not the email is registered
	c.JSON(http.StatusAccepted, gin.H{"message": "if the email is registered, a reset link has been sent"})
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.svc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		// on this route a bad token is a bad request, not an auth failure:
		// the caller is anonymous
		if errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrTokenExpired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password has been reset"})
}

type updatePasswordRequest struct {
	UserName        string `json:"username"`
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	username, ok := targetUsername(c, req.UserName)
	if !ok {
		return
	}

	err := h.svc.UpdatePassword(c.Request.Context(), username, req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
