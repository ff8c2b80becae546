package handlers

import (
	"net/http"

	"todo_service/internal/service"

	"github.com/gin-gonic/gin"
)

// SignUpRequest is the signup payload.
type SignUpRequest struct {
	Name     string `json:"name" binding:"required" example:"Alice"`
	Email    string `json:"email" binding:"required" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"s3cr3t"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"s3cr3t"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      SignUpRequest  true  "New account"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var input SignUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.SignUp(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		h.respondError(c, "auth_sign_up_failed", err, "email", input.Email)
		return
	}

	if h.log != nil {
		h.log.Infow("auth_signed_up", "user_id", user.ID)
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Log in
// @Description  Exchanges email and password for a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  TokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string  "invalid credentials"
// @Failure      500   {object}  map[string]string
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.respondError(c, "auth_login_failed", err, "email", input.Email)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token.Value, TokenType: service.TokenType})
}
