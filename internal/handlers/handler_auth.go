package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/lcodev/ecom_backend/internal/core/ports/services"
	"github.com/lcodev/ecom_backend/internal/dto"
	"github.com/lcodev/ecom_backend/internal/middleware"
	"github.com/ulule/limiter/v3"
)

// authHandler handles sign-in and sign-out.
type authHandler struct {
	sessionService portssvc.SessionSvcFacade
}

func newAuthHandler(ss portssvc.SessionSvcFacade) *authHandler {
	return &authHandler{sessionService: ss}
}

// registerAuthRoutes sets up the session routes. A nil limiter disables rate limiting.
func registerAuthRoutes(rg *gin.RouterGroup, sessionService portssvc.SessionSvcFacade, signInLimiter *limiter.Limiter) {
	h := newAuthHandler(sessionService)

	signIn := []gin.HandlerFunc{}
	if signInLimiter != nil {
		signIn = append(signIn, middleware.RateLimit(signInLimiter))
	}

	rg.POST("/signin", append(signIn, h.signIn)...)
	rg.POST("/signin/google", append(signIn, h.signInWithGoogle)...)
	rg.GET("/signout/:id", h.signOut)
	rg.POST("/signout/:id", h.signOut)
}

// signIn godoc
// @Summary Sign in
// @Description Checks the credentials and issues the user's single session token.
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} dto.SignInResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid password"
// @Failure 404 {object} dto.ErrorResponse "Invalid Email"
// @Failure 409 {object} dto.ErrorResponse "Previous session exists"
// @Failure 429 {object} dto.ErrorResponse
// @Router /signin [post]
func (h *authHandler) signIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.sessionService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Sign-in failed")
		return
	}

	middleware.SetUserInContext(c, &result.User)
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User signed in", slog.String("user_id", result.User.UserID))
	c.JSON(http.StatusOK, dto.SignInResponse{Token: result.Token, User: dto.ToUserResponse(&result.User)})
}

// signInWithGoogle godoc
// @Summary Sign in with Google
// @Description Verifies a Google ID token and issues a session token for the matching user.
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id_token formData string true "Google ID token"
// @Success 200 {object} dto.SignInResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /signin/google [post]
func (h *authHandler) signInWithGoogle(c *gin.Context) {
	var req dto.GoogleSignInRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.sessionService.SignInWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err, "Google sign-in failed")
		return
	}

	middleware.SetUserInContext(c, &result.User)
	c.JSON(http.StatusOK, dto.SignInResponse{Token: result.Token, User: dto.ToUserResponse(&result.User)})
}

// signOut godoc
// @Summary Sign out
// @Description Resets the user's session token.
// @Tags auth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Invalid user ID"
// @Router /signout/{id} [post]
func (h *authHandler) signOut(c *gin.Context) {
	userID := c.Param("id")
	if err := h.sessionService.SignOut(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Sign-out failed")
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: "Logout success"})
}
