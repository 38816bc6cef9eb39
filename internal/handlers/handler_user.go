package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lcodev/ecom_backend/internal/core/domain"
	portssvc "github.com/lcodev/ecom_backend/internal/core/ports/services"
	"github.com/lcodev/ecom_backend/internal/dto"
	"github.com/lcodev/ecom_backend/internal/middleware"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers all user-related routes. Signup is public,
// everything else goes through auth.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, auth gin.HandlerFunc) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.POST("", h.createUser)             // Signup
		users.GET("", auth, h.listUsers)         // Staff only
		users.GET("/:id", auth, h.getUser)       // Own or staff
		users.PUT("/:id", auth, h.updateUser)    // Own or staff
		users.DELETE("/:id", auth, h.deleteUser) // Superuser only
	}
}

// requireRequester returns the user resolved by the auth middleware, or
// answers 401 when there is none.
func requireRequester(c *gin.Context) (*domain.User, bool) {
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Authenticated user not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return nil, false
	}
	return user, true
}

// createUser godoc
// @Summary Sign up
// @Description Creates a customer account. New accounts start signed out.
// @Tags users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	createdUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}

	logger.Info("User created successfully", slog.String("new_user_id", createdUser.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(createdUser))
}

// getUser godoc
// @Summary Get a user by ID
// @Description Retrieves a user. Customers may only read themselves.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security SessionUser
// @Security SessionToken
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	caller, ok := requireRequester(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Description Retrieves users ordered by creation. Staff only.
// @Tags users
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security SessionUser
// @Security SessionToken
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	caller, ok := requireRequester(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), caller, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Users listed successfully", slog.Int("count", len(users)))
	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}

// updateUser godoc
// @Summary Update a user
// @Description Updates profile fields and optionally the password. Role flags need a superuser.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID to update"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security SessionUser
// @Security SessionToken
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	caller, ok := requireRequester(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), caller, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Removes a user and their session. Their orders are kept without an owner.
// @Tags users
// @Param id path string true "User ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security SessionUser
// @Security SessionToken
// @Router /users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	caller, ok := requireRequester(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), caller, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User deleted", slog.String("target_user_id", c.Param("id")))
	c.Status(http.StatusNoContent)
}
