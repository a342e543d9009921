package delivery

import (
	"net/http"

	"catalog_service/internal/domain"
	"catalog_service/internal/dto"
	"catalog_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	useCase usecase.UserUseCase
	log     *logrus.Logger
}

func NewUserHandler(uc usecase.UserUseCase, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *UserHandler) RegisterRoutes(router gin.IRouter) {
	users := router.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUserByID)
		users.POST("", h.CreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	req, err := parsePageRequest(c, "firstName", domain.UserSortProperties)
	if err != nil {
		h.log.Warnf("Invalid paging parameters for users: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Bad request", err.Error())
		return
	}

	page, err := h.useCase.FindAllPaged(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.log.Warnf("Invalid user ID parameter: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "Bad request", "Invalid user ID format")
		return
	}

	user, err := h.useCase.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var body dto.UserInsertDTO
	if !bindJSON(c, h.log, &body) {
		return
	}

	created, err := h.useCase.Insert(c.Request.Context(), body)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Infof("User created successfully: ID %d, Email %s", created.ID, created.Email)
	c.Header("Location", locationOf(c, created.ID))
	c.JSON(http.StatusCreated, created)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.log.Warnf("Invalid user ID parameter for update: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "Bad request", "Invalid user ID format")
		return
	}

	var body dto.UserDTO
	if !bindJSON(c, h.log, &body) {
		return
	}

	updated, err := h.useCase.Update(c.Request.Context(), id, body)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.log.Warnf("Invalid user ID parameter for delete: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "Bad request", "Invalid user ID format")
		return
	}

	if err := h.useCase.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Infof("User deleted successfully: ID %d", id)
	c.Status(http.StatusNoContent)
}
