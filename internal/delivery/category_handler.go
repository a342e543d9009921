package delivery

import (
	"net/http"

	"catalog_service/internal/domain"
	"catalog_service/internal/dto"
	"catalog_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	useCase usecase.CategoryUseCase
	log     *logrus.Logger
}

func NewCategoryHandler(uc usecase.CategoryUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategoryByID)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	req, err := parsePageRequest(c, "name", domain.CategorySortProperties)
	if err != nil {
		h.log.Warnf("Invalid paging parameters for categories: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Bad request", err.Error())
		return
	}

	page, err := h.useCase.FindAllPaged(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Infof("Retrieved %d categories", page.NumberOfElements)
	c.JSON(http.StatusOK, page)
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.log.Warnf("Invalid category ID parameter: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "Bad request", "Invalid category ID format")
		return
	}

	category, err := h.useCase.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var body dto.CategoryDTO
	if !bindJSON(c, h.log, &body) {
		return
	}

	created, err := h.useCase.Insert(c.Request.Context(), body)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Infof("Category created successfully: ID %d, Name %s", created.ID, created.Name)
	c.Header("Location", locationOf(c, created.ID))
	c.JSON(http.StatusCreated, created)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.log.Warnf("Invalid category ID parameter for update: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "Bad request", "Invalid category ID format")
		return
	}

	var body dto.CategoryDTO
	if !bindJSON(c, h.log, &body) {
		return
	}

	updated, err := h.useCase.Update(c.Request.Context(), id, body)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Infof("Category updated successfully: ID %d", updated.ID)
	c.JSON(http.StatusOK, updated)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.log.Warnf("Invalid category ID parameter for delete: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "Bad request", "Invalid category ID format")
		return
	}

	if err := h.useCase.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Infof("Category deleted successfully: ID %d", id)
	c.Status(http.StatusNoContent)
}
