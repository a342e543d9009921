package delivery

import (
	"net/http"
	"strconv"

	"catalog_service/internal/domain"
	"catalog_service/internal/dto"
	"catalog_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProductByID)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	req, err := parsePageRequest(c, "name", domain.ProductSortProperties)
	if err != nil {
		h.log.Warnf("Invalid paging parameters for products: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Bad request", err.Error())
		return
	}

	var filter domain.ProductFilter
	if categoryIDStr := c.Query("categoryId"); categoryIDStr != "" {
		categoryID, err := strconv.ParseInt(categoryIDStr, 10, 64)
		if err != nil || categoryID < 0 {
			h.log.Warnf("Invalid categoryId query parameter: %s", categoryIDStr)
			ErrorResponse(c, http.StatusBadRequest, "Bad request", "invalid categoryId '"+categoryIDStr+"'")
			return
		}
		filter.CategoryID = categoryID
	}
	filter.Name = c.Query("name")

	page, err := h.useCase.FindAllPaged(c.Request.Context(), filter, req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Infof("Retrieved %d products", page.NumberOfElements)
	c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.log.Warnf("Invalid product ID parameter: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "Bad request", "Invalid product ID format")
		return
	}

	product, err := h.useCase.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var body dto.ProductDTO
	if !bindJSON(c, h.log, &body) {
		return
	}

	created, err := h.useCase.Insert(c.Request.Context(), body)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Infof("Product created successfully: ID %d, Name %s", created.ID, created.Name)
	c.Header("Location", locationOf(c, created.ID))
	c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.log.Warnf("Invalid product ID parameter for update: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "Bad request", "Invalid product ID format")
		return
	}

	var body dto.ProductDTO
	if !bindJSON(c, h.log, &body) {
		return
	}

	updated, err := h.useCase.Update(c.Request.Context(), id, body)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Infof("Product updated successfully: ID %d", updated.ID)
	c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.log.Warnf("Invalid product ID parameter for delete: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "Bad request", "Invalid product ID format")
		return
	}

	if err := h.useCase.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Infof("Product deleted successfully: ID %d", id)
	c.Status(http.StatusNoContent)
}
