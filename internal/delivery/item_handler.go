package delivery

import (
	"net/http"
	"strconv"

	"crepe_controlador/internal/domain"
	"crepe_controlador/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ItemHandler struct {
	useCase usecase.ItemUseCase
	log     *logrus.Logger
}

func NewItemHandler(uc usecase.ItemUseCase, logger *logrus.Logger) *ItemHandler {
	return &ItemHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ItemHandler) RegisterRoutes(router gin.IRouter) {
	itens := router.Group("/itens")
	{
		itens.GET("", h.ListarItens)
		itens.GET("/:id", h.ObterItem)
		itens.POST("", h.CriarItem)
		itens.PUT("/:id", h.AtualizarItem)
	}
}

func (h *ItemHandler) ListarItens(c *gin.Context) {
	itens, err := h.useCase.ListarItens()
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to list itens: %v", err)
		ErrorResponse(c, statusCode, "Failed to retrieve itens")
		return
	}

	SuccessResponse(c, http.StatusOK, "Itens retrieved successfully", itens)
}

func (h *ItemHandler) ObterItem(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid item ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	item, err := h.useCase.ObterItem(id)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to get item by ID %d: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to retrieve item: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Item retrieved successfully", item)
}

func (h *ItemHandler) CriarItem(c *gin.Context) {
	var item domain.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		h.log.Errorf("Failed to bind JSON for create item: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.useCase.CriarItem(&item)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to create item '%s': %v", item.Nome, err)
		ErrorResponse(c, statusCode, "Failed to create item: "+err.Error())
		return
	}

	h.log.Infof("Item created successfully: ID %d, Nome %s", created.ID, created.Nome)
	SuccessResponse(c, http.StatusCreated, "Item created successfully", created)
}

func (h *ItemHandler) AtualizarItem(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid item ID parameter for update: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	var item domain.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		h.log.Errorf("Failed to bind JSON for update item ID %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated, err := h.useCase.AtualizarItem(id, &item)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to update item ID %d: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to update item: "+err.Error())
		return
	}

	h.log.Infof("Item updated successfully: ID %d", updated.ID)
	SuccessResponse(c, http.StatusOK, "Item updated successfully", updated)
}
