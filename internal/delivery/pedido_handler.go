package delivery

import (
	"net/http"
	"strconv"

	"crepe_controlador/internal/domain"
	"crepe_controlador/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PedidoHandler struct {
	useCase usecase.PedidoUseCase
	log     *logrus.Logger
}

func NewPedidoHandler(uc usecase.PedidoUseCase, logger *logrus.Logger) *PedidoHandler {
	return &PedidoHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *PedidoHandler) RegisterRoutes(router gin.IRouter) {
	pedidos := router.Group("/pedidos")
	{
		pedidos.POST("", h.CriarPedido)
		pedidos.PUT("/:id", h.AtualizarPedido)
		pedidos.GET("/:id", h.ObterPedido)
		pedidos.GET("/pesquisar", h.PesquisarPedidos)
		pedidos.GET("/grupo-status", h.ListarPorGrupoStatus)
		pedidos.GET("/abertos", h.ListarAbertosPorTipo)
	}
}

func (h *PedidoHandler) CriarPedido(c *gin.Context) {
	var input domain.PedidoCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.Errorf("Failed to bind JSON for create pedido: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	pedido, err := h.useCase.CriarPedido(&input)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to create pedido: %v", err)
		ErrorResponse(c, statusCode, "Failed to create pedido: "+err.Error())
		return
	}

	h.log.Infof("Pedido %d (%s) created successfully", pedido.ID, pedido.Codigo)
	SuccessResponse(c, http.StatusCreated, "Pedido created successfully", pedido)
}

func (h *PedidoHandler) AtualizarPedido(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid pedido ID parameter for update: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid pedido ID format")
		return
	}

	var input domain.PedidoUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.Warnf("Failed to bind JSON for update pedido %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	pedido, err := h.useCase.AtualizarPedido(id, &input)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to update pedido %d: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to update pedido: "+err.Error())
		return
	}

	h.log.Infof("Pedido %d updated successfully to status '%s'", pedido.ID, pedido.Status)
	SuccessResponse(c, http.StatusOK, "Pedido updated successfully", pedido)
}

func (h *PedidoHandler) ObterPedido(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid pedido ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid pedido ID format")
		return
	}

	pedido, err := h.useCase.ObterPedido(id)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to get pedido by ID %d: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to retrieve pedido: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Pedido retrieved successfully", pedido)
}

func (h *PedidoHandler) PesquisarPedidos(c *gin.Context) {
	termo := c.Query("termo")

	pedidos, err := h.useCase.PesquisarPedidos(termo)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to search pedidos for termo '%s': %v", termo, err)
		ErrorResponse(c, statusCode, "Failed to search pedidos: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Pedidos retrieved successfully", pedidos)
}

func (h *PedidoHandler) ListarPorGrupoStatus(c *gin.Context) {
	grupo := domain.GrupoStatus(c.Query("grupo"))

	pedidos, err := h.useCase.ListarPorGrupoStatus(grupo)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to list pedidos for grupo '%s': %v", grupo, err)
		ErrorResponse(c, statusCode, "Failed to list pedidos: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Pedidos retrieved successfully", pedidos)
}

func (h *PedidoHandler) ListarAbertosPorTipo(c *gin.Context) {
	tipo := domain.TipoPedido(c.Query("tipoPedido"))

	pedidos, err := h.useCase.ListarAbertosPorTipo(tipo)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to list pedidos abertos for tipo '%s': %v", tipo, err)
		ErrorResponse(c, statusCode, "Failed to list pedidos: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Pedidos retrieved successfully", pedidos)
}
