package delivery

import (
	"net/http"
	"strconv"
	"time"

	"crepe_controlador/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type DashboardHandler struct {
	useCase usecase.DashboardUseCase
	log     *logrus.Logger
}

func NewDashboardHandler(uc usecase.DashboardUseCase, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *DashboardHandler) RegisterRoutes(router gin.IRouter) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/horarios/periodo", h.HorariosPicoPeriodo)
		dashboard.GET("/horarios/dia-semana", h.HorariosPicoDiaSemana)
		dashboard.GET("/horarios/mes", h.HorariosPicoMes)
		dashboard.GET("/dia-semana/picos", h.PicosDiaSemana)
		dashboard.GET("/dia-semana/distribuicao", h.DistribuicaoDiaSemana)
		dashboard.GET("/resumo", h.ResumoPeriodo)
		dashboard.GET("/itens-ranking", h.ItensRanking)
		dashboard.GET("/tipo-pedido", h.TipoPedido)
		dashboard.GET("/periodo-total", h.PeriodoTotal)
	}
}

// parseJanela reads the required dataInicio/dataFim query pair.
func (h *DashboardHandler) parseJanela(c *gin.Context) (time.Time, time.Time, bool) {
	inicio, err := time.Parse(dateLayout, c.Query("dataInicio"))
	if err != nil {
		h.log.Warnf("Invalid dataInicio parameter '%s'", c.Query("dataInicio"))
		ErrorResponse(c, http.StatusBadRequest, "Invalid dataInicio: expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	fim, err := time.Parse(dateLayout, c.Query("dataFim"))
	if err != nil {
		h.log.Warnf("Invalid dataFim parameter '%s'", c.Query("dataFim"))
		ErrorResponse(c, http.StatusBadRequest, "Invalid dataFim: expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return inicio, fim, true
}

// parseJanelaOpcional reads the same pair but tolerates absence of
// either bound (unbounded reports).
func (h *DashboardHandler) parseJanelaOpcional(c *gin.Context) (*time.Time, *time.Time, bool) {
	var inicio, fim *time.Time

	if raw := c.Query("dataInicio"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.log.Warnf("Invalid dataInicio parameter '%s'", raw)
			ErrorResponse(c, http.StatusBadRequest, "Invalid dataInicio: expected YYYY-MM-DD")
			return nil, nil, false
		}
		inicio = &parsed
	}
	if raw := c.Query("dataFim"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.log.Warnf("Invalid dataFim parameter '%s'", raw)
			ErrorResponse(c, http.StatusBadRequest, "Invalid dataFim: expected YYYY-MM-DD")
			return nil, nil, false
		}
		fim = &parsed
	}
	return inicio, fim, true
}

func (h *DashboardHandler) HorariosPicoPeriodo(c *gin.Context) {
	inicio, fim, ok := h.parseJanela(c)
	if !ok {
		return
	}

	horarios, err := h.useCase.HorariosPicoPorPeriodo(inicio, fim)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to get horarios de pico for periodo: %v", err)
		ErrorResponse(c, statusCode, "Failed to retrieve horarios de pico: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Horarios de pico retrieved successfully", horarios)
}

func (h *DashboardHandler) HorariosPicoDiaSemana(c *gin.Context) {
	diaSemana, err := strconv.Atoi(c.Query("diaSemana"))
	if err != nil {
		h.log.Warnf("Invalid diaSemana parameter '%s'", c.Query("diaSemana"))
		ErrorResponse(c, http.StatusBadRequest, "Invalid diaSemana: expected an integer between 0 and 6")
		return
	}

	var ano *int
	if raw := c.Query("ano"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.log.Warnf("Invalid ano parameter '%s'", raw)
			ErrorResponse(c, http.StatusBadRequest, "Invalid ano: expected an integer")
			return
		}
		ano = &parsed
	}

	horarios, err := h.useCase.HorariosPicoPorDiaSemana(diaSemana, ano)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to get horarios de pico for dia da semana %d: %v", diaSemana, err)
		ErrorResponse(c, statusCode, "Failed to retrieve horarios de pico: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Horarios de pico retrieved successfully", horarios)
}

func (h *DashboardHandler) HorariosPicoMes(c *gin.Context) {
	ano, err := strconv.Atoi(c.Query("ano"))
	if err != nil {
		h.log.Warnf("Invalid ano parameter '%s'", c.Query("ano"))
		ErrorResponse(c, http.StatusBadRequest, "Invalid ano: expected an integer")
		return
	}
	mes, err := strconv.Atoi(c.Query("mes"))
	if err != nil {
		h.log.Warnf("Invalid mes parameter '%s'", c.Query("mes"))
		ErrorResponse(c, http.StatusBadRequest, "Invalid mes: expected an integer between 1 and 12")
		return
	}

	horarios, err := h.useCase.HorariosPicoPorMes(ano, mes)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to get horarios de pico for %04d-%02d: %v", ano, mes, err)
		ErrorResponse(c, statusCode, "Failed to retrieve horarios de pico: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Horarios de pico retrieved successfully", horarios)
}

func (h *DashboardHandler) PicosDiaSemana(c *gin.Context) {
	inicio, fim, ok := h.parseJanela(c)
	if !ok {
		return
	}

	picos, err := h.useCase.PicosDiaSemana(inicio, fim)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to get picos por dia da semana: %v", err)
		ErrorResponse(c, statusCode, "Failed to retrieve picos por dia da semana: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Picos por dia da semana retrieved successfully", picos)
}

func (h *DashboardHandler) DistribuicaoDiaSemana(c *gin.Context) {
	inicio, fim, ok := h.parseJanela(c)
	if !ok {
		return
	}

	distribuicao, err := h.useCase.DistribuicaoDiaSemana(inicio, fim)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to get distribuicao por dia da semana: %v", err)
		ErrorResponse(c, statusCode, "Failed to retrieve distribuicao por dia da semana: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Distribuicao por dia da semana retrieved successfully", distribuicao)
}

func (h *DashboardHandler) ResumoPeriodo(c *gin.Context) {
	inicio, fim, ok := h.parseJanelaOpcional(c)
	if !ok {
		return
	}

	resumo, err := h.useCase.ResumoPeriodo(inicio, fim)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to get resumo do periodo: %v", err)
		ErrorResponse(c, statusCode, "Failed to retrieve resumo do periodo: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Resumo do periodo retrieved successfully", resumo)
}

func (h *DashboardHandler) ItensRanking(c *gin.Context) {
	inicio, fim, ok := h.parseJanelaOpcional(c)
	if !ok {
		return
	}

	ranking, err := h.useCase.ItensRanking(inicio, fim)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to get itens ranking: %v", err)
		ErrorResponse(c, statusCode, "Failed to retrieve itens ranking: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Itens ranking retrieved successfully", ranking)
}

func (h *DashboardHandler) TipoPedido(c *gin.Context) {
	inicio, fim, ok := h.parseJanelaOpcional(c)
	if !ok {
		return
	}

	resumos, err := h.useCase.TipoPedidoResumo(inicio, fim)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to get resumo por tipo de pedido: %v", err)
		ErrorResponse(c, statusCode, "Failed to retrieve resumo por tipo de pedido: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Resumo por tipo de pedido retrieved successfully", resumos)
}

func (h *DashboardHandler) PeriodoTotal(c *gin.Context) {
	periodo, err := h.useCase.PeriodoTotal()
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to get periodo total: %v", err)
		ErrorResponse(c, statusCode, "Failed to retrieve periodo total: "+err.Error())
		return
	}

	if periodo == nil {
		// No finalized pedidos yet; the client treats an empty body as
		// "no bound available".
		SuccessResponse(c, http.StatusOK, "No finalized pedidos yet", nil)
		return
	}

	SuccessResponse(c, http.StatusOK, "Periodo total retrieved successfully", periodo)
}
