package usecase

import (
	"fmt"
	"time"

	"crepe_controlador/internal/domain"

	"github.com/sirupsen/logrus"
)

type DashboardUseCase interface {
	HorariosPicoPorPeriodo(inicio, fim time.Time) ([]domain.HorarioPico, error)
	HorariosPicoPorDiaSemana(diaSemana int, ano *int) ([]domain.HorarioPico, error)
	HorariosPicoPorMes(ano, mes int) ([]domain.HorarioPico, error)
	PicosDiaSemana(inicio, fim time.Time) ([]domain.DiaSemanaPico, error)
	DistribuicaoDiaSemana(inicio, fim time.Time) ([]domain.DiaSemanaPico, error)
	ResumoPeriodo(inicio, fim *time.Time) (*domain.ResumoPeriodo, error)
	ItensRanking(inicio, fim *time.Time) ([]domain.ItemRanking, error)
	TipoPedidoResumo(inicio, fim *time.Time) ([]domain.TipoPedidoResumo, error)
	PeriodoTotal() (*domain.PeriodoTotal, error)
}

var _ DashboardUseCase = (*dashboardUseCase)(nil)

type dashboardUseCase struct {
	dashboardRepo domain.DashboardRepository
	log           *logrus.Logger
}

func NewDashboardUseCase(dashboardRepo domain.DashboardRepository, logger *logrus.Logger) DashboardUseCase {
	return &dashboardUseCase{
		dashboardRepo: dashboardRepo,
		log:           logger,
	}
}

// validarJanela rejects inverted windows before they reach the query
// layer, which assumes inicio <= fim.
func (uc *dashboardUseCase) validarJanela(inicio, fim time.Time) error {
	if inicio.After(fim) {
		uc.log.Warnf("Use Case: Invalid dashboard window: inicio %s after fim %s", inicio.Format("2006-01-02"), fim.Format("2006-01-02"))
		return fmt.Errorf("%w: dataInicio cannot be after dataFim", domain.ErrInvalidArgument)
	}
	return nil
}

func (uc *dashboardUseCase) validarJanelaOpcional(inicio, fim *time.Time) error {
	if inicio != nil && fim != nil {
		return uc.validarJanela(*inicio, *fim)
	}
	return nil
}

func (uc *dashboardUseCase) HorariosPicoPorPeriodo(inicio, fim time.Time) ([]domain.HorarioPico, error) {
	if err := uc.validarJanela(inicio, fim); err != nil {
		return nil, err
	}
	return uc.dashboardRepo.HorariosPicoPorPeriodo(inicio, fim)
}

func (uc *dashboardUseCase) HorariosPicoPorDiaSemana(diaSemana int, ano *int) ([]domain.HorarioPico, error) {
	if diaSemana < 0 || diaSemana > 6 {
		uc.log.Warnf("Use Case: Invalid dia da semana %d", diaSemana)
		return nil, fmt.Errorf("%w: diaSemana must be between 0 (Domingo) and 6 (Sabado)", domain.ErrInvalidArgument)
	}
	return uc.dashboardRepo.HorariosPicoPorDiaSemana(diaSemana, ano)
}

func (uc *dashboardUseCase) HorariosPicoPorMes(ano, mes int) ([]domain.HorarioPico, error) {
	if mes < 1 || mes > 12 {
		uc.log.Warnf("Use Case: Invalid mes %d", mes)
		return nil, fmt.Errorf("%w: mes must be between 1 and 12", domain.ErrInvalidArgument)
	}
	if ano <= 0 {
		return nil, fmt.Errorf("%w: invalid ano", domain.ErrInvalidArgument)
	}
	return uc.dashboardRepo.HorariosPicoPorMes(ano, mes)
}

func (uc *dashboardUseCase) PicosDiaSemana(inicio, fim time.Time) ([]domain.DiaSemanaPico, error) {
	if err := uc.validarJanela(inicio, fim); err != nil {
		return nil, err
	}
	return uc.dashboardRepo.PicosDiaSemana(inicio, fim)
}

func (uc *dashboardUseCase) DistribuicaoDiaSemana(inicio, fim time.Time) ([]domain.DiaSemanaPico, error) {
	if err := uc.validarJanela(inicio, fim); err != nil {
		return nil, err
	}
	return uc.dashboardRepo.DistribuicaoDiaSemana(inicio, fim)
}

func (uc *dashboardUseCase) ResumoPeriodo(inicio, fim *time.Time) (*domain.ResumoPeriodo, error) {
	if err := uc.validarJanelaOpcional(inicio, fim); err != nil {
		return nil, err
	}
	return uc.dashboardRepo.ResumoPeriodo(inicio, fim)
}

func (uc *dashboardUseCase) ItensRanking(inicio, fim *time.Time) ([]domain.ItemRanking, error) {
	if err := uc.validarJanelaOpcional(inicio, fim); err != nil {
		return nil, err
	}
	return uc.dashboardRepo.ItensRanking(inicio, fim)
}

func (uc *dashboardUseCase) TipoPedidoResumo(inicio, fim *time.Time) ([]domain.TipoPedidoResumo, error) {
	if err := uc.validarJanelaOpcional(inicio, fim); err != nil {
		return nil, err
	}
	return uc.dashboardRepo.TipoPedidoResumo(inicio, fim)
}

func (uc *dashboardUseCase) PeriodoTotal() (*domain.PeriodoTotal, error) {
	return uc.dashboardRepo.PeriodoTotal()
}
