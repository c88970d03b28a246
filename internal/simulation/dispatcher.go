package simulation

import (
	apperrors "finlight-engine/internal/common/errors"
	"finlight-engine/internal/common/logger"
	"finlight-engine/internal/common/metrics"
)

// Simulator validates inputs and dispatches to the handler for a type.
// It holds no mutable state and is safe for concurrent use.
type Simulator struct {
	logger logger.Logger
}

func NewSimulator(log logger.Logger) *Simulator {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Simulator{logger: log.WithFields(map[string]interface{}{"component": "simulator"})}
}

// Run returns UNKNOWN_SIMULATION_TYPE for an unregistered type and
// INVALID_INPUT when inputs fail the type's schema.
func (s *Simulator) Run(simulationType string, inputs Inputs, env Envelope) (Result, error) {
	t, err := ParseType(simulationType)
	if err != nil {
		metrics.SimulationsRun.WithLabelValues("unknown", "rejected").Inc()
		s.logger.Info("Rejected unknown simulation type", map[string]interface{}{
			"simulationType": simulationType,
		})
		return nil, err
	}

	if err := ValidateInputs(t, inputs); err != nil {
		metrics.SimulationsRun.WithLabelValues(string(t), "invalid").Inc()
		s.logger.Info("Simulation inputs rejected", map[string]interface{}{
			"simulationType": t,
			"error":          err,
		})
		return nil, err
	}

	res, err := dispatch(t, inputs.compact(), env)
	if err != nil {
		metrics.SimulationsRun.WithLabelValues(string(t), "error").Inc()
		return nil, err
	}

	metrics.SimulationsRun.WithLabelValues(string(t), "ok").Inc()
	s.logger.Debug("Simulation completed", map[string]interface{}{
		"simulationType": t,
		"title":          res.Brief().Title,
	})
	return res, nil
}

func dispatch(t Type, in Inputs, env Envelope) (Result, error) {
	switch t {
	case MonthlyBudgetForecast:
		return wrap(monthlyBudgetForecast(in, env))
	case LoanAffordability:
		return wrap(loanAffordability(in, env))
	case SavingsGoalTracker:
		return wrap(savingsGoalTracker(in, env))
	case ExpenseReductionImpact:
		return wrap(expenseReductionImpact(in, env))
	case LifeEventPlanning:
		return wrap(lifeEventPlanning(in, env))
	case LoanImpactEstimation:
		return wrap(loanImpactEstimation(in, env))
	case IncomeDropAlert:
		return wrap(incomeDropAlert(in, env))
	case FestiveSeasonSpending:
		return wrap(festiveSeasonSpending(in, env))
	case RetirementReadiness:
		return wrap(retirementReadiness(in, env))
	case WeatherEventImpact:
		return wrap(weatherEventImpact(in, env))
	case EMIVsSavingDilemma:
		return wrap(emiVsSavingDilemma(in, env))
	case InvestmentPlanning:
		return wrap(investmentPlanning(in, env))
	case BestOptionSelector:
		return wrap(bestOptionSelector(in, env))
	}
	return nil, apperrors.NewUnknownSimulationTypeError(string(t))
}

// wrap keeps a typed nil pointer from becoming a non-nil Result.
func wrap[R Result](r R, err error) (Result, error) {
	if err != nil {
		return nil, err
	}
	return r, nil
}
