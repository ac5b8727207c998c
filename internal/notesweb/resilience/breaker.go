// Package resilience защищает вызовы удаленного сервиса заметок circuit breaker'ом.
// Повторных попыток нет: неудачный вызов завершает пользовательское действие.
package resilience

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"notesweb/internal/notesweb/config"
	"notesweb/pkg/logger"
)

// Константы для логирования.
const (
	LogCircuitStateChange = "circuit breaker state changed"
	LogCircuitReject      = "circuit breaker rejected request"
)

// ErrCircuitOpen возвращается, когда breaker не пропускает запрос.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// ServiceResilience оборачивает вызовы сервиса в gobreaker.
type ServiceResilience struct {
	serviceName string
	cb          *gobreaker.CircuitBreaker
}

// NewServiceResilience создает breaker для сервиса.
// isFailure решает, считается ли ошибка отказом сервиса; nil означает любую ошибку.
func NewServiceResilience(
	ctx context.Context,
	serviceName string,
	cfg config.BreakerConfig,
	isFailure func(error) bool,
) *ServiceResilience {
	log := logger.Log(ctx).With(zap.String("circuit_breaker", serviceName))

	threshold := cfg.ConsecutiveFails
	if threshold == 0 {
		threshold = 1
	}

	settings := gobreaker.Settings{
		Name:        serviceName,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn(ctx, LogCircuitStateChange,
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			if isFailure == nil {
				return false
			}
			return !isFailure(err)
		},
	}

	return &ServiceResilience{
		serviceName: serviceName,
		cb:          gobreaker.NewCircuitBreaker(settings),
	}
}

// Execute выполняет операцию под защитой breaker'а.
func (r *ServiceResilience) Execute(ctx context.Context, operationName string, operation func() error) error {
	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, operation()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		logger.Log(ctx).Warn(ctx, LogCircuitReject,
			zap.String("service", r.serviceName),
			zap.String("operation", operationName),
			zap.Error(err))
		return fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	}
	return err
}

// State возвращает текущее состояние breaker'а.
func (r *ServiceResilience) State() gobreaker.State {
	return r.cb.State()
}
