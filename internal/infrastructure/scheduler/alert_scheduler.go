package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/distrifarma-api/internal/application/alerts"
	"github.com/tu-usuario/distrifarma-api/pkg/logger"
)

// AlertScheduler ejecuta el escaneo del motor de alertas en un intervalo fijo
// (cada hora en el despliegue de referencia). Comparte el mismo código que la
// acción manual check-now; la deduplicación vive en el motor, no aquí.
type AlertScheduler struct {
	engine   *alerts.Engine
	interval time.Duration
	log      *logger.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewAlertScheduler construye el scheduler. interval <= 0 usa una hora.
func NewAlertScheduler(engine *alerts.Engine, interval time.Duration, log *logger.Logger) *AlertScheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &AlertScheduler{engine: engine, interval: interval, log: log}
}

// Start lanza el loop en segundo plano. Llamar Start más de una vez es no-op.
func (s *AlertScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)
	s.log.Info().Dur("interval", s.interval).Msg("scheduler de alertas iniciado")
}

// Stop detiene el loop y espera a que termine el escaneo en curso.
func (s *AlertScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	s.log.Info().Msg("scheduler de alertas detenido")
}

func (s *AlertScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.engine.RunScan(ctx); err != nil {
				// El siguiente tick reintenta; el escaneo es sin estado.
				s.log.Error().Err(err).Msg("escaneo de alertas programado falló")
			}
		}
	}
}
