package progress

import (
	"sync"
	"time"
)

// Steps shown while a report request is in flight.
var Steps = []string{
	"Conectando...",
	"Enviando parámetros...",
	"Procesando datos...",
	"Calculando métricas...",
	"Analizando tendencias...",
	"Organizando data...",
	"Generando reporte...",
}

const (
	tickInterval = 100 * time.Millisecond
	ceiling      = 95.0
	fastSteps    = 3
	fastPace     = 3.0  // seconds spent on the fast steps
	slowPace     = 27.0 // seconds per remaining step
)

// Simulator advances a cosmetic progress indicator independently of the real
// request. It never reaches 100 on its own: completion is gated on the
// network result via Finish, and Stop releases the ticker on every exit path
// so an abandoned view cannot leak a timer.
type Simulator struct {
	mu       sync.Mutex
	progress float64
	step     int
	running  bool
	done     chan struct{}
}

func NewSimulator() *Simulator {
	return &Simulator{}
}

func (s *Simulator) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.progress = 0
	s.step = 0
	s.running = true
	s.done = make(chan struct{})
	go s.run(s.done)
}

func (s *Simulator) run(done chan struct{}) {
	t := time.NewTicker(tickInterval)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			s.advance()
		}
	}
}

func (s *Simulator) advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	var inc float64
	if s.step < fastSteps {
		inc = 100 / (fastPace * 10)
	} else {
		inc = 100 / (slowPace * float64(len(Steps)-fastSteps) * 10)
	}
	s.progress += inc
	if s.progress > ceiling {
		s.progress = ceiling
	}
	if n := int(s.progress / 100 * float64(len(Steps))); n > s.step && n < len(Steps) {
		s.step = n
	}
}

// Progress returns the current percentage and active step label.
func (s *Simulator) Progress() (float64, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress, Steps[s.step]
}

// Finish stops the ticker and fast-forwards to 100. Called only after the
// real response has arrived.
func (s *Simulator) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.progress = 100
	s.step = len(Steps) - 1
}

// Stop cancels the simulation without completing it, for failure and reset
// paths.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Simulator) stopLocked() {
	if !s.running {
		return
	}
	s.running = false
	close(s.done)
}
