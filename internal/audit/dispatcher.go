package audit

import (
	"log"

	"github.com/google/uuid"
)

type Event struct {
	TherapistID uuid.UUID
	Action      string
	Entity      string
	EntityID    *uuid.UUID
	Metadata    any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.TherapistID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

// Dispatch encola el evento sin bloquear. Un dispatcher nil descarta
// todo, lo que permite usar los casos de uso sin auditoría.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// cola llena: descartamos auditoría, nunca rompemos la API
		log.Println("audit queue full, dropping event")
	}
}
