// Package eventlog routes domain events into the structured log.
package eventlog

import (
	log "github.com/sirupsen/logrus"

	"shopapi/pkg/domain/service"
)

type Dispatcher struct{}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) Dispatch(event service.Event) error {
	log.WithFields(log.Fields{
		"event":   event.Type(),
		"payload": event,
	}).Info("domain event")
	return nil
}
