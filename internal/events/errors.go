package events

import "errors"

var (
	// ErrPublish возвращается, если брокер не принял событие
	ErrPublish = errors.New("events: failed to publish")
)
