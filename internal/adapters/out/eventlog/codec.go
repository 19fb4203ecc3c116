// Package eventlog provides the in-process event log: durable append through
// a ports.EventJournal followed by synchronous fan-out to subscribers.
package eventlog

import (
	"encoding/json"
	"fmt"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/ordering"
	"kitchen/internal/core/domain/model/pizza"
	"kitchen/internal/pkg/errs"
)

type decodeFunc func(payload []byte) (kernel.Event, error)

// Codec turns events into JSON payloads and back, keyed by event type.
type Codec struct {
	decoders map[string]decodeFunc
}

func NewCodec() *Codec {
	return &Codec{decoders: make(map[string]decodeFunc)}
}

// NewDomainCodec knows every event of the kitchen.
func NewDomainCodec() *Codec {
	c := NewCodec()

	Register[pizza.AddedEvent](c)
	Register[pizza.PrepStartedEvent](c)
	Register[pizza.PrepFinishedEvent](c)
	Register[pizza.BakeFinishedEvent](c)

	Register[kitchenorder.AddedEvent](c)
	Register[kitchenorder.PrepStartedEvent](c)
	Register[kitchenorder.BakeStartedEvent](c)
	Register[kitchenorder.AssemblyStartedEvent](c)
	Register[kitchenorder.AssemblyFinishedEvent](c)

	Register[ordering.PaidEvent](c)

	return c
}

// Register makes E decodable under the type its zero value reports. E must be
// a struct value type.
func Register[E kernel.Event](c *Codec) {
	var zero E
	c.decoders[zero.EventType()] = func(payload []byte) (kernel.Event, error) {
		var event E
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, err
		}
		return event, nil
	}
}

func (c *Codec) Encode(event kernel.Event) ([]byte, error) {
	if _, ok := c.decoders[event.EventType()]; !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%s is not registered", event.EventType()))
	}
	return json.Marshal(event)
}

func (c *Codec) Decode(eventType string, payload []byte) (kernel.Event, error) {
	decode, ok := c.decoders[eventType]
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%s is not registered", eventType))
	}

	event, err := decode(payload)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", eventType, err)
	}
	return event, nil
}
