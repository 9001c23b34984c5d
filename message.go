package jterm

import (
	"fmt"
	"reflect"
)

// Message is posted by a widget to the application.
type Message interface {
	// Sender returns the widget that posted the message.
	Sender() Widget
}

// Submitted is posted by an Input when Enter is pressed.
type Submitted struct {
	Input *Input
	Value string
}

// Sender returns the input that was submitted.
func (m Submitted) Sender() Widget { return m.Input }

// handlerTable maps a concrete message type to its handler.
type handlerTable map[reflect.Type]func(Message)

// OnMessage registers fn as the handler for messages of type M. Each type
// may have one handler; registering a second is an error.
func OnMessage[M Message](fn func(M)) AppOption {
	return func(a *App) error {
		t := reflect.TypeFor[M]()
		if t.Kind() == reflect.Interface {
			return fmt.Errorf("message handler must name a concrete type, got %s", t)
		}
		if _, dup := a.handlers[t]; dup {
			return fmt.Errorf("handler for %s already registered", t)
		}
		a.handlers[t] = func(m Message) { fn(m.(M)) }
		return nil
	}
}
