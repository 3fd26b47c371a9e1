package wellspring

import (
	"fmt"
	"log"
)

// Listener receives advisory warnings from the factory, currently only
// property-binding failures. Errors never travel through this channel.
type Listener interface {
	OnWarning(msg string)
}

// LogListener writes warnings through the standard logger.
type LogListener struct{}

func (LogListener) OnWarning(msg string) { log.Printf("wellspring: %s", msg) }

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(msg string)

func (f ListenerFunc) OnWarning(msg string) { f(msg) }

func fireWarning(listeners []Listener, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	for _, l := range listeners {
		l.OnWarning(msg)
	}
}
