package health

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Pinger is satisfied by the postgres and redis clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingCheck reports down when p cannot be pinged.
func PingCheck(p Pinger) Check {
	return func(ctx context.Context) ComponentHealth {
		if err := p.Ping(ctx); err != nil {
			return ComponentHealth{Status: StatusDown, Message: err.Error()}
		}
		return ComponentHealth{Status: StatusUp}
	}
}

// OptionalPingCheck is PingCheck for dependencies the service can run
// without: a failed ping degrades instead of failing readiness.
func OptionalPingCheck(p Pinger) Check {
	return func(ctx context.Context) ComponentHealth {
		if err := p.Ping(ctx); err != nil {
			return ComponentHealth{Status: StatusDegraded, Message: err.Error()}
		}
		return ComponentHealth{Status: StatusUp}
	}
}

// Flag is a readiness switch flipped once a startup phase completes.
type Flag struct {
	ready  atomic.Bool
	detail atomic.Value
}

// Set marks the flag ready and records detail for the report.
func (f *Flag) Set(detail string) {
	f.detail.Store(detail)
	f.ready.Store(true)
}

func (f *Flag) Ready() bool { return f.ready.Load() }

// Check reports down until Set is called.
func (f *Flag) Check(what string) Check {
	return func(context.Context) ComponentHealth {
		if !f.ready.Load() {
			return ComponentHealth{Status: StatusDown, Message: fmt.Sprintf("%s not ready", what)}
		}
		detail, _ := f.detail.Load().(string)
		return ComponentHealth{Status: StatusUp, Message: detail}
	}
}
