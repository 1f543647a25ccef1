package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts the ambient wall clock so lifecycle and aggregation code
// can be driven with fixed timestamps in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func System() Clock { return systemClock{} }

var Module = fx.Options(
	fx.Provide(func() Clock { return System() }),
)
