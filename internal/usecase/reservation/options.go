package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/restaurant-reservations/internal/timezone"
)

const defaultStoreTimeout = 3 * time.Second

// Options are shared by every reservation use case.
type Options struct {
	// StoreTimeout bounds each call into the Record Store.
	StoreTimeout time.Duration

	// Now returns the current time in the restaurant's location.
	Now func() time.Time

	// EmailDomainCheck, when set, must accept the guest email's domain.
	EmailDomainCheck func(email string) bool
}

func (o Options) withDefaults() Options {
	if o.StoreTimeout <= 0 {
		o.StoreTimeout = defaultStoreTimeout
	}
	if o.Now == nil {
		o.Now = timezone.Clock(timezone.DefaultTimezone)
	}
	return o
}

func (o Options) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.StoreTimeout)
}
