// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"

	"github.com/danielhkuo/quickly-ballot/models"
)

// Notifier receives every accepted state change before it is applied. A
// non-nil error aborts the operation and leaves the election unchanged.
type Notifier interface {
	Notify(ctx context.Context, event models.Event) error
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, event models.Event) error

func (f NotifierFunc) Notify(ctx context.Context, event models.Event) error {
	return f(ctx, event)
}
