package store

import (
	"context"
)

type Invalidator interface {
	Invalidate(context.Context, []string) error
}

type NopInvalidator struct{}

func (NopInvalidator) Invalidate(context.Context, []string) error { return nil }
