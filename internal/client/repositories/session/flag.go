// Package session persists the device-wide "logged in" flag. The flag is not
// tied to any user: whoever logs in on this device sets it, and anyone using
// the device afterwards shares it.
package session

import (
	"context"

	"github.com/dmitrijs2005/imagenstudio/internal/client/storage"
	"github.com/dmitrijs2005/imagenstudio/internal/common"
)

type Repository interface {
	IsLoggedIn(ctx context.Context) bool
	SetLoggedIn(ctx context.Context) bool
	Clear(ctx context.Context) bool
}

type Flag struct {
	store storage.KeyValue
}

func NewFlag(store storage.KeyValue) *Flag {
	return &Flag{store: store}
}

// IsLoggedIn is false when the flag is missing or unreadable.
func (f *Flag) IsLoggedIn(ctx context.Context) bool {
	var v bool
	return f.store.Read(ctx, common.LoggedInStorageKey, &v) && v
}

func (f *Flag) SetLoggedIn(ctx context.Context) bool {
	return f.store.Write(ctx, common.LoggedInStorageKey, true)
}

// Clear removes the flag rather than storing false.
func (f *Flag) Clear(ctx context.Context) bool {
	return f.store.Remove(ctx, common.LoggedInStorageKey)
}
