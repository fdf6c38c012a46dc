// Package users is the user directory: every registered email and its
// credential record, persisted as one JSON document.
//
// Each mutation reads the whole directory, changes it in memory and writes
// the whole directory back. Two writers working from the same snapshot lose
// one of the updates; nothing here tries to prevent that.
package users

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/imagenstudio/internal/client/models"
	"github.com/dmitrijs2005/imagenstudio/internal/client/storage"
	"github.com/dmitrijs2005/imagenstudio/internal/common"
)

// Repository describes the operations of the user directory.
type Repository interface {
	// GetAll returns the stored directory, or an empty one.
	GetAll(ctx context.Context) models.Directory
	// Save overwrites the stored directory. It reports whether the write went through.
	Save(ctx context.Context, dir models.Directory) bool
	FindByEmail(ctx context.Context, email string) (models.UserRecord, bool)
	// FindByResetToken scans all records for a pending token.
	FindByResetToken(ctx context.Context, token string) (string, models.UserRecord, bool)
	// Create registers email; it fails with common.ErrEmailTaken if present.
	Create(ctx context.Context, email, password string) error
}

type Directory struct {
	store storage.KeyValue
}

func NewDirectory(store storage.KeyValue) *Directory {
	return &Directory{store: store}
}

func (d *Directory) GetAll(ctx context.Context) models.Directory {
	var dir models.Directory
	if !d.store.Read(ctx, common.UsersStorageKey, &dir) || dir == nil {
		return models.Directory{}
	}
	return dir
}

func (d *Directory) Save(ctx context.Context, dir models.Directory) bool {
	return d.store.Write(ctx, common.UsersStorageKey, dir)
}

func (d *Directory) FindByEmail(ctx context.Context, email string) (models.UserRecord, bool) {
	u, ok := d.GetAll(ctx)[email]
	return u, ok
}

// FindByResetToken returns the first record, in email order, whose pending
// token equals token. Tokens are not enforced unique. An empty token never
// matches.
func (d *Directory) FindByResetToken(ctx context.Context, token string) (string, models.UserRecord, bool) {
	if token == "" {
		return "", models.UserRecord{}, false
	}

	dir := d.GetAll(ctx)
	emails := make([]string, 0, len(dir))
	for email := range dir {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	for _, email := range emails {
		if dir[email].ResetToken == token {
			return email, dir[email], true
		}
	}
	return "", models.UserRecord{}, false
}

func (d *Directory) Create(ctx context.Context, email, password string) error {
	dir := d.GetAll(ctx)
	if _, ok := dir[email]; ok {
		return common.ErrEmailTaken
	}

	dir[email] = models.UserRecord{Password: password, Verified: true}
	if !d.Save(ctx, dir) {
		return common.ErrStorageUnavailable
	}
	return nil
}
