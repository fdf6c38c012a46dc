// Package history keeps the bounded, most-recent-first list of past
// generations.
package history

import (
	"context"

	"github.com/dmitrijs2005/imagenstudio/internal/client/models"
	"github.com/dmitrijs2005/imagenstudio/internal/client/storage"
	"github.com/dmitrijs2005/imagenstudio/internal/common"
)

// Repository describes the history log. Every mutation persists the full list.
type Repository interface {
	Load(ctx context.Context) []models.HistoryItem
	Record(ctx context.Context, item models.HistoryItem) []models.HistoryItem
	Clear(ctx context.Context) []models.HistoryItem
	Select(ctx context.Context, id int64) (models.Selection, bool)
}

type Log struct {
	store storage.KeyValue
	limit int
}

// NewLog returns a Log capped at common.MaxHistoryItems.
func NewLog(store storage.KeyValue) *Log {
	return &Log{store: store, limit: common.MaxHistoryItems}
}

func (l *Log) Load(ctx context.Context) []models.HistoryItem {
	var items []models.HistoryItem
	if !l.store.Read(ctx, common.HistoryStorageKey, &items) || items == nil {
		return []models.HistoryItem{}
	}
	if len(items) > l.limit {
		items = items[:l.limit]
	}
	return items
}

// Record puts item first and drops the oldest entries beyond the cap. If the
// clock has not moved past the current head, item.ID is bumped so ids stay
// strictly increasing. The stored list is returned.
func (l *Log) Record(ctx context.Context, item models.HistoryItem) []models.HistoryItem {
	items := l.Load(ctx)
	if len(items) > 0 && item.ID <= items[0].ID {
		item.ID = items[0].ID + 1
	}

	next := make([]models.HistoryItem, 0, min(len(items)+1, l.limit))
	next = append(next, item)
	for _, it := range items {
		if len(next) == l.limit {
			break
		}
		next = append(next, it)
	}

	l.store.Write(ctx, common.HistoryStorageKey, next)
	return next
}

func (l *Log) Clear(ctx context.Context) []models.HistoryItem {
	empty := []models.HistoryItem{}
	l.store.Write(ctx, common.HistoryStorageKey, empty)
	return empty
}

// Select returns the prompt, image and ratio of the item with the given id.
func (l *Log) Select(ctx context.Context, id int64) (models.Selection, bool) {
	for _, it := range l.Load(ctx) {
		if it.ID == id {
			return models.Selection{Prompt: it.Prompt, ImageURL: it.ImageURL, AspectRatio: it.AspectRatio}, true
		}
	}
	return models.Selection{}, false
}
