package services

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/imagenstudio/internal/client/client"
	"github.com/dmitrijs2005/imagenstudio/internal/client/models"
	"github.com/dmitrijs2005/imagenstudio/internal/client/repositories/history"
	"github.com/dmitrijs2005/imagenstudio/internal/common"
	"github.com/dmitrijs2005/imagenstudio/internal/logging"
)

// GenerateErrorPrefix starts every generation error shown to the user.
const GenerateErrorPrefix = "Failed to generate image. "

// GeneratorService runs generations and keeps the history log.
type GeneratorService interface {
	// Generate makes one API call and records the result. The returned item
	// is the one stored at the head of the history.
	Generate(ctx context.Context, prompt string, ratio models.AspectRatio) (models.HistoryItem, error)
	History(ctx context.Context) []models.HistoryItem
	ClearHistory(ctx context.Context) []models.HistoryItem
	Select(ctx context.Context, id int64) (models.Selection, bool)
}

type generatorService struct {
	images  client.ImageGenerator
	history history.Repository
	log     logging.Logger
	now     func() time.Time

	inFlight atomic.Bool
}

func NewGeneratorService(images client.ImageGenerator, h history.Repository, log logging.Logger) GeneratorService {
	return newGeneratorService(images, h, log, time.Now)
}

func newGeneratorService(images client.ImageGenerator, h history.Repository, log logging.Logger, now func() time.Time) *generatorService {
	return &generatorService{images: images, history: h, log: log.With("component", "generator"), now: now}
}

func (g *generatorService) Generate(ctx context.Context, prompt string, ratio models.AspectRatio) (models.HistoryItem, error) {
	if strings.TrimSpace(prompt) == "" {
		return models.HistoryItem{}, common.ErrEmptyPrompt
	}
	if !ratio.Valid() {
		return models.HistoryItem{}, common.ErrInvalidRatio
	}
	if !g.inFlight.CompareAndSwap(false, true) {
		return models.HistoryItem{}, common.ErrGenerationInFlight
	}
	defer g.inFlight.Store(false)

	uri, err := g.images.GenerateImage(ctx, prompt, ratio)
	if err != nil {
		g.log.Error(ctx, "generation failed", "error", err)
		return models.HistoryItem{}, err
	}

	now := g.now().UnixMilli()
	items := g.history.Record(ctx, models.HistoryItem{
		ID:          now,
		Prompt:      prompt,
		ImageURL:    uri,
		AspectRatio: ratio,
		Timestamp:   now,
	})
	return items[0], nil
}

func (g *generatorService) History(ctx context.Context) []models.HistoryItem {
	return g.history.Load(ctx)
}

func (g *generatorService) ClearHistory(ctx context.Context) []models.HistoryItem {
	return g.history.Clear(ctx)
}

func (g *generatorService) Select(ctx context.Context, id int64) (models.Selection, bool) {
	return g.history.Select(ctx, id)
}
