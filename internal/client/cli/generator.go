package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/imagenstudio/internal/client/client"
	"github.com/dmitrijs2005/imagenstudio/internal/client/models"
	"github.com/dmitrijs2005/imagenstudio/internal/client/services"
	"github.com/dmitrijs2005/imagenstudio/internal/common"
	"github.com/dmitrijs2005/imagenstudio/internal/filex"
)

const (
	clearHistoryQuestion = "Are you sure you want to clear your entire generation history? This action cannot be undone."
	imagesDir            = "images"
	promptPreviewLen     = 60
)

var (
	errNoImage   = errors.New("no image to save")
	errBadItemID = errors.New("invalid history id")
)

// SetPrompt replaces the prompt. Without text it asks for one; an empty
// answer keeps the current prompt.
func (a *App) SetPrompt(ctx context.Context, text string) error {
	if text == "" {
		in, err := getSimpleText(a.reader, fmt.Sprintf("Prompt (current: %q)", a.state.prompt), a.out)
		if err != nil {
			return err
		}
		if in == "" {
			return nil
		}
		text = in
	}
	a.state.prompt = text
	return nil
}

func (a *App) SetRatio(ctx context.Context, value string) error {
	if value == "" {
		a.printf("Aspect ratio: %s (available: %s)\n", a.state.ratio, ratioList())
		return nil
	}
	r, err := models.ParseAspectRatio(value)
	if err != nil {
		a.printf("%s Choose one of: %s\n", common.ErrInvalidRatio, ratioList())
		return common.ErrInvalidRatio
	}
	a.state.ratio = r
	return nil
}

func ratioList() string {
	names := make([]string, len(models.AspectRatios))
	for i, r := range models.AspectRatios {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// Generate blocks until the API answers. Input is not read meanwhile, so
// there is never more than one generation per screen.
func (a *App) Generate(ctx context.Context) error {
	s := a.state
	s.lastError = ""
	s.imageURL = ""

	if strings.TrimSpace(s.prompt) == "" {
		a.println(common.ErrEmptyPrompt.Error())
		return common.ErrEmptyPrompt
	}

	a.println("Generating image...")
	item, err := a.generator.Generate(ctx, s.prompt, s.ratio)
	if err != nil {
		s.lastError = services.GenerateErrorPrefix + err.Error()
		a.println(s.lastError)
		return err
	}

	s.imageURL = item.ImageURL
	s.history = a.generator.History(ctx)
	a.printf("Image ready (%s). Type 'save <file>' to write it to disk.\n", describeImage(item.ImageURL))
	return nil
}

func describeImage(uri string) string {
	mime, data, err := client.DecodeDataURI(uri)
	if err != nil {
		return "unreadable image data"
	}
	return fmt.Sprintf("%s, %d bytes", mime, len(data))
}

// Show prints the generator screen.
func (a *App) Show(ctx context.Context) error {
	s := a.state
	a.printf("Prompt:       %s\n", s.prompt)
	a.printf("Aspect ratio: %s\n", s.ratio)
	if s.imageURL != "" {
		a.printf("Image:        %s\n", describeImage(s.imageURL))
	} else {
		a.println("Image:        none")
	}
	if s.lastError != "" {
		a.printf("Error:        %s\n", s.lastError)
	}
	return nil
}

// History lists past generations, most recent first.
func (a *App) History(ctx context.Context) error {
	s := a.state
	s.history = a.generator.History(ctx)
	if len(s.history) == 0 {
		a.println("No history yet.")
		return nil
	}
	for _, it := range s.history {
		a.printf("%d  %s  %-5s  %s\n", it.ID, it.CreatedAt().Format(time.DateTime), it.AspectRatio, preview(it.Prompt))
	}
	return nil
}

func preview(p string) string {
	r := []rune(p)
	if len(r) <= promptPreviewLen {
		return p
	}
	return string(r[:promptPreviewLen-3]) + "..."
}

// Select restores a history item without calling the API.
func (a *App) Select(ctx context.Context, id string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		a.println("Usage: select <id>")
		return errBadItemID
	}
	sel, ok := a.generator.Select(ctx, n)
	if !ok {
		a.printf("No history item %d.\n", n)
		return errBadItemID
	}

	s := a.state
	s.prompt = sel.Prompt
	s.imageURL = sel.ImageURL
	s.ratio = sel.AspectRatio
	s.lastError = ""
	return a.Show(ctx)
}

func (a *App) ClearHistory(ctx context.Context) error {
	ok, err := confirm(a.reader, clearHistoryQuestion, a.out)
	if err != nil || !ok {
		return err
	}
	a.state.history = a.generator.ClearHistory(ctx)
	a.println("History cleared.")
	return nil
}

// Save writes the current image to path. Without a path the image goes to
// the images directory under a timestamped name.
func (a *App) Save(ctx context.Context, path string) error {
	if a.state.imageURL == "" {
		a.println("No image to save. Generate or select one first.")
		return errNoImage
	}
	mime, data, err := client.DecodeDataURI(a.state.imageURL)
	if err != nil {
		a.println(err.Error())
		return err
	}

	if path == "" {
		dir, err := filex.EnsureSubdDir(imagesDir)
		if err != nil {
			a.println(err.Error())
			return err
		}
		path = filepath.Join(dir, fmt.Sprintf("imagen-%d%s", time.Now().UnixMilli(), extension(mime)))
	}

	if err := filex.WriteFile(path, data); err != nil {
		a.println(err.Error())
		return err
	}
	a.printf("Saved %s\n", path)
	return nil
}

func extension(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
