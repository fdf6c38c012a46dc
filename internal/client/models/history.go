package models

import (
	"fmt"
	"time"
)

// AspectRatio is one of the ratios the generation API accepts.
type AspectRatio string

const (
	Ratio1x1  AspectRatio = "1:1"
	Ratio3x4  AspectRatio = "3:4"
	Ratio4x3  AspectRatio = "4:3"
	Ratio9x16 AspectRatio = "9:16"
	Ratio16x9 AspectRatio = "16:9"
)

// DefaultAspectRatio is selected when the generator view opens.
const DefaultAspectRatio = Ratio1x1

// AspectRatios lists the supported ratios in display order.
var AspectRatios = []AspectRatio{Ratio1x1, Ratio3x4, Ratio4x3, Ratio9x16, Ratio16x9}

// ParseAspectRatio accepts exactly one of AspectRatios.
func ParseAspectRatio(s string) (AspectRatio, error) {
	for _, r := range AspectRatios {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unsupported aspect ratio %q", s)
}

func (r AspectRatio) Valid() bool {
	_, err := ParseAspectRatio(string(r))
	return err == nil
}

// HistoryItem records one successful generation.
type HistoryItem struct {
	// ID is the creation time in milliseconds, kept strictly increasing.
	ID          int64       `json:"id"`
	Prompt      string      `json:"prompt"`
	ImageURL    string      `json:"imageUrl"`
	AspectRatio AspectRatio `json:"aspectRatio"`
	Timestamp   int64       `json:"timestamp"`
}

// CreatedAt returns Timestamp as a time.Time.
func (h HistoryItem) CreatedAt() time.Time {
	return time.UnixMilli(h.Timestamp)
}

// Selection is what the generator view restores from a history item.
type Selection struct {
	Prompt      string
	ImageURL    string
	AspectRatio AspectRatio
}
