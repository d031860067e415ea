package domain

import (
	"encoding/json"
	"fmt"
)

// Field names shared by every YouTube watch-page layout.
const (
	FieldStatus          = "status"
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldPublishedAt     = "publishedAt"
	FieldViewCount       = "viewCount"
	FieldChannelID       = "channelId"
	FieldDuration        = "duration"
	FieldChannelURL      = "channelUrl"
	FieldSubscriberCount = "subscriberCount"
)

// VideoFields lists the extracted fields in output order.
var VideoFields = []string{
	FieldStatus,
	FieldTitle,
	FieldDescription,
	FieldPublishedAt,
	FieldViewCount,
	FieldChannelID,
	FieldDuration,
	FieldChannelURL,
	FieldSubscriberCount,
}

// VideoColumns is the flattened output row layout.
var VideoColumns = append(append([]string{"url"}, VideoFields...),
	"scrapedAt", "removalAt", "archiveUrl", "all_archived_data_points")

// Capture is what a single snapshot fetch yields: the fetched URL, the layout
// that matched and the extracted field values.
type Capture struct {
	URL    string
	Layout string
	Fields map[string]string
}

// Observation is one archived state of a video.
type Observation struct {
	URL             string `json:"url"`
	Status          string `json:"status"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	PublishedAt     string `json:"publishedAt"`
	ViewCount       string `json:"viewCount"`
	ChannelID       string `json:"channelId"`
	Duration        string `json:"duration"`
	ChannelURL      string `json:"channelUrl"`
	SubscriberCount string `json:"subscriberCount"`
	ScrapedAt       string `json:"scrapedAt"`
	ArchiveURL      string `json:"archiveUrl"`
}

// NewObservation builds an observation of videoURL from a snapshot capture.
func NewObservation(videoURL string, c *Capture, scrapedAt string) Observation {
	f := c.Fields
	return Observation{
		URL:             videoURL,
		Status:          f[FieldStatus],
		Title:           f[FieldTitle],
		Description:     f[FieldDescription],
		PublishedAt:     f[FieldPublishedAt],
		ViewCount:       f[FieldViewCount],
		ChannelID:       f[FieldChannelID],
		Duration:        f[FieldDuration],
		ChannelURL:      f[FieldChannelURL],
		SubscriberCount: f[FieldSubscriberCount],
		ScrapedAt:       scrapedAt,
		ArchiveURL:      c.URL,
	}
}

// VideoRecord is the consolidated result for one video: the authoritative
// observation plus every state seen in the archive.
type VideoRecord struct {
	Observation
	RemovalAt       string        `json:"removalAt"`
	FirstRemovedURL string        `json:"-"`
	History         []Observation `json:"all_archived_data_points"`
}

// Row flattens the record in VideoColumns order. The history is JSON encoded.
func (r *VideoRecord) Row() ([]string, error) {
	history, err := r.HistoryJSON()
	if err != nil {
		return nil, err
	}
	o := r.Observation
	return []string{
		o.URL,
		o.Status,
		o.Title,
		o.Description,
		o.PublishedAt,
		o.ViewCount,
		o.ChannelID,
		o.Duration,
		o.ChannelURL,
		o.SubscriberCount,
		o.ScrapedAt,
		r.RemovalAt,
		o.ArchiveURL,
		history,
	}, nil
}

func (r *VideoRecord) HistoryJSON() (string, error) {
	history := r.History
	if history == nil {
		history = []Observation{}
	}
	b, err := json.Marshal(history)
	if err != nil {
		return "", fmt.Errorf("marshal history: %w", err)
	}
	return string(b), nil
}
