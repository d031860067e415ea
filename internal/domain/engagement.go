package domain

import "strconv"

// EngagementColumns is the flattened output row layout.
var EngagementColumns = []string{
	"url",
	"reaction_count",
	"comment_count",
	"share_count",
	"comment_plugin_count",
}

// Engagement holds social engagement counters for a URL.
type Engagement struct {
	URL                string `json:"url" db:"url"`
	ReactionCount      int64  `json:"reaction_count" db:"reaction_count"`
	CommentCount       int64  `json:"comment_count" db:"comment_count"`
	ShareCount         int64  `json:"share_count" db:"share_count"`
	CommentPluginCount int64  `json:"comment_plugin_count" db:"comment_plugin_count"`
}

func (e *Engagement) Row() []string {
	return []string{
		e.URL,
		strconv.FormatInt(e.ReactionCount, 10),
		strconv.FormatInt(e.CommentCount, 10),
		strconv.FormatInt(e.ShareCount, 10),
		strconv.FormatInt(e.CommentPluginCount, 10),
	}
}
