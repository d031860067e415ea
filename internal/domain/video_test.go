package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoRecord_RowFollowsColumns(t *testing.T) {
	capture := &Capture{
		URL:    "http://web.archive.org/web/20150101000000/https://www.youtube.com/watch?v=AAAAAAAAAAA",
		Layout: "watch7",
		Fields: map[string]string{
			FieldStatus:          "",
			FieldTitle:           "Foo",
			FieldDescription:     "Bar",
			FieldPublishedAt:     "Jan 1, 2015",
			FieldViewCount:       "10 views",
			FieldChannelID:       "UC1",
			FieldDuration:        "PT1M",
			FieldChannelURL:      "http://www.youtube.com/user/foo",
			FieldSubscriberCount: "5",
		},
	}
	obs := NewObservation("https://youtube.com/watch?v=AAAAAAAAAAA", capture, "20150101000000")
	rec := &VideoRecord{Observation: obs, RemovalAt: "20160101000000", History: []Observation{obs}}

	row, err := rec.Row()

	require.NoError(t, err)
	require.Len(t, row, len(VideoColumns))
	got := make(map[string]string, len(row))
	for i, col := range VideoColumns {
		got[col] = row[i]
	}
	assert.Equal(t, "https://youtube.com/watch?v=AAAAAAAAAAA", got["url"])
	for _, f := range VideoFields {
		assert.Equal(t, capture.Fields[f], got[f], f)
	}
	assert.Equal(t, "20150101000000", got["scrapedAt"])
	assert.Equal(t, "20160101000000", got["removalAt"])
	assert.Equal(t, capture.URL, got["archiveUrl"])
	assert.Contains(t, got["all_archived_data_points"], `"title":"Foo"`)
}

func TestVideoRecord_HistoryJSONEmpty(t *testing.T) {
	history, err := (&VideoRecord{}).HistoryJSON()

	require.NoError(t, err)
	assert.Equal(t, "[]", history)
}

func TestNewObservation_MissingFieldsAreEmpty(t *testing.T) {
	obs := NewObservation("u", &Capture{URL: "a", Fields: map[string]string{FieldStatus: "gone"}}, "")

	assert.Equal(t, Observation{URL: "u", Status: "gone", ArchiveURL: "a"}, obs)
}

func TestEngagement_Row(t *testing.T) {
	e := &Engagement{URL: "u", ReactionCount: 1, CommentCount: 2, ShareCount: 3, CommentPluginCount: 4}

	assert.Equal(t, []string{"u", "1", "2", "3", "4"}, e.Row())
	assert.Len(t, e.Row(), len(EngagementColumns))
}
