package layout

import "video_history/internal/domain"

// Watch7 is the server-rendered watch page used until the 2017 redesign.
var Watch7 = MustTable("watch7",
	Rule{Field: domain.FieldStatus},
	Rule{Field: domain.FieldTitle, Locator: `//meta[@name='title']/@content`},
	Rule{Field: domain.FieldDescription, Locator: `//p[@id='eow-description']`},
	Rule{Field: domain.FieldPublishedAt, Locator: `//strong[@class='watch-time-text']`},
	Rule{Field: domain.FieldViewCount, Locator: `//div[@class='watch-view-count']`},
	Rule{Field: domain.FieldChannelID, Locator: `//meta[@itemprop='channelId']/@content`},
	Rule{Field: domain.FieldDuration, Locator: `//meta[@itemprop='duration']/@content`},
	Rule{Field: domain.FieldChannelURL, Locator: `//span[@itemprop='author']/link[@itemprop='url']/@href`},
	Rule{
		Field:    domain.FieldSubscriberCount,
		Locator:  `//span[contains(@class,'yt-subscriber-count')]`,
		Optional: true,
	},
)

// Polymer is the client-rendered page whose data lives in inline JSON
// (ytInitialData, ytInitialPlayerResponse). Scripts are selected by the JSON
// key, whose quotes may be backslash escaped when the JSON is embedded in a
// string literal.
var Polymer = MustTable("polymer",
	Rule{Field: domain.FieldStatus},
	Rule{
		Field:   domain.FieldTitle,
		Locator: `//script[matches(., 'videoDetails\\{0,2}":')]`,
		Pattern: `\\{0,2}"title\\{0,2}":\\{0,2}"(?:[^"\\]|\\[^"])+`,
	},
	Rule{
		Field:   domain.FieldDescription,
		Locator: `//script[matches(., 'description\\{0,2}":')]`,
		Pattern: `description\\{0,2}":\{[^}]+\}`,
	},
	Rule{
		Field:   domain.FieldPublishedAt,
		Locator: `//script[matches(., 'dateText\\{0,2}":')]`,
		Pattern: `dateText\\{0,2}":\{[^}]+\}`,
	},
	Rule{
		Field:   domain.FieldViewCount,
		Locator: `//script[matches(., 'viewCount\\{0,2}":')]`,
		Pattern: `viewCount\\{0,2}":\\{0,2}"[^"\\]+`,
	},
	Rule{
		Field:   domain.FieldChannelID,
		Locator: `//script[matches(., 'channelId\\{0,2}":')]`,
		Pattern: `channelId\\{0,2}":\\{0,2}"[^"\\]+`,
	},
	Rule{Field: domain.FieldDuration},
	Rule{Field: domain.FieldChannelURL},
	Rule{
		Field:    domain.FieldSubscriberCount,
		Locator:  `//script[matches(., 'subscriberCountText\\{0,2}":')]`,
		Pattern:  `subscriberCountText\\{0,2}":\{[^}]+\}`,
		Optional: true,
	},
)

// Unavailable is the server-rendered notice shown for removed videos.
var Unavailable = removedTable("unavailable", Rule{
	Field:   domain.FieldStatus,
	Locator: `//h1[@id='unavailable-message']`,
})

// Playability carries the removal reason in the inline player response.
var Playability = removedTable("playability", Rule{
	Field:   domain.FieldStatus,
	Locator: `//script[matches(., 'playabilityStatus\\{0,2}":')]`,
	Pattern: `playabilityStatus\\{0,2}":\{[^}]+\}`,
})

func removedTable(name string, status Rule) *Table {
	rules := []Rule{status}
	for _, f := range domain.VideoFields {
		if f != domain.FieldStatus {
			rules = append(rules, Rule{Field: f})
		}
	}
	return MustTable(name, rules...)
}

// youTube tries metadata layouts before removal notices, so a page that still
// carries metadata is never classified as removed.
var youTube = MustSet(Watch7, Polymer, Unavailable, Playability)

// YouTube returns the watch page layouts in priority order.
func YouTube() Set {
	return youTube
}
