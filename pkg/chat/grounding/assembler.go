package grounding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"communityhub-be/internal/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
)

// ContentItem is the narrow projection of a published content row the
// assembler is allowed to see. It never mutates the underlying content.
type ContentItem struct {
	Title       string
	Description string
	Date        *time.Time
	Link        string
}

// ContentStore is the read-only view onto the content subsystem. Each method
// returns the most relevant published items, newest or soonest first.
type ContentStore interface {
	UpcomingEvents(ctx context.Context, limit int) ([]ContentItem, error)
	RecentResources(ctx context.Context, limit int) ([]ContentItem, error)
	RecentPodcasts(ctx context.Context, limit int) ([]ContentItem, error)
	OrganizationOverview(ctx context.Context) (string, error)
}

// Topic buckets matched against the latest guest message.
const (
	bucketAbout     = "about"
	bucketEvents    = "events"
	bucketResources = "resources"
	bucketPodcasts  = "podcasts"
)

var bucketKeywords = map[string][]string{
	bucketAbout:     {"who are you", "about", "mission", "organization", "organisation", "community", "join", "volunteer", "donate", "contact"},
	bucketEvents:    {"event", "workshop", "meetup", "gathering", "calendar", "schedule", "happening", "attend", "session"},
	bucketResources: {"resource", "learn", "guide", "course", "material", "toolkit", "article", "reading"},
	bucketPodcasts:  {"podcast", "episode", "listen", "audio", "video", "watch", "interview", "youtube"},
}

const itemsPerBucket = 4

// Assembler turns the latest guest message into a compact text context block
// pulled from live content. A failing bucket degrades to nothing for that
// bucket; the assembler itself never errors, so one misbehaving data source
// cannot block the chat.
type Assembler struct {
	store  ContentStore
	cache  *gocache.Cache
	logger logger.ILogger
}

func NewAssembler(store ContentStore, log logger.ILogger) *Assembler {
	// Bucket results are cached for a minute so a chatty guest does not turn
	// every message into four queries.
	return &Assembler{
		store:  store,
		cache:  gocache.New(1*time.Minute, 5*time.Minute),
		logger: log,
	}
}

// MatchBuckets returns the topic buckets whose keywords appear in the
// message, case-insensitively. Exported for tests.
func MatchBuckets(message string) []string {
	lower := strings.ToLower(message)
	var matched []string
	for _, bucket := range []string{bucketAbout, bucketEvents, bucketResources, bucketPodcasts} {
		for _, kw := range bucketKeywords[bucket] {
			if strings.Contains(lower, kw) {
				matched = append(matched, bucket)
				break
			}
		}
	}
	return matched
}

// Build assembles the grounding context for the AI from the latest guest
// message. When no bucket matches, it falls back to the generic organization
// overview so the AI always receives some grounding.
func (a *Assembler) Build(ctx context.Context, latestGuestMessage string) string {
	buckets := MatchBuckets(latestGuestMessage)
	if len(buckets) == 0 {
		buckets = []string{bucketAbout}
	}

	var sb strings.Builder
	sb.WriteString("CONTEXT:\n")
	for _, bucket := range buckets {
		block := a.bucketBlock(ctx, bucket)
		if block != "" {
			sb.WriteString(block)
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (a *Assembler) bucketBlock(ctx context.Context, bucket string) string {
	if cached, found := a.cache.Get(bucket); found {
		return cached.(string)
	}

	var block string
	switch bucket {
	case bucketAbout:
		overview, err := a.store.OrganizationOverview(ctx)
		if err != nil {
			a.warnBucket(bucket, err)
			return ""
		}
		block = "About the organization:\n" + overview
	case bucketEvents:
		items, err := a.store.UpcomingEvents(ctx, itemsPerBucket)
		if err != nil {
			a.warnBucket(bucket, err)
			return ""
		}
		block = renderItems("Upcoming events:", items)
	case bucketResources:
		items, err := a.store.RecentResources(ctx, itemsPerBucket)
		if err != nil {
			a.warnBucket(bucket, err)
			return ""
		}
		block = renderItems("Learning resources:", items)
	case bucketPodcasts:
		items, err := a.store.RecentPodcasts(ctx, itemsPerBucket)
		if err != nil {
			a.warnBucket(bucket, err)
			return ""
		}
		block = renderItems("Podcast episodes:", items)
	}

	if block != "" {
		a.cache.Set(bucket, block, gocache.DefaultExpiration)
	}
	return block
}

func (a *Assembler) warnBucket(bucket string, err error) {
	a.logger.Warn("chat.grounding", "bucket query failed, degrading to empty", map[string]interface{}{
		"bucket": bucket,
		"error":  err.Error(),
	})
}

func renderItems(heading string, items []ContentItem) string {
	if len(items) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(heading)
	sb.WriteString("\n")
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item.Title)
		if item.Date != nil {
			sb.WriteString(fmt.Sprintf(" (%s)", item.Date.Format("Mon, Jan 2 2006")))
		}
		if desc := excerpt(item.Description, 140); desc != "" {
			sb.WriteString(": ")
			sb.WriteString(desc)
		}
		if item.Link != "" {
			sb.WriteString(" [")
			sb.WriteString(item.Link)
			sb.WriteString("]")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func excerpt(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
