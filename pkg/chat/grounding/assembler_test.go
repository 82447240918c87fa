package grounding

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeStore struct {
	events      []ContentItem
	resources   []ContentItem
	podcasts    []ContentItem
	overview    string
	eventsErr   error
	overviewErr error
}

func (f *fakeStore) UpcomingEvents(ctx context.Context, limit int) ([]ContentItem, error) {
	return f.events, f.eventsErr
}
func (f *fakeStore) RecentResources(ctx context.Context, limit int) ([]ContentItem, error) {
	return f.resources, nil
}
func (f *fakeStore) RecentPodcasts(ctx context.Context, limit int) ([]ContentItem, error) {
	return f.podcasts, nil
}
func (f *fakeStore) OrganizationOverview(ctx context.Context) (string, error) {
	return f.overview, f.overviewErr
}

func TestMatchBuckets(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{
			name:    "events keyword",
			message: "Is there a workshop this weekend?",
			want:    []string{"events"},
		},
		{
			name:    "resources keyword",
			message: "Where can I find a guide to get started?",
			want:    []string{"resources"},
		},
		{
			name:    "podcast keyword",
			message: "I want to listen to your latest episode",
			want:    []string{"podcasts"},
		},
		{
			name:    "about keyword",
			message: "Tell me about your mission",
			want:    []string{"about"},
		},
		{
			name:    "multiple buckets",
			message: "Any events or podcast episodes coming up?",
			want:    []string{"events", "podcasts"},
		},
		{
			name:    "case insensitive",
			message: "WHAT EVENTS ARE HAPPENING",
			want:    []string{"events"},
		},
		{
			name:    "no match",
			message: "hello there",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchBuckets(tt.message)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestBuildIncludesMatchedBucket(t *testing.T) {
	when := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	store := &fakeStore{
		events: []ContentItem{
			{Title: "Open House", Description: "Meet the team", Date: &when, Link: "https://example.org/open-house"},
		},
	}
	a := NewAssembler(store, nopLogger{})

	got := a.Build(context.Background(), "any events this month?")

	if !strings.HasPrefix(got, "CONTEXT:") {
		t.Fatalf("context block must start with CONTEXT:, got %q", got)
	}
	if !strings.Contains(got, "Open House") {
		t.Fatalf("expected event title in context, got %q", got)
	}
	if !strings.Contains(got, "https://example.org/open-house") {
		t.Fatalf("expected event link in context, got %q", got)
	}
}

func TestBuildFallsBackToOverview(t *testing.T) {
	store := &fakeStore{overview: "We are a neighborhood collective."}
	a := NewAssembler(store, nopLogger{})

	got := a.Build(context.Background(), "hmmmm")

	if !strings.Contains(got, "We are a neighborhood collective.") {
		t.Fatalf("unmatched message should ground on the overview, got %q", got)
	}
}

func TestBuildDegradesOnBucketError(t *testing.T) {
	store := &fakeStore{eventsErr: errors.New("db down")}
	a := NewAssembler(store, nopLogger{})

	got := a.Build(context.Background(), "what events are happening?")

	// The failing bucket contributes nothing; the call itself must not fail.
	if !strings.HasPrefix(got, "CONTEXT:") {
		t.Fatalf("degraded build should still return a context header, got %q", got)
	}
	if strings.Contains(got, "db down") {
		t.Fatalf("store errors must never leak into the context, got %q", got)
	}
}

func TestBuildCachesBucket(t *testing.T) {
	when := time.Now().Add(48 * time.Hour)
	store := &fakeStore{
		events: []ContentItem{{Title: "First Fetch", Date: &when}},
	}
	a := NewAssembler(store, nopLogger{})

	first := a.Build(context.Background(), "events?")
	store.events = []ContentItem{{Title: "Second Fetch", Date: &when}}
	second := a.Build(context.Background(), "events?")

	if first != second {
		t.Fatalf("bucket should be served from cache within the TTL:\n%q\n%q", first, second)
	}
}
