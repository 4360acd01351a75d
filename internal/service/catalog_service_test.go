package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/bahafit/bahafit/internal/catalog"
	"github.com/bahafit/bahafit/internal/domain"
	"github.com/bahafit/bahafit/internal/events"
)

type patchCall struct {
	id  string
	set map[string]any
	inc map[string]int
}

type stubCatalogClient struct {
	events   []domain.EventDoc
	listings []domain.ListingDoc
	patches  []patchCall
	deletes  []string
	patchErr error
}

func (s *stubCatalogClient) Query(ctx context.Context, query string, params map[string]string, result any) error {
	isEvent := strings.Contains(query, `"event"`)
	single := strings.HasSuffix(query, "[0]")

	if isEvent {
		if single {
			for i := range s.events {
				if matchesDoc(query, params, s.events[i].ID, s.events[i].Slug) {
					return assign(result, s.events[i])
				}
			}
			return nil
		}
		return assign(result, s.events)
	}

	if single {
		for i := range s.listings {
			if matchesDoc(query, params, s.listings[i].ID, s.listings[i].Slug) {
				return assign(result, s.listings[i])
			}
		}
		return nil
	}
	return assign(result, s.listings)
}

func (s *stubCatalogClient) Patch(ctx context.Context, docID string, set map[string]any, inc map[string]int) error {
	if s.patchErr != nil {
		return s.patchErr
	}
	s.patches = append(s.patches, patchCall{id: docID, set: set, inc: inc})
	return nil
}

func (s *stubCatalogClient) Delete(ctx context.Context, docID string) error {
	s.deletes = append(s.deletes, docID)
	return nil
}

func matchesDoc(query string, params map[string]string, id, slug string) bool {
	if strings.Contains(query, "_id == $id") {
		return params["id"] == id
	}
	if strings.Contains(query, "slug == $slug") {
		return params["slug"] == slug
	}
	return false
}

func assign(result any, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, result)
}

func noCache() *catalog.Cache {
	return catalog.NewCache(nil, 0, zap.NewNop())
}

func TestSlugify(t *testing.T) {
	first := Slugify("Beach 5K Run!", "abc123xyz789")
	second := Slugify("Beach 5K Run!", "abc123xyz789")
	if first != second {
		t.Fatalf("slugify must be deterministic, got %q then %q", first, second)
	}
	if first != "beach-5k-run-xyz789" {
		t.Fatalf("unexpected slug %q", first)
	}

	for _, r := range first {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '-' {
			t.Fatalf("slug contains illegal rune %q: %s", r, first)
		}
	}

	long := Slugify(strings.Repeat("Very Long Title ", 20), "doc-42abcd")
	base := strings.TrimSuffix(long, "-42abcd")
	if len(base) > 80 {
		t.Fatalf("slug base exceeds 80 chars: %d", len(base))
	}

	if got := Slugify("Pre-Dawn Ride", "x9y8z7"); got != "predawn-ride-x9y8z7" {
		t.Fatalf("title hyphens are dropped, not kept: %q", got)
	}
	if got := Slugify("Yoga", "ID-9"); got != "yoga-id9" {
		t.Fatalf("short ids keep all alphanumerics: %q", got)
	}
	if got := Slugify("CrossFit @ Manama // Open Gym", "session_ABC999"); !strings.HasSuffix(got, "-abc999") {
		t.Fatalf("suffix must be the lowercased last 6 alphanumerics of the id: %q", got)
	}
}

func TestPublishEventDerivesSlug(t *testing.T) {
	client := &stubCatalogClient{events: []domain.EventDoc{{
		ID:     "evt123456",
		Title:  "Beach 5K Run!",
		Status: domain.DocumentPending,
	}}}
	svc := NewCatalogService(client, noCache(), nil, zap.NewNop())

	status := domain.DocumentPublished
	doc, err := svc.UpdateEvent(context.Background(), "evt123456", EventPatch{Status: &status})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if doc.Slug != "beach-5k-run-123456" {
		t.Fatalf("expected derived slug, got %q", doc.Slug)
	}
	if len(client.patches) != 1 {
		t.Fatalf("expected one patch, got %d", len(client.patches))
	}
	set := client.patches[0].set
	if set["status"] != domain.DocumentPublished || set["slug"] != "beach-5k-run-123456" {
		t.Fatalf("unexpected patch set: %v", set)
	}
}

func TestPublishEventKeepsExistingSlug(t *testing.T) {
	client := &stubCatalogClient{events: []domain.EventDoc{{
		ID:     "evt123456",
		Title:  "Beach 5K Run!",
		Slug:   "already-set",
		Status: domain.DocumentPending,
	}}}
	svc := NewCatalogService(client, noCache(), nil, zap.NewNop())

	status := domain.DocumentPublished
	doc, err := svc.UpdateEvent(context.Background(), "evt123456", EventPatch{Status: &status})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if doc.Slug != "already-set" {
		t.Fatalf("existing slug must survive re-publish, got %q", doc.Slug)
	}
	if _, ok := client.patches[0].set["slug"]; ok {
		t.Fatal("patch must not rewrite an existing slug")
	}
}

func TestUpdateEventUnknownID(t *testing.T) {
	svc := NewCatalogService(&stubCatalogClient{}, noCache(), nil, zap.NewNop())
	status := domain.DocumentPublished
	_, err := svc.UpdateEvent(context.Background(), "ghost", EventPatch{Status: &status})
	assertHTTPStatus(t, err, 404)
}

func TestPublishListingStampsPublishedAt(t *testing.T) {
	client := &stubCatalogClient{listings: []domain.ListingDoc{{
		ID:     "lst777888",
		Name:   "Manama CrossFit",
		Status: domain.DocumentPending,
	}}}
	svc := NewCatalogService(client, noCache(), nil, zap.NewNop())

	status := domain.DocumentPublished
	verified := true
	doc, err := svc.UpdateListing(context.Background(), "lst777888", ListingPatch{Status: &status, Verified: &verified})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if doc.PublishedAt == nil {
		t.Fatal("publishing must stamp publishedAt")
	}
	if !doc.Verified {
		t.Fatal("verified flag not applied")
	}
	set := client.patches[0].set
	if _, ok := set["publishedAt"]; !ok {
		t.Fatalf("patch must persist publishedAt: %v", set)
	}
	if set["slug"] != "manama-crossfit-777888" {
		t.Fatalf("expected derived listing slug, got %v", set["slug"])
	}
}

func TestListingViewIncrementsCounterBestEffort(t *testing.T) {
	client := &stubCatalogClient{listings: []domain.ListingDoc{{
		ID:     "lst1",
		Name:   "Manama CrossFit",
		Slug:   "manama-crossfit",
		Status: domain.DocumentPublished,
	}}}

	dispatcher := events.NewInMemoryDispatcher()
	NewViewCountService(client, dispatcher, zap.NewNop()).RegisterHandlers()
	svc := NewCatalogService(client, noCache(), dispatcher, zap.NewNop())

	doc, _, err := svc.GetListingBySlug(context.Background(), "manama-crossfit")
	if err != nil {
		t.Fatalf("get listing failed: %v", err)
	}
	if doc.ID != "lst1" {
		t.Fatalf("unexpected doc %+v", doc)
	}
	if len(client.patches) != 1 {
		t.Fatalf("expected one view-count patch attempt, got %d", len(client.patches))
	}
	if client.patches[0].inc["viewCount"] != 1 {
		t.Fatalf("expected viewCount +1, got %v", client.patches[0].inc)
	}
}

func TestListingViewCounterFailureIsSwallowed(t *testing.T) {
	client := &stubCatalogClient{
		listings: []domain.ListingDoc{{
			ID:     "lst1",
			Name:   "Manama CrossFit",
			Slug:   "manama-crossfit",
			Status: domain.DocumentPublished,
		}},
		patchErr: errors.New("catalog unavailable"),
	}

	dispatcher := events.NewInMemoryDispatcher()
	NewViewCountService(client, dispatcher, zap.NewNop()).RegisterHandlers()
	svc := NewCatalogService(client, noCache(), dispatcher, zap.NewNop())

	if _, _, err := svc.GetListingBySlug(context.Background(), "manama-crossfit"); err != nil {
		t.Fatalf("a failed counter must never fail the read: %v", err)
	}
}

func TestDeleteListing(t *testing.T) {
	client := &stubCatalogClient{listings: []domain.ListingDoc{{
		ID:     "lst1",
		Name:   "Manama CrossFit",
		Status: domain.DocumentPending,
	}}}
	svc := NewCatalogService(client, noCache(), nil, zap.NewNop())

	if err := svc.DeleteListing(context.Background(), "lst1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(client.deletes) != 1 || client.deletes[0] != "lst1" {
		t.Fatalf("expected one delete mutation for lst1, got %v", client.deletes)
	}

	err := svc.DeleteEvent(context.Background(), "ghost")
	assertHTTPStatus(t, err, 404)
}

func TestGetEventBySlugNotFound(t *testing.T) {
	svc := NewCatalogService(&stubCatalogClient{}, noCache(), nil, zap.NewNop())
	_, _, err := svc.GetEventBySlug(context.Background(), "missing")
	assertHTTPStatus(t, err, 404)
}

func TestGetEventBySlugWithRelated(t *testing.T) {
	date := time.Date(2026, 9, 12, 7, 0, 0, 0, time.UTC)
	client := &stubCatalogClient{events: []domain.EventDoc{
		{ID: "e1", Title: "Beach 5K Run", Slug: "beach-5k", Status: domain.DocumentPublished, Category: "running", Date: &date},
		{ID: "e2", Title: "Trail Run", Slug: "trail-run", Status: domain.DocumentPublished, Category: "running"},
	}}
	svc := NewCatalogService(client, noCache(), nil, zap.NewNop())

	doc, related, err := svc.GetEventBySlug(context.Background(), "beach-5k")
	if err != nil {
		t.Fatalf("get event failed: %v", err)
	}
	if doc.ID != "e1" {
		t.Fatalf("unexpected doc %+v", doc)
	}
	if len(related) == 0 {
		t.Fatal("expected related events from the same category")
	}
}
