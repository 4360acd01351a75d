package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bahafit/bahafit/internal/catalog"
	"github.com/bahafit/bahafit/internal/domain"
	"github.com/bahafit/bahafit/internal/events"
	apperrors "github.com/bahafit/bahafit/pkg/util"
)

const (
	relatedLimit  = 4
	slugMaxLength = 80
	idSuffixLen   = 6
)

// CatalogService fronts the content catalog: public reads with caching,
// admin moderation patches, and the best-effort view counter.
type CatalogService struct {
	client     catalog.Client
	cache      *catalog.Cache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCatalogService builds the service.
func NewCatalogService(client catalog.Client, cache *catalog.Cache, dispatcher events.Dispatcher, logger *zap.Logger) *CatalogService {
	return &CatalogService{client: client, cache: cache, dispatcher: dispatcher, logger: logger}
}

// EventQuery captures public event filters.
type EventQuery struct {
	Category string
	City     string
	Search   string
	Featured *bool
	Upcoming bool
	Limit    int
}

// ListingQuery captures public listing filters.
type ListingQuery struct {
	Category string
	City     string
	Search   string
	Featured *bool
	Verified *bool
	Limit    int
}

// ListEvents returns published events matching the query.
func (s *CatalogService) ListEvents(ctx context.Context, q EventQuery) ([]domain.EventDoc, error) {
	cacheKey := fmt.Sprintf("catalog:events:%s:%s:%s:%v:%v:%d", q.Category, q.City, q.Search, q.Featured, q.Upcoming, q.Limit)
	var cached []domain.EventDoc
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	conditions := []string{`_type == "event"`, `status == "published"`}
	params := map[string]string{}
	if q.Category != "" {
		params["category"] = q.Category
		conditions = append(conditions, "category == $category")
	}
	if q.City != "" {
		params["city"] = q.City
		conditions = append(conditions, "city == $city")
	}
	if q.Search != "" {
		params["search"] = "*" + q.Search + "*"
		conditions = append(conditions, "title match $search")
	}
	if q.Featured != nil {
		conditions = append(conditions, fmt.Sprintf("featured == %v", *q.Featured))
	}
	if q.Upcoming {
		conditions = append(conditions, "date >= now()")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`*[%s] | order(date asc)[0...%d]`, strings.Join(conditions, " && "), limit)

	var docs []domain.EventDoc
	if err := s.client.Query(ctx, query, params, &docs); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Set(ctx, cacheKey, docs)
	return docs, nil
}

// GetEventBySlug returns one published event plus related events from the
// same category.
func (s *CatalogService) GetEventBySlug(ctx context.Context, slug string) (*domain.EventDoc, []domain.EventDoc, error) {
	var doc domain.EventDoc
	query := `*[_type == "event" && status == "published" && slug == $slug][0]`
	if err := s.client.Query(ctx, query, map[string]string{"slug": slug}, &doc); err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	if doc.ID == "" {
		return nil, nil, apperrors.NewNotFound("event")
	}

	var related []domain.EventDoc
	if doc.Category != "" {
		relQuery := fmt.Sprintf(`*[_type == "event" && status == "published" && category == $category && slug != $slug][0...%d]`, relatedLimit)
		relParams := map[string]string{"category": doc.Category, "slug": slug}
		if err := s.client.Query(ctx, relQuery, relParams, &related); err != nil {
			// related items are decoration; the detail still renders
			s.logger.Debug("related events lookup failed", zap.String("slug", slug), zap.Error(err))
			related = nil
		}
	}
	return &doc, related, nil
}

// ListListings returns published listings matching the query.
func (s *CatalogService) ListListings(ctx context.Context, q ListingQuery) ([]domain.ListingDoc, error) {
	cacheKey := fmt.Sprintf("catalog:listings:%s:%s:%s:%v:%v:%d", q.Category, q.City, q.Search, q.Featured, q.Verified, q.Limit)
	var cached []domain.ListingDoc
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	conditions := []string{`_type == "listing"`, `status == "published"`}
	params := map[string]string{}
	if q.Category != "" {
		params["category"] = q.Category
		conditions = append(conditions, "category == $category")
	}
	if q.City != "" {
		params["city"] = q.City
		conditions = append(conditions, "city == $city")
	}
	if q.Search != "" {
		params["search"] = "*" + q.Search + "*"
		conditions = append(conditions, "name match $search")
	}
	if q.Featured != nil {
		conditions = append(conditions, fmt.Sprintf("featured == %v", *q.Featured))
	}
	if q.Verified != nil {
		conditions = append(conditions, fmt.Sprintf("verified == %v", *q.Verified))
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`*[%s] | order(name asc)[0...%d]`, strings.Join(conditions, " && "), limit)

	var docs []domain.ListingDoc
	if err := s.client.Query(ctx, query, params, &docs); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Set(ctx, cacheKey, docs)
	return docs, nil
}

// GetListingBySlug returns one published listing plus related listings, and
// emits the best-effort view-count event. The increment is attempted, never
// awaited for correctness: a failed counter must not fail the page.
func (s *CatalogService) GetListingBySlug(ctx context.Context, slug string) (*domain.ListingDoc, []domain.ListingDoc, error) {
	var doc domain.ListingDoc
	query := `*[_type == "listing" && status == "published" && slug == $slug][0]`
	if err := s.client.Query(ctx, query, map[string]string{"slug": slug}, &doc); err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	if doc.ID == "" {
		return nil, nil, apperrors.NewNotFound("listing")
	}

	var related []domain.ListingDoc
	if doc.Category != "" {
		relQuery := fmt.Sprintf(`*[_type == "listing" && status == "published" && category == $category && slug != $slug][0...%d]`, relatedLimit)
		relParams := map[string]string{"category": doc.Category, "slug": slug}
		if err := s.client.Query(ctx, relQuery, relParams, &related); err != nil {
			s.logger.Debug("related listings lookup failed", zap.String("slug", slug), zap.Error(err))
			related = nil
		}
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventListingViewed,
			Timestamp: time.Now(),
			Payload:   events.ListingViewedPayload{ListingID: doc.ID, Slug: slug},
		})
	}
	return &doc, related, nil
}

// EventPatch is the admin allow-list for event documents.
type EventPatch struct {
	Status     *domain.DocumentStatus
	Featured   *bool
	ApprovedAt *time.Time
}

// ListingPatch is the admin allow-list for listing documents.
type ListingPatch struct {
	Status     *domain.DocumentStatus
	Featured   *bool
	Verified   *bool
	ApprovedAt *time.Time
}

// AdminListEvents returns events in any status, optionally filtered.
func (s *CatalogService) AdminListEvents(ctx context.Context, status string) ([]domain.EventDoc, error) {
	conditions := []string{`_type == "event"`}
	params := map[string]string{}
	if status != "" {
		params["status"] = status
		conditions = append(conditions, "status == $status")
	}
	query := fmt.Sprintf(`*[%s] | order(_createdAt desc)`, strings.Join(conditions, " && "))

	var docs []domain.EventDoc
	if err := s.client.Query(ctx, query, params, &docs); err != nil {
		return nil, apperrors.MapError(err)
	}
	return docs, nil
}

// AdminGetEvent fetches an event document in any status.
func (s *CatalogService) AdminGetEvent(ctx context.Context, id string) (*domain.EventDoc, error) {
	var doc domain.EventDoc
	if err := s.client.Query(ctx, `*[_type == "event" && _id == $id][0]`, map[string]string{"id": id}, &doc); err != nil {
		return nil, apperrors.MapError(err)
	}
	if doc.ID == "" {
		return nil, apperrors.NewNotFound("event")
	}
	return &doc, nil
}

// UpdateEvent applies a moderation patch. Publishing a document without a
// slug derives one from the title plus an id-based suffix, so the public
// URL is stable across re-publishes.
func (s *CatalogService) UpdateEvent(ctx context.Context, id string, patch EventPatch) (*domain.EventDoc, error) {
	doc, err := s.AdminGetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	set := map[string]any{}
	if patch.Status != nil {
		set["status"] = *patch.Status
		doc.Status = *patch.Status
		if *patch.Status == domain.DocumentPublished && doc.Slug == "" {
			doc.Slug = Slugify(doc.Title, doc.ID)
			set["slug"] = doc.Slug
		}
	}
	if patch.Featured != nil {
		set["featured"] = *patch.Featured
		doc.Featured = *patch.Featured
	}
	if patch.ApprovedAt != nil {
		set["approvedAt"] = patch.ApprovedAt.UTC().Format(time.RFC3339)
		doc.ApprovedAt = patch.ApprovedAt
	}
	if len(set) == 0 {
		return doc, nil
	}

	if err := s.client.Patch(ctx, id, set, nil); err != nil {
		return nil, apperrors.MapError(err)
	}
	return doc, nil
}

// DeleteEvent removes an event document from the catalog.
func (s *CatalogService) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.AdminGetEvent(ctx, id); err != nil {
		return err
	}
	if err := s.client.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// AdminListListings returns listings in any status, optionally filtered.
func (s *CatalogService) AdminListListings(ctx context.Context, status string) ([]domain.ListingDoc, error) {
	conditions := []string{`_type == "listing"`}
	params := map[string]string{}
	if status != "" {
		params["status"] = status
		conditions = append(conditions, "status == $status")
	}
	query := fmt.Sprintf(`*[%s] | order(_createdAt desc)`, strings.Join(conditions, " && "))

	var docs []domain.ListingDoc
	if err := s.client.Query(ctx, query, params, &docs); err != nil {
		return nil, apperrors.MapError(err)
	}
	return docs, nil
}

// AdminGetListing fetches a listing document in any status.
func (s *CatalogService) AdminGetListing(ctx context.Context, id string) (*domain.ListingDoc, error) {
	var doc domain.ListingDoc
	if err := s.client.Query(ctx, `*[_type == "listing" && _id == $id][0]`, map[string]string{"id": id}, &doc); err != nil {
		return nil, apperrors.MapError(err)
	}
	if doc.ID == "" {
		return nil, apperrors.NewNotFound("listing")
	}
	return &doc, nil
}

// UpdateListing applies a moderation patch. Publishing stamps publishedAt
// and derives a slug when the document has none.
func (s *CatalogService) UpdateListing(ctx context.Context, id string, patch ListingPatch) (*domain.ListingDoc, error) {
	doc, err := s.AdminGetListing(ctx, id)
	if err != nil {
		return nil, err
	}

	set := map[string]any{}
	if patch.Status != nil {
		set["status"] = *patch.Status
		doc.Status = *patch.Status
		if *patch.Status == domain.DocumentPublished {
			if doc.Slug == "" {
				doc.Slug = Slugify(doc.Name, doc.ID)
				set["slug"] = doc.Slug
			}
			now := time.Now().UTC()
			doc.PublishedAt = &now
			set["publishedAt"] = now.Format(time.RFC3339)
		}
	}
	if patch.Featured != nil {
		set["featured"] = *patch.Featured
		doc.Featured = *patch.Featured
	}
	if patch.Verified != nil {
		set["verified"] = *patch.Verified
		doc.Verified = *patch.Verified
	}
	if patch.ApprovedAt != nil {
		set["approvedAt"] = patch.ApprovedAt.UTC().Format(time.RFC3339)
		doc.ApprovedAt = patch.ApprovedAt
	}
	if len(set) == 0 {
		return doc, nil
	}

	if err := s.client.Patch(ctx, id, set, nil); err != nil {
		return nil, apperrors.MapError(err)
	}
	return doc, nil
}

// DeleteListing removes a listing document from the catalog.
func (s *CatalogService) DeleteListing(ctx context.Context, id string) error {
	if _, err := s.AdminGetListing(ctx, id); err != nil {
		return err
	}
	if err := s.client.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// Slugify derives a URL slug from a title and document id: lowercased,
// non-alphanumerics stripped, whitespace collapsed to single hyphens,
// truncated to 80 characters, suffixed with the last 6 alphanumeric
// characters of the id. Deterministic for a given title/id pair.
func Slugify(title, id string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	slug := strings.Join(strings.Fields(b.String()), "-")
	if len(slug) > slugMaxLength {
		slug = strings.TrimRight(slug[:slugMaxLength], "-")
	}

	suffix := idSuffix(id)
	if suffix == "" {
		return slug
	}
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}

func idSuffix(id string) string {
	var alnum []rune
	for _, r := range strings.ToLower(id) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			alnum = append(alnum, r)
		}
	}
	if len(alnum) > idSuffixLen {
		alnum = alnum[len(alnum)-idSuffixLen:]
	}
	return string(alnum)
}
