package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Hit is a single search result. Callers hydrate full places from the
// store by ID; the index only hands back identity and ranking data.
type Hit struct {
	ID       string  `json:"id"`
	Slug     string  `json:"slug"`
	Score    float64 `json:"score"`
	Distance float64 `json:"distance,omitempty"` // Meters; geo queries only
}

// TextSearch runs a full-text query over names and descriptions,
// most relevant first.
func (s *PlaceIndex) TextSearch(ctx context.Context, queryText string, limit int) ([]Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildTextQuery(queryText)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, limit, 0, false)
	searchRequest.SortBy([]string{"-_score"})
	searchRequest.Fields = []string{"slug"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	hits := make([]Hit, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		h := Hit{ID: hit.ID, Score: hit.Score}
		if slug, ok := hit.Fields["slug"].(string); ok {
			h.Slug = slug
		}
		hits = append(hits, h)
	}

	return hits, nil
}

// Near returns places within maxDistanceMeters of the given point,
// nearest first.
func (s *PlaceIndex) Near(ctx context.Context, lng, lat float64, maxDistanceMeters float64, limit int) ([]Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	distance := fmt.Sprintf("%.0fm", maxDistanceMeters)
	geoQuery := bleve.NewGeoDistanceQuery(lng, lat, distance)
	geoQuery.SetField("location")

	searchRequest := bleve.NewSearchRequestOptions(geoQuery, limit, 0, false)
	searchRequest.Fields = []string{"slug"}

	// Nearest first
	sortGeo, err := search.NewSortGeoDistance("location", "m", lng, lat, false)
	if err != nil {
		return nil, fmt.Errorf("build geo sort: %w", err)
	}
	searchRequest.SortByCustom(search.SortOrder{sortGeo})

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute geo search: %w", err)
	}

	hits := make([]Hit, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		h := Hit{ID: hit.ID, Score: hit.Score}
		if slug, ok := hit.Fields["slug"].(string); ok {
			h.Slug = slug
		}
		hits = append(hits, h)
	}

	return hits, nil
}

// buildTextQuery constructs the Bleve query for full-text search.
//
// Search strategy:
//   - Name match carries the highest boost
//   - Description matches rank lower
//   - A fuzzy name query gives typo tolerance
//   - A prefix query (2+ chars) helps autocomplete-style inputs
func buildTextQuery(queryText string) query.Query {
	if queryText == "" {
		return bleve.NewMatchAllQuery()
	}

	textQueries := []query.Query{}

	nameMatch := bleve.NewMatchQuery(queryText)
	nameMatch.SetField("name")
	nameMatch.SetBoost(3.0)
	textQueries = append(textQueries, nameMatch)

	descMatch := bleve.NewMatchQuery(queryText)
	descMatch.SetField("description")
	textQueries = append(textQueries, descMatch)

	fuzzyQuery := bleve.NewFuzzyQuery(queryText)
	fuzzyQuery.SetFuzziness(1)
	fuzzyQuery.SetField("name")
	fuzzyQuery.SetBoost(0.8)
	textQueries = append(textQueries, fuzzyQuery)

	if len(queryText) >= 2 {
		prefixQuery := bleve.NewPrefixQuery(strings.ToLower(queryText))
		prefixQuery.SetField("name")
		prefixQuery.SetBoost(0.5)
		textQueries = append(textQueries, prefixQuery)
	}

	return bleve.NewDisjunctionQuery(textQueries...)
}
