// Package search provides full-text and geo search for places using Bleve.
package search

import (
	"github.com/tastemapapp/tastemap-server/internal/domain"
)

// PlaceDocument is the document structure for the Bleve index.
type PlaceDocument struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Address     string   `json:"address,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	// Geo coordinates; zero when the place has no location.
	Lng    float64 `json:"lng"`
	Lat    float64 `json:"lat"`
	HasGeo bool    `json:"has_geo"`

	CreatedAt int64 `json:"created_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// This ensures field names match the Bleve index mapping.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *PlaceDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"slug":       d.Slug,
		"name":       d.Name,
		"created_at": d.CreatedAt,
	}

	// Optional fields - only add if non-empty
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.Address != "" {
		m["address"] = d.Address
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	if d.HasGeo {
		m["location"] = map[string]interface{}{
			"lon": d.Lng,
			"lat": d.Lat,
		}
	}

	return m
}

// PlaceToDocument converts a domain Place to a PlaceDocument.
func PlaceToDocument(place *domain.Place) *PlaceDocument {
	doc := &PlaceDocument{
		ID:          place.ID,
		Slug:        place.Slug,
		Name:        place.Name,
		Description: place.Description,
		Address:     place.Location.Address,
		Tags:        place.Tags,
		CreatedAt:   place.CreatedAt.UnixMilli(),
	}

	if !place.Location.IsZero() {
		doc.Lng = place.Location.Lng()
		doc.Lat = place.Location.Lat()
		doc.HasGeo = true
	}

	return doc
}
