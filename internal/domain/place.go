package domain

// GeoJSON geometry type for point locations.
const GeometryPoint = "Point"

// Location is a GeoJSON point with a street address.
// Coordinates are [longitude, latitude], matching GeoJSON order.
type Location struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
	Address     string     `json:"address"`
}

// Lng returns the longitude component.
func (l Location) Lng() float64 { return l.Coordinates[0] }

// Lat returns the latitude component.
func (l Location) Lat() float64 { return l.Coordinates[1] }

// IsZero reports whether no location has been set.
func (l Location) IsZero() bool {
	return l.Type == "" && l.Address == "" && l.Coordinates == [2]float64{}
}

// Place is a community listing: a restaurant, café, food truck...
type Place struct {
	Syncable

	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Location    Location `json:"location"`

	// Photo is the uploaded image filename under the uploads directory.
	Photo         string `json:"photo,omitempty"`
	PhotoBlurhash string `json:"photo_blurhash,omitempty"`

	AuthorID string `json:"author_id"`
}

// HasTag returns true if the place carries the given tag.
func (p *Place) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
