package catalog

// MediaKind distinguishes movies from TV shows. The values match the
// TMDB discover endpoint names so they can be used in request paths
// directly.
type MediaKind string

const (
	KindMovie MediaKind = "movie"
	KindShow  MediaKind = "tv"
)

// Label returns the human-readable plural heading for the kind.
func (k MediaKind) Label() string {
	if k == KindShow {
		return "Shows"
	}
	return "Movies"
}

// Title is a single catalog entry as fetched from TMDB.
type Title struct {
	Name       string    `json:"name"`
	Kind       MediaKind `json:"kind"`
	ProviderID int       `json:"provider_id"`
	Year       string    `json:"year,omitempty"`
}

// Snapshot is the complete fetched catalog for one region and date.
// It is written to the cache verbatim and never mutated after the
// fetch completes.
type Snapshot struct {
	Region    string          `json:"region"`
	FetchDate string          `json:"fetch_date"` // YYYY-MM-DD
	Providers map[int][]Title `json:"providers"`
}

// TotalTitles returns the number of titles across all providers.
func (s *Snapshot) TotalTitles() int {
	var n int
	for _, titles := range s.Providers {
		n += len(titles)
	}
	return n
}
