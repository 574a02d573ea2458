package tmdb

// DiscoverResponse models the paginated TMDB discover payload.
type DiscoverResponse struct {
	Page         int     `json:"page"`
	Results      []Entry `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Entry is a single raw discover result. Movies carry Title and
// ReleaseDate; TV shows carry Name and FirstAirDate.
type Entry struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	Popularity   float64 `json:"popularity"`
}

// DisplayName returns the title field appropriate to the media kind.
func (e Entry) DisplayName() string {
	if e.Title != "" {
		return e.Title
	}
	if e.Name != "" {
		return e.Name
	}
	return "Unknown"
}

// Year returns the four-digit release year, or empty if unknown.
func (e Entry) Year() string {
	release := e.ReleaseDate
	if release == "" {
		release = e.FirstAirDate
	}
	if len(release) < 4 {
		return ""
	}
	return release[:4]
}
