package catalog

// Provider describes a streaming service tracked by showbook.
type Provider struct {
	ID      int      // TMDB watch-provider ID
	Name    string   // display name
	Regions []string // regions with a flatrate catalog, primary first
}

// Providers is the static reference set of major US streaming services,
// in book display order. IDs are TMDB watch-provider IDs.
var Providers = []Provider{
	{ID: 8, Name: "Netflix", Regions: []string{"US", "CA", "GB", "AU", "DE", "FR", "JP"}},
	{ID: 9, Name: "Amazon Prime Video", Regions: []string{"US", "CA", "GB", "AU", "DE", "FR", "JP"}},
	{ID: 337, Name: "Disney+", Regions: []string{"US", "CA", "GB", "AU", "DE", "FR", "JP"}},
	{ID: 15, Name: "Hulu", Regions: []string{"US"}},
	{ID: 384, Name: "Max", Regions: []string{"US"}},
	{ID: 350, Name: "Apple TV+", Regions: []string{"US", "CA", "GB", "AU", "DE", "FR", "JP"}},
	{ID: 386, Name: "Peacock", Regions: []string{"US"}},
	{ID: 531, Name: "Paramount+", Regions: []string{"US", "CA", "GB", "AU"}},
}

// ProviderByID looks up a provider in the reference set.
func ProviderByID(id int) (Provider, bool) {
	for _, p := range Providers {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}
