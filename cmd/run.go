package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/midwife-middleware/showbook/book"
	"github.com/midwife-middleware/showbook/cache"
	"github.com/midwife-middleware/showbook/catalog"
	"github.com/midwife-middleware/showbook/config"
	"github.com/midwife-middleware/showbook/tmdb"
)

// quickMaxPages is the per-query page cap in --quick mode, roughly 100
// titles per provider and kind.
const quickMaxPages = 5

// tmdbPageCap is the hard page limit of the TMDB discover endpoint.
const tmdbPageCap = 500

// runMode is the driver mode, selected once at startup.
type runMode int

const (
	modeFullRun runMode = iota
	modeFetchOnly
	modeFromCache
)

func (m runMode) String() string {
	switch m {
	case modeFetchOnly:
		return "fetch-only"
	case modeFromCache:
		return "from-cache"
	default:
		return "full-run"
	}
}

// resolveMode picks the run mode from the mode flags. The flags are
// mutually exclusive; conflicts fail before any work begins.
func resolveMode(fetchOnly bool, fromCache string) (runMode, error) {
	if fetchOnly && fromCache != "" {
		return modeFullRun, fmt.Errorf("--fetch-only and --from-cache are mutually exclusive")
	}
	if fetchOnly {
		return modeFetchOnly, nil
	}
	if fromCache != "" {
		return modeFromCache, nil
	}
	return modeFullRun, nil
}

func run(cmd *cobra.Command, args []string) error {
	// No network, no credential, no config: print the reference set
	// and leave before any other setup can get in the way.
	if listProviders {
		printProviderTable(os.Stdout)
		return nil
	}

	if err := initializeApp(cmd); err != nil {
		return err
	}

	mode, err := resolveMode(fetchOnly, fromCache)
	if err != nil {
		return err
	}

	logger.Info().Str("mode", mode.String()).Msg("ShowBook - The Complete Streaming Guide")

	ctx := context.Background()

	switch mode {
	case modeFromCache:
		return runFromCache(fromCache)
	case modeFetchOnly:
		_, err := runFetch(ctx)
		return err
	default:
		snap, err := runFetch(ctx)
		if err != nil {
			return err
		}
		return buildBook(snap)
	}
}

// newTMDBClient builds the catalog client from the effective config.
func newTMDBClient() (*tmdb.Client, error) {
	if cfg.TMDB.APIKey == "" {
		return nil, fmt.Errorf("TMDB API key required: set TMDB_API_KEY or pass --api-key " +
			"(get a free key at https://www.themoviedb.org/settings/api)")
	}

	progress := func(page, totalPages, titles int) {
		logger.Debug().
			Int("page", page).
			Int("total_pages", totalPages).
			Int("titles", titles).
			Msg("Fetch progress")
	}

	return tmdb.NewClient(cfg.TMDB.APIKey, logger,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithMaxRetries(cfg.TMDB.MaxRetries),
		tmdb.WithRequestDelay(time.Duration(cfg.TMDB.RequestDelayMS)*time.Millisecond),
		tmdb.WithProgress(progress),
	)
}

// runFetch fetches every provider's catalog for both media kinds,
// strictly sequentially, and caches the snapshot.
func runFetch(ctx context.Context) (*catalog.Snapshot, error) {
	client, err := newTMDBClient()
	if err != nil {
		return nil, err
	}

	logFetchBanner(cfg)

	snap := &catalog.Snapshot{
		Region:    cfg.TMDB.Region,
		FetchDate: time.Now().Format("2006-01-02"),
		Providers: make(map[int][]catalog.Title, len(catalog.Providers)),
	}

	var totalMovies, totalShows int
	for _, p := range catalog.Providers {
		var movies, shows int
		for _, kind := range []catalog.MediaKind{catalog.KindMovie, catalog.KindShow} {
			titles, err := client.Discover(ctx, p, kind, cfg.TMDB.Region, cfg.TMDB.MaxPages)
			if err != nil {
				return nil, fmt.Errorf("fetching %s: %w", p.Name, err)
			}
			snap.Providers[p.ID] = append(snap.Providers[p.ID], titles...)
			if kind == catalog.KindMovie {
				movies = len(titles)
			} else {
				shows = len(titles)
			}
		}
		totalMovies += movies
		totalShows += shows

		if movies == 0 && shows == 0 {
			logger.Warn().
				Str("provider", p.Name).
				Int("provider_id", p.ID).
				Msg("No results; the provider may carry nothing in this region, try --list-providers")
		} else {
			logger.Info().
				Str("provider", p.Name).
				Int("movies", movies).
				Int("shows", shows).
				Msg("Fetched provider catalog")
		}
	}

	logger.Info().
		Int("movies", totalMovies).
		Int("shows", totalShows).
		Int("total", totalMovies+totalShows).
		Msg("Fetch complete")

	store := cache.NewStore(cfg.Cache.Dir, logger)
	if _, err := store.Save(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// runFromCache builds the book from a previously cached snapshot. A
// corrupt artifact is fatal here; there is nothing to fall back to.
func runFromCache(path string) error {
	store := cache.NewStore(cfg.Cache.Dir, logger)
	snap, err := store.Load(path)
	if err != nil {
		return err
	}

	logger.Info().
		Str("path", path).
		Str("region", snap.Region).
		Str("fetch_date", snap.FetchDate).
		Int("titles", snap.TotalTitles()).
		Msg("Loaded catalog snapshot")

	return buildBook(snap)
}

// buildBook aggregates the snapshot and renders the PDF.
func buildBook(snap *catalog.Snapshot) error {
	sections := catalog.Aggregate(snap)

	bcfg := book.DefaultConfig()
	bcfg.MaxPages = cfg.Book.MaxPages
	bcfg.AllowOversize = cfg.Book.AllowOversize
	bcfg.EditionDate = time.Now()

	doc, err := book.BuildLayout(sections, bcfg)
	if err != nil {
		return err
	}
	if doc.Oversize {
		logger.Warn().
			Int("pages", doc.PageCount()).
			Int("limit", bcfg.MaxPages).
			Msg("Book exceeds the printable page limit; continuing anyway")
	}

	if err := book.Render(doc, cfg.Output.Path, bcfg); err != nil {
		return err
	}

	logger.Info().
		Str("path", cfg.Output.Path).
		Int("pages", doc.PageCount()).
		Int("titles", doc.TotalTitles).
		Msg("Done! Your book is ready. Now go read a PDF instead of just opening the apps")
	return nil
}

func logFetchBanner(cfg *config.Config) {
	switch {
	case cfg.TMDB.MaxPages >= tmdbPageCap:
		logger.Info().
			Int("max_pages", cfg.TMDB.MaxPages).
			Int("providers", len(catalog.Providers)).
			Msg("Mode: EVERYTHING, this is going to take a while. Go make coffee, or read a physical book")
	case quick:
		logger.Info().Msg("Mode: quick. Coward mode engaged")
	default:
		logger.Info().Int("max_pages", cfg.TMDB.MaxPages).Msg("Mode: limited pages per query")
	}
}
