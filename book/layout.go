package book

import (
	"fmt"

	"github.com/midwife-middleware/showbook/catalog"
)

// Side is the page edge carrying the gutter margin.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// GutterSide returns the gutter edge for a 1-indexed page number. In a
// bound book the gutter is the inner margin: page 1 is a recto
// (right-hand) page whose inner edge is its left side, and each verso
// mirrors the recto before it.
func GutterSide(pageNumber int) Side {
	if pageNumber%2 == 1 {
		return SideLeft
	}
	return SideRight
}

// LineStyle selects the typography of a layout line.
type LineStyle int

const (
	StyleTitle LineStyle = iota
	StyleSubtitle
	StyleEpigraph
	StyleHeading
	StyleSubheading
	StyleIndexRow
	StyleBody
	StyleSpacer
	StyleHeader
)

// pageHeaderText is the running header printed on every content page
// after the title page.
const pageHeaderText = "ShowBook - The Complete Streaming Guide"

// Line is one typeset row on a page.
type Line struct {
	Text  string
	Style LineStyle
}

// Height returns the vertical space the line occupies, in inches.
func (l Line) Height() float64 {
	switch l.Style {
	case StyleTitle:
		return 0.60
	case StyleSubtitle:
		return 0.35
	case StyleHeading:
		return 0.50
	case StyleSubheading:
		return 0.30
	case StyleEpigraph, StyleIndexRow:
		return 0.22
	case StyleHeader:
		return 0.30
	case StyleSpacer:
		return 0.12
	default:
		return 0.16
	}
}

// PageKind tags what a page holds.
type PageKind int

const (
	PageTitle PageKind = iota
	PageIndex
	PageListing
	PageColophon
	PageBlank
)

// Page is one laid-out book page.
type Page struct {
	Number int // 1-indexed
	Kind   PageKind
	Lines  []Line
}

// Recto reports whether the page is a right-hand page.
func (p *Page) Recto() bool { return p.Number%2 == 1 }

// Gutter returns the edge carrying the gutter margin.
func (p *Page) Gutter() Side { return GutterSide(p.Number) }

// Document is the fully laid-out book, ready to render.
type Document struct {
	Pages       []*Page
	TotalTitles int

	// Oversize is set when the page count exceeded Config.MaxPages and
	// Config.AllowOversize let the build continue.
	Oversize bool
}

// PageCount returns the number of pages including any blank pad page.
func (d *Document) PageCount() int { return len(d.Pages) }

// BuildLayout lays the aggregated catalog out into pages: title page,
// index, one listing chapter per provider in display order, colophon,
// and a blank pad page if the total would be odd. The result always
// has an even page count. Exceeding cfg.MaxPages fails with ErrTooLarge
// unless cfg.AllowOversize is set.
func BuildLayout(sections map[int]catalog.ProviderSections, cfg Config) (*Document, error) {
	b := &layoutBuilder{cfg: cfg, doc: &Document{}}

	b.titlePage()
	b.indexPage(sections)
	for _, p := range catalog.Providers {
		ps := sections[p.ID]
		b.providerChapter(p, ps.Movies, ps.Shows)
		b.doc.TotalTitles += len(ps.Movies.Titles) + len(ps.Shows.Titles)
	}
	b.colophonPage()

	if b.doc.PageCount()%2 == 1 {
		b.newPage(PageBlank)
	}

	if cfg.MaxPages > 0 && b.doc.PageCount() > cfg.MaxPages {
		if !cfg.AllowOversize {
			return nil, fmt.Errorf("%w: %d pages laid out, limit is %d",
				ErrTooLarge, b.doc.PageCount(), cfg.MaxPages)
		}
		b.doc.Oversize = true
	}

	return b.doc, nil
}

type layoutBuilder struct {
	cfg       Config
	doc       *Document
	page      *Page
	remaining float64
}

func (b *layoutBuilder) newPage(kind PageKind) {
	b.page = &Page{Number: b.doc.PageCount() + 1, Kind: kind}
	b.doc.Pages = append(b.doc.Pages, b.page)
	b.remaining = b.cfg.usableHeight()

	// Every content page after the title page carries a running
	// header; pad pages stay truly blank for printing.
	if b.page.Number > 1 && kind != PageBlank {
		header := Line{Text: pageHeaderText, Style: StyleHeader}
		b.page.Lines = append(b.page.Lines, header)
		b.remaining -= header.Height()
	}
}

// add appends a line to the current page, flowing onto a fresh page of
// the same kind when the line no longer fits.
func (b *layoutBuilder) add(line Line) {
	if line.Height() > b.remaining {
		b.newPage(b.page.Kind)
	}
	b.page.Lines = append(b.page.Lines, line)
	b.remaining -= line.Height()
}

// ensure starts a continuation page unless at least h inches remain.
// It keeps subsection headings from landing alone at a page bottom.
func (b *layoutBuilder) ensure(h float64) {
	if h > b.remaining {
		b.newPage(b.page.Kind)
	}
}

func (b *layoutBuilder) spacer(n int) {
	for i := 0; i < n; i++ {
		b.add(Line{Style: StyleSpacer})
	}
}

func (b *layoutBuilder) titlePage() {
	b.newPage(PageTitle)
	b.spacer(8)
	b.add(Line{Text: "ShowBook", Style: StyleTitle})
	b.add(Line{Text: "The Complete Streaming Guide", Style: StyleSubtitle})
	b.spacer(4)
	for _, quote := range []string{
		"\"Crazy when you get a new streaming service and see all",
		"these shows and movies you forgot existed. Like oh that's",
		"where these were. They should make some kind of interface",
		"where you could surf through all the different options at once.",
		"Or maybe a book to tell you what's on where.\"",
		"",
		"- @deepfates",
	} {
		b.add(Line{Text: quote, Style: StyleEpigraph})
	}
	b.spacer(3)
	b.add(Line{Text: "So here's your book.", Style: StyleEpigraph})
	b.add(Line{Text: "You're welcome.", Style: StyleEpigraph})
	b.spacer(4)
	b.add(Line{Text: "Generated " + b.cfg.EditionDate.Format("January 2, 2006"), Style: StyleEpigraph})
	b.add(Line{Text: "(Already out of date.)", Style: StyleEpigraph})
}

func (b *layoutBuilder) indexPage(sections map[int]catalog.ProviderSections) {
	b.newPage(PageIndex)
	b.add(Line{Text: "Table of Contents", Style: StyleHeading})
	b.spacer(1)

	var total int
	for _, p := range catalog.Providers {
		ps := sections[p.ID]
		movies, shows := len(ps.Movies.Titles), len(ps.Shows.Titles)
		total += movies + shows
		b.add(Line{
			Text:  fmt.Sprintf("%s - %d movies, %d shows", p.Name, movies, shows),
			Style: StyleIndexRow,
		})
	}

	b.spacer(2)
	b.add(Line{Text: fmt.Sprintf("Total: %d titles", total), Style: StyleIndexRow})
}

func (b *layoutBuilder) providerChapter(p catalog.Provider, movies, shows catalog.Section) {
	b.newPage(PageListing)
	b.add(Line{Text: p.Name, Style: StyleHeading})
	b.spacer(1)
	b.titleList(movies)
	b.spacer(1)
	b.titleList(shows)
}

func (b *layoutBuilder) titleList(section catalog.Section) {
	heading := Line{
		Text:  fmt.Sprintf("%s (%d)", section.Kind.Label(), len(section.Titles)),
		Style: StyleSubheading,
	}
	// Keep the heading attached to at least one entry.
	b.ensure(heading.Height() + Line{Style: StyleBody}.Height())
	b.add(heading)

	for _, t := range section.Titles {
		text := "  " + t.Name
		if t.Year != "" {
			text += fmt.Sprintf(" (%s)", t.Year)
		}
		b.add(Line{Text: text, Style: StyleBody})
	}
}

func (b *layoutBuilder) colophonPage() {
	b.newPage(PageColophon)
	b.spacer(10)
	b.add(Line{Text: "Colophon", Style: StyleSubheading})
	b.spacer(1)
	for _, line := range []string{
		"Generated by ShowBook",
		"github.com/midwife-middleware/showbook",
		"",
		"Streaming data provided by TMDB (themoviedb.org).",
		"This product uses the TMDB API but is not",
		"endorsed or certified by TMDB.",
		"",
		"You could have just scrolled through the apps,",
		"but no. You wanted a book.",
		"Here's your book.",
	} {
		b.add(Line{Text: line, Style: StyleEpigraph})
	}
}
