package book

import "time"

// Config carries the physical layout constraints. Defaults follow the
// KDP 6"x9" paperback profile; all lengths are in inches.
type Config struct {
	PageWidth     float64
	PageHeight    float64
	GutterMargin  float64 // inner margin, reserved for binding
	OutsideMargin float64
	TopMargin     float64
	BottomMargin  float64

	// MaxPages is the hard printing limit. A layout that exceeds it
	// fails with ErrTooLarge unless AllowOversize is set, in which
	// case the document is returned flagged for the caller to warn.
	MaxPages      int
	AllowOversize bool

	// EditionDate is printed on the title page.
	EditionDate time.Time
}

// DefaultConfig returns the KDP 6"x9" profile with an 828-page cap.
func DefaultConfig() Config {
	return Config{
		PageWidth:     6.0,
		PageHeight:    9.0,
		GutterMargin:  0.75,
		OutsideMargin: 0.5,
		TopMargin:     0.5,
		BottomMargin:  0.5,
		MaxPages:      828,
	}
}

// footerReserve is the vertical band at the bottom of the text area
// kept clear for the page number.
const footerReserve = 0.35

// usableHeight returns the vertical space available for content lines.
func (c Config) usableHeight() float64 {
	return c.PageHeight - c.TopMargin - c.BottomMargin - footerReserve
}
