package locpick

// Cleaner strips non-content markup from a fetched page. Cleaning is a
// local, synchronous step with no failure path: malformed or empty input
// yields an empty result.
type Cleaner interface {
	// Clean removes script and style elements and comments from the
	// markup, preserving document structure otherwise.
	Clean(html string) string
}

// Summarizer reduces cleaned markup to a bounded structural digest
// suitable for model input in place of the full document.
type Summarizer interface {
	// Summarize produces the digest: tag hierarchy plus attribute hints
	// such as id and class. Summarize is a pure function; the same input
	// always yields the same digest.
	Summarize(cleanedHTML string) string
}
