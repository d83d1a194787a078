package domain

// Options control how resolved matches are selected and decorated. The
// resolution algorithm only consumes IncludeChildren; the remaining toggles
// affect rendering and are read by the composition step alone.
type Options struct {
	IncludeChildren bool // fold list-item descendants into a tag's span
	IncludeLink     bool // prefix each match with a wiki link to its source
	IncludeCallout  bool // wrap each match in a callout block
	RemoveTags      bool // strip tag tokens from match text
	ListParagraph   bool // convert leading list bullets to paragraphs
}

// DefaultOptions returns the option set used when no configuration is found.
func DefaultOptions() Options {
	return Options{
		IncludeChildren: true,
		IncludeLink:     true,
	}
}
