package search

// Context window markers. Every rendered context line starts with one of
// these, followed by "<line>: <text>".
const (
	MatchMarker   = ">>> "
	ContextMarker = "    "
)
