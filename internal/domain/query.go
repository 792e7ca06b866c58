package domain

// SortOrder is the direction of an optional server-side sort.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// Phase is the lifecycle state of a query session.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseError   Phase = "error"
)

// Record is one row as returned by the CMS backend. The shape varies per
// resource, so it stays an opaque field map end to end.
type Record map[string]interface{}

// QueryState is the filter state owned by one query session.
type QueryState struct {
	Screen     string    `json:"screen"`
	Domain     string    `json:"domain,omitempty"`
	SearchTerm string    `json:"search_term"`
	SearchMode bool      `json:"search_mode"`
	SortKey    string    `json:"sort_key,omitempty"`
	SortOrder  SortOrder `json:"sort_order,omitempty"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
}

// ResultPage is an immutable snapshot of one page of upstream results.
// Pagination metadata is trusted from the server, never recomputed.
type ResultPage struct {
	Items       []Record `json:"items"`
	TotalItems  int      `json:"total_items"`
	TotalPages  int      `json:"total_pages"`
	HasNext     bool     `json:"has_next"`
	HasPrevious bool     `json:"has_previous"`
}

// EmptyPage is the page shown before the first fetch and after a failed one.
func EmptyPage() *ResultPage {
	return &ResultPage{Items: []Record{}, TotalPages: 1}
}

// Suggestion is an autocomplete candidate derived from a loaded record.
type Suggestion struct {
	Field        string `json:"field"`
	Value        string `json:"value"`
	DisplayLabel string `json:"display_label"`
	Source       Record `json:"source"`
}

// SuggestionPanel is the recomputed candidate list plus the highlight
// position, which resets to -1 on every recomputation.
type SuggestionPanel struct {
	Term        string       `json:"term"`
	Suggestions []Suggestion `json:"suggestions"`
	Highlight   int          `json:"highlight"`
}

// CursorResult reports the outcome of a keyboard action on the panel.
type CursorResult struct {
	Highlight     int    `json:"highlight"`
	SelectedValue string `json:"selected_value,omitempty"`
	Submitted     bool   `json:"submitted"`
	Closed        bool   `json:"closed"`
}

// Snapshot is the full visible state of a session, as rendered by a client.
type Snapshot struct {
	SessionID string      `json:"session_id"`
	State     QueryState  `json:"state"`
	Phase     Phase       `json:"phase"`
	Page      *ResultPage `json:"page"`
	ErrorMsg  string      `json:"error_message,omitempty"`
}
