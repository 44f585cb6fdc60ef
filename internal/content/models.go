package content

// SiteConfig is the free-form settings blob edited on the admin settings tab
// (hero copy, contact details, social links). Stored as a single JSONB row;
// the backend treats it as opaque.
type SiteConfig map[string]any

type FAQItem struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
}

type Destination struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Tagline     string   `json:"tagline"`
	Description string   `json:"description"`
	Region      string   `json:"region"`
	Image       string   `json:"image"`
	Highlights  []string `json:"highlights"`
	BestTime    string   `json:"bestTime"`
}

type Tour struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	DurationDays   int      `json:"duration_days"`
	PriceFrom      float64  `json:"price_from"`
	Image          string   `json:"image"`
	Highlights     []string `json:"highlights"`
	DestinationIDs []string `json:"destination_ids"`
}

type Vehicle struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Seats       int      `json:"seats"`
	PricePerDay float64  `json:"price_per_day"`
	Image       string   `json:"image"`
	Features    []string `json:"features"`
}

// SavePayload is the admin save document. Nil fields are left untouched; a
// present field replaces the whole stored collection, including the empty
// slice, which deletes everything in it. ConfirmReplace must be set for an
// explicit empty collection to be honored, since that is otherwise an
// easy way to lose data.
type SavePayload struct {
	SiteConfig     *SiteConfig    `json:"siteConfig,omitempty"`
	FAQ            *[]FAQItem     `json:"faq,omitempty"`
	Destinations   *[]Destination `json:"destinations,omitempty"`
	Tours          *[]Tour        `json:"tours,omitempty"`
	Fleet          *[]Vehicle     `json:"fleet,omitempty"`
	ConfirmReplace bool           `json:"confirm_replace,omitempty"`
}

// CollectionResult counts what one reconciliation pass did.
type CollectionResult struct {
	Deleted  int `json:"deleted"`
	Upserted int `json:"upserted"`
}

// SaveSummary maps collection name to its result, for collections present in
// the payload only.
type SaveSummary map[string]CollectionResult

// Snapshot is the full published content document served to the public site.
type Snapshot struct {
	SiteConfig   SiteConfig    `json:"siteConfig"`
	FAQ          []FAQItem     `json:"faq"`
	Destinations []Destination `json:"destinations"`
	Tours        []Tour        `json:"tours"`
	Fleet        []Vehicle     `json:"fleet"`
}
