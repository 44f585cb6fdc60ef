package attraction

// Attraction is a point of interest shown on the destinations map and used by
// the trip planner. X and Y are percentage positions on the stylised island
// map (0-100); Lat and Lng are real coordinates used for nearby lookups.
type Attraction struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	District    string   `json:"district"`
	Province    string   `json:"province"`
	Categories  []string `json:"categories"`
	Image       string   `json:"image"`
	Highlights  []string `json:"highlights"`
	BestTime    string   `json:"bestTime"`
	EntryFee    string   `json:"entryFee"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
}

// Ranked pairs an attraction with its distance from a lookup origin.
type Ranked struct {
	Attraction Attraction `json:"attraction"`
	DistanceKm float64    `json:"distance_km"`
}

// ImportResult summarises a CSV import.
type ImportResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}
