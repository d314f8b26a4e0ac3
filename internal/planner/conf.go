package planner

// Configurations steer the planning pipeline. Loaded from, and persisted
// to, voyagoConfig.json in the voyago config directory.
type Configurations struct {
	Model               string   `json:"model"`
	Subreddit           string   `json:"subreddit"`
	NearbyRadiusMeters  int      `json:"nearby_radius_meters"`
	TopAttractions      int      `json:"top_attractions"`
	PostLimit           int      `json:"post_limit"`
	Adults              int      `json:"adults"`
	BackgroundSections  []string `json:"background_sections"`
	FetchTimeoutSeconds int      `json:"fetch_timeout_seconds"`
	SavePlans           bool     `json:"save_plans"`
	// Raw skips pretty printing and emits the plan as plain JSON
	Raw       bool   `json:"-"`
	ConfigDir string `json:"-"`
}

var DefaultConfig = Configurations{
	Model:               "gpt-4o-mini",
	Subreddit:           "travel",
	NearbyRadiusMeters:  10000,
	TopAttractions:      10,
	PostLimit:           5,
	Adults:              2,
	BackgroundSections:  []string{"Culture", "Tourism"},
	FetchTimeoutSeconds: 60,
	SavePlans:           true,
}
