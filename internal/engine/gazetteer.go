package engine

// Gazetteer classifies free-text tokens into recognized location names and
// "broad" terms that mean "no location filter". Injected via Config so the
// lists are swappable in tests; the defaults below cover the upstream's
// catchment area.
type Gazetteer struct {
	Locations  map[string]bool
	BroadTerms map[string]bool
}

// IsLocation reports whether token is a recognized city/region name.
func (g Gazetteer) IsLocation(token string) bool {
	return g.Locations[token]
}

// IsBroad reports whether token means "search everywhere".
func (g Gazetteer) IsBroad(token string) bool {
	return g.BroadTerms[token]
}

var defaultLocations = []string{
	"mumbai", "delhi", "bangalore", "bengaluru", "hyderabad", "chennai",
	"kolkata", "pune", "ahmedabad", "jaipur", "lucknow", "chandigarh",
	"gurgaon", "gurugram", "noida", "indore", "bhopal", "nagpur", "patna",
	"kochi", "cochin", "thiruvananthapuram", "coimbatore", "visakhapatnam",
	"bhubaneswar", "guwahati", "ranchi", "raipur", "dehradun", "shimla",
	"goa", "surat", "vadodara", "ludhiana", "amritsar", "kanpur", "varanasi",
	"mysore", "mysuru", "mangalore", "nashik", "rajkot", "jamshedpur",
	"maharashtra", "karnataka", "kerala", "punjab", "haryana", "gujarat",
	"rajasthan", "odisha", "assam", "bihar", "telangana",
}

var defaultBroadTerms = []string{
	"india", "nationwide", "anywhere", "remote", "online",
}

// DefaultGazetteer returns the built-in location and broad-term sets.
func DefaultGazetteer() Gazetteer {
	g := Gazetteer{
		Locations:  make(map[string]bool, len(defaultLocations)),
		BroadTerms: make(map[string]bool, len(defaultBroadTerms)),
	}
	for _, l := range defaultLocations {
		g.Locations[l] = true
	}
	for _, b := range defaultBroadTerms {
		g.BroadTerms[b] = true
	}
	return g
}
