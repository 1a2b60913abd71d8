package game

// Gender is the fixed set of identity categories recognized by the resolver.
// Only GenderMale and GenderFemale map to a roster; the remaining categories
// are valid resolutions that fit neither roster.
type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderNonBinary   Gender = "non-binary"
	GenderFluid       Gender = "genderfluid"
	GenderAgender     Gender = "agender"
	GenderBigender    Gender = "bigender"
	GenderTwoSpirit   Gender = "two-spirit"
	GenderQueer       Gender = "genderqueer"
	GenderUnspecified Gender = "unspecified"
)

// Person is an accepted entity resolved from the knowledge base. It is
// immutable once admitted: the admitting roster takes exclusive ownership
// and rosters are append-only.
type Person struct {
	// WikidataID is the external canonical identifier (e.g. "Q7186").
	// May be empty if the knowledge base returned no id.
	WikidataID string `json:"wikidata_id,omitempty"`
	Name       string `json:"name"`
	Gender     Gender `json:"gender"`
	ProfileURL string `json:"profile_url"`
	ImageURL   string `json:"image_url,omitempty"`
	// TimeInterval is the number of seconds elapsed between the previous
	// admission and this one (or since session start for the first),
	// rounded to millisecond precision.
	TimeInterval float64 `json:"time_interval"`
}

// State is the lifecycle phase of a Session.
type State string

const (
	StateNotStarted State = "not_started"
	StateRunning    State = "running"
	StateCompleted  State = "completed"
)

// Snapshot is a value copy of a session's observable state, safe to use
// outside the session lock.
type Snapshot struct {
	Code           string   `json:"code"`
	State          State    `json:"state"`
	Men            []Person `json:"men"`
	Women          []Person `json:"women"`
	MenCount       int      `json:"men_count"`
	WomenCount     int      `json:"women_count"`
	Pending        []string `json:"pending"`
	ElapsedSeconds int      `json:"elapsed_seconds"`
	RosterSize     int      `json:"roster_size"`
	Epoch          uint64   `json:"-"`
}
