package ergast

// Response envelope types for the Ergast-style results feed. Only the
// fields the client reads are declared.

type envelope struct {
	MRData struct {
		DriverTable struct {
			Drivers []apiDriver `json:"Drivers"`
		} `json:"DriverTable"`
		RaceTable struct {
			Races []apiRace `json:"Races"`
		} `json:"RaceTable"`
		SeasonTable struct {
			Seasons []apiSeason `json:"Seasons"`
		} `json:"SeasonTable"`
	} `json:"MRData"`
}

type apiDriver struct {
	DriverID    string `json:"driverId"`
	GivenName   string `json:"givenName"`
	FamilyName  string `json:"familyName"`
	Code        string `json:"code"`
	Nationality string `json:"nationality"`
	DateOfBirth string `json:"dateOfBirth"`
}

type apiRace struct {
	Season   string `json:"season"`
	Round    string `json:"round"`
	RaceName string `json:"raceName"`
	Date     string `json:"date"`
	Circuit  struct {
		CircuitName string `json:"circuitName"`
		Location    struct {
			Locality string `json:"locality"`
			Country  string `json:"country"`
		} `json:"Location"`
	} `json:"Circuit"`
	Results []apiResult `json:"Results"`
}

type apiResult struct {
	Position   string    `json:"position"`
	Driver     apiDriver `json:"Driver"`
	FastestLap struct {
		Time struct {
			Time string `json:"time"`
		} `json:"Time"`
	} `json:"FastestLap"`
}

type apiSeason struct {
	Season string `json:"season"`
}
