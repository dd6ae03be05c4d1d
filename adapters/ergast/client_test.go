package ergast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)
	}
}

func newTestClient(t *testing.T, handler http.Handler, year int) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	c.clock = fixedClock(year)
	return c
}

func feedHandler() http.Handler {
	mux := http.NewServeMux()

	driversJSON := `{"MRData":{"DriverTable":{"Drivers":[
		{"driverId":"hamilton","givenName":"Lewis","familyName":"Hamilton","code":"HAM","nationality":"British"},
		{"driverId":"verstappen","givenName":"Max","familyName":"Verstappen","code":"VER","nationality":"Dutch"}
	]}}}`
	for year := firstSeason; year <= 2021; year++ {
		mux.HandleFunc("/"+strconv.Itoa(year)+"/drivers.json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(driversJSON))
		})
	}

	mux.HandleFunc("/2021.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"MRData":{"RaceTable":{"Races":[
			{"season":"2021","round":"1","raceName":"Bahrain Grand Prix","date":"2021-03-28",
			 "Circuit":{"circuitName":"Bahrain International Circuit","Location":{"locality":"Sakhir","country":"Bahrain"}}},
			{"season":"2021","round":"10","raceName":"British Grand Prix","date":"2021-07-18",
			 "Circuit":{"circuitName":"Silverstone Circuit","Location":{"locality":"Silverstone","country":"UK"}}}
		]}}}`))
	})

	mux.HandleFunc("/2021/10/results.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"MRData":{"RaceTable":{"Races":[
			{"season":"2021","round":"10","raceName":"British Grand Prix","date":"2021-07-18",
			 "Circuit":{"circuitName":"Silverstone Circuit","Location":{"locality":"Silverstone","country":"UK"}},
			 "Results":[
				{"position":"1","Driver":{"driverId":"hamilton"},"FastestLap":{"Time":{"time":"1:28.617"}}},
				{"position":"2","Driver":{"driverId":"leclerc"},"FastestLap":{"Time":{"time":"1:29.001"}}}
			]}
		]}}}`))
	})

	mux.HandleFunc("/drivers/hamilton/results.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"MRData":{"RaceTable":{"Races":[
			{"season":"2020","round":"17","raceName":"Abu Dhabi Grand Prix","date":"2020-12-13",
			 "Circuit":{"circuitName":"Yas Marina Circuit","Location":{"locality":"Abu Dhabi","country":"UAE"}}},
			{"season":"2021","round":"1","raceName":"Bahrain Grand Prix","date":"2021-03-28",
			 "Circuit":{"circuitName":"Bahrain International Circuit","Location":{"locality":"Sakhir","country":"Bahrain"}}}
		]}}}`))
	})

	mux.HandleFunc("/seasons.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"MRData":{"SeasonTable":{"Seasons":[
			{"season":"1999"},{"season":"2019"},{"season":"2020"},{"season":"2021"}
		]}}}`))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	return mux
}

func TestDriversFetchAndCache(t *testing.T) {
	c := newTestClient(t, feedHandler(), 2021)

	drivers, err := c.Drivers(context.Background())
	require.NoError(t, err)
	require.Len(t, drivers, 2)

	// Sorted by name.
	assert.Equal(t, "Lewis Hamilton", drivers[0].Name)
	assert.Equal(t, "Max Verstappen", drivers[1].Name)
	assert.Equal(t, "hamilton", drivers[0].ID)

	again, err := c.Drivers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, drivers, again)
}

func TestDriversFallbackWhenFeedDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	c.clock = fixedClock(2021)

	drivers, err := c.Drivers(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, drivers)

	names := make(map[string]bool)
	for _, d := range drivers {
		names[d.Name] = true
	}
	assert.True(t, names["Lewis Hamilton"])
	assert.True(t, names["Michael Schumacher"])
}

func TestAvailableYears(t *testing.T) {
	c := newTestClient(t, feedHandler(), 2021)

	years, err := c.AvailableYears(context.Background())
	require.NoError(t, err)

	// Newest first, pre-2000 seasons filtered out.
	assert.Equal(t, []int{2021, 2020, 2019}, years)
}

func TestRacesForDriver(t *testing.T) {
	c := newTestClient(t, feedHandler(), 2021)

	races, err := c.RacesForDriver(context.Background(), "Lewis Hamilton")
	require.NoError(t, err)
	require.Len(t, races, 2)

	// Most recent first.
	assert.Equal(t, 2021, races[0].Year)
	assert.Equal(t, "Bahrain Grand Prix", races[0].Name)
	assert.Equal(t, 2020, races[1].Year)
	assert.Equal(t, "Abu Dhabi Grand Prix 2020 (2020-12-13)", races[1].DisplayName)
}

func TestRacesForDriverFallbackSharedAcrossDrivers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	c.clock = fixedClock(2024)

	races1, err := c.RacesForDriver(context.Background(), "Lewis Hamilton")
	require.NoError(t, err)
	races2, err := c.RacesForDriver(context.Background(), "Max Verstappen")
	require.NoError(t, err)

	require.NotEmpty(t, races1)
	assert.Equal(t, races1, races2)

	// 12 rounds per season over five seasons.
	assert.Len(t, races1, 60)
	for _, race := range races1 {
		assert.GreaterOrEqual(t, race.Year, 2020)
		assert.LessOrEqual(t, race.Year, 2024)
		_, err := time.Parse("2006-01-02", race.Date)
		assert.NoError(t, err)
	}
}

func TestGroundTruthFor(t *testing.T) {
	c := newTestClient(t, feedHandler(), 2021)

	// 2021-07-20 is nearest the British GP on 2021-07-18.
	truth, err := c.GroundTruthFor(context.Background(), "Lewis Hamilton", "2021-07-20")
	require.NoError(t, err)
	require.NotNil(t, truth)

	require.NotNil(t, truth.Position)
	assert.Equal(t, 1, *truth.Position)

	require.NotNil(t, truth.FastestLapSeconds)
	assert.InDelta(t, 88.617, *truth.FastestLapSeconds, 1e-9)
}

func TestGroundTruthForUnknownDriver(t *testing.T) {
	c := newTestClient(t, feedHandler(), 2021)

	truth, err := c.GroundTruthFor(context.Background(), "Nobody Nowhere", "2021-07-20")
	require.NoError(t, err)
	assert.Nil(t, truth)
}

func TestParseLapTime(t *testing.T) {
	secs, ok := parseLapTime("1:28.617")
	require.True(t, ok)
	assert.InDelta(t, 88.617, secs, 1e-9)

	secs, ok = parseLapTime("0:59.999")
	require.True(t, ok)
	assert.InDelta(t, 59.999, secs, 1e-9)

	_, ok = parseLapTime("")
	assert.False(t, ok)
	_, ok = parseLapTime("88.617")
	assert.False(t, ok)
	_, ok = parseLapTime("1:2:3")
	assert.False(t, ok)
}

func TestClosestRace(t *testing.T) {
	races := []apiRace{
		{Season: "2021", Round: "1", Date: "2021-03-28"},
		{Season: "2021", Round: "10", Date: "2021-07-18"},
		{Season: "2021", Round: "22", Date: "2021-12-12"},
	}

	target := time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)
	best := closestRace(races, target)
	require.NotNil(t, best)
	assert.Equal(t, "10", best.Round)

	target = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	best = closestRace(races, target)
	require.NotNil(t, best)
	assert.Equal(t, "1", best.Round)
}
