package ergast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"apextelemetry/domain/telemetry"
	"apextelemetry/internal"
	"apextelemetry/ports"
)

// firstSeason is the start of the era the catalog covers.
const firstSeason = 2000

// Client fetches historical race data from an Ergast-style results feed.
// Responses are cached in memory and the client falls back to built-in
// data when the feed is unreachable, so it never blocks telemetry
// generation. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     *internal.Logger
	clock   func() time.Time

	mu               sync.RWMutex
	driversCache     []ports.Driver
	racesByYearCache map[int][]apiRace
	driverRacesCache map[string][]ports.Race
	yearsCache       []int
}

// NewClient creates a results client against the given base URL, e.g.
// "https://ergast.com/api/f1".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:          strings.TrimRight(baseURL, "/"),
		http:             &http.Client{Timeout: 10 * time.Second},
		log:              internal.DefaultLogger,
		clock:            time.Now,
		racesByYearCache: make(map[int][]apiRace),
		driverRacesCache: make(map[string][]ports.Race),
	}
}

// Drivers returns the driver catalog for the modern era, sorted by name.
// When the feed is unreachable it serves the cached catalog if any, then
// the built-in fallback list.
func (c *Client) Drivers(ctx context.Context) ([]ports.Driver, error) {
	c.mu.RLock()
	cached := c.driversCache
	c.mu.RUnlock()
	if len(cached) > 0 {
		return cached, nil
	}

	if !c.available(ctx) {
		c.log.Info("results feed unreachable, using fallback driver list")
		return defaultDrivers(), nil
	}

	seen := make(map[string]bool)
	var drivers []ports.Driver

	currentYear := c.clock().Year()
	for year := firstSeason; year <= currentYear; year++ {
		var resp envelope
		url := fmt.Sprintf("%s/%d/drivers.json?limit=100", c.baseURL, year)
		if err := c.getJSON(ctx, url, &resp); err != nil {
			c.log.Debug("driver fetch for %d failed: %v", year, err)
			continue
		}

		for _, d := range resp.MRData.DriverTable.Drivers {
			if d.DriverID == "" || seen[d.DriverID] {
				continue
			}
			seen[d.DriverID] = true
			drivers = append(drivers, ports.Driver{
				ID:          d.DriverID,
				Name:        strings.TrimSpace(d.GivenName + " " + d.FamilyName),
				Code:        d.Code,
				Nationality: d.Nationality,
				DateOfBirth: d.DateOfBirth,
			})
		}
	}

	if len(drivers) == 0 {
		return defaultDrivers(), nil
	}

	sort.Slice(drivers, func(i, j int) bool { return drivers[i].Name < drivers[j].Name })

	c.mu.Lock()
	c.driversCache = drivers
	c.mu.Unlock()

	c.log.Info("fetched %d drivers from results feed", len(drivers))
	return drivers, nil
}

// AvailableYears returns seasons with race data, most recent first.
func (c *Client) AvailableYears(ctx context.Context) ([]int, error) {
	c.mu.RLock()
	cached := c.yearsCache
	c.mu.RUnlock()
	if len(cached) > 0 {
		return cached, nil
	}

	var resp envelope
	if err := c.getJSON(ctx, c.baseURL+"/seasons.json?limit=200", &resp); err == nil {
		var years []int
		for _, s := range resp.MRData.SeasonTable.Seasons {
			if y, err := strconv.Atoi(s.Season); err == nil && y >= firstSeason {
				years = append(years, y)
			}
		}
		if len(years) > 0 {
			sort.Sort(sort.Reverse(sort.IntSlice(years)))
			c.mu.Lock()
			c.yearsCache = years
			c.mu.Unlock()
			return years, nil
		}
	}

	// Fallback: the modern era, newest first.
	var years []int
	for y := c.clock().Year(); y >= firstSeason; y-- {
		years = append(years, y)
	}
	return years, nil
}

// RacesForDriver returns the races a driver took part in, most recent
// first. Offline, every driver shares the same fallback calendar so
// two-driver comparisons line up.
func (c *Client) RacesForDriver(ctx context.Context, driverName string) ([]ports.Race, error) {
	key := strings.ToLower(driverName)

	c.mu.RLock()
	cached := c.driverRacesCache[key]
	c.mu.RUnlock()
	if len(cached) > 0 {
		return cached, nil
	}

	races := c.fetchDriverRaces(ctx, driverName)
	if len(races) == 0 {
		races = fallbackCalendar(c.clock().Year())
	}

	sort.Slice(races, func(i, j int) bool {
		if races[i].Year != races[j].Year {
			return races[i].Year > races[j].Year
		}
		return races[i].Round > races[j].Round
	})

	c.mu.Lock()
	c.driverRacesCache[key] = races
	c.mu.Unlock()

	return races, nil
}

func (c *Client) fetchDriverRaces(ctx context.Context, driverName string) []ports.Race {
	driverID, err := c.driverID(ctx, driverName)
	if err != nil || driverID == "" {
		return nil
	}

	var resp envelope
	url := fmt.Sprintf("%s/drivers/%s/results.json?limit=1000", c.baseURL, driverID)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		c.log.Debug("race history fetch for %s failed: %v", driverID, err)
		return nil
	}

	var races []ports.Race
	for _, r := range resp.MRData.RaceTable.Races {
		year, _ := strconv.Atoi(r.Season)
		round, _ := strconv.Atoi(r.Round)
		if year < firstSeason {
			continue
		}
		races = append(races, ports.Race{
			Year:        year,
			Round:       round,
			Name:        r.RaceName,
			Date:        r.Date,
			Circuit:     r.Circuit.CircuitName,
			Location:    r.Circuit.Location.Locality,
			Country:     r.Circuit.Location.Country,
			DisplayName: fmt.Sprintf("%s %d (%s)", r.RaceName, year, r.Date),
		})
	}
	return races
}

// GroundTruthFor resolves the actual result for the race nearest the given
// date. A nil result with nil error means nothing could be resolved;
// telemetry generation proceeds unanchored in that case.
func (c *Client) GroundTruthFor(ctx context.Context, driverName, raceDate string) (*telemetry.GroundTruth, error) {
	target := c.clock()
	if raceDate != "" {
		if parsed, err := time.Parse(telemetry.DateLayout, raceDate); err == nil {
			target = parsed
		}
	}

	driverID, err := c.driverID(ctx, driverName)
	if err != nil || driverID == "" {
		return nil, nil
	}

	races, err := c.racesByYear(ctx, target.Year())
	if err != nil || len(races) == 0 {
		return nil, nil
	}

	closest := closestRace(races, target)
	if closest == nil {
		return nil, nil
	}

	var resp envelope
	url := fmt.Sprintf("%s/%s/%s/results.json", c.baseURL, closest.Season, closest.Round)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		c.log.Debug("results fetch for %s round %s failed: %v", closest.Season, closest.Round, err)
		return nil, nil
	}

	for _, race := range resp.MRData.RaceTable.Races {
		for _, result := range race.Results {
			if result.Driver.DriverID != driverID {
				continue
			}

			truth := &telemetry.GroundTruth{}
			if pos, err := strconv.Atoi(result.Position); err == nil && pos >= 1 {
				truth.Position = &pos
			}
			if secs, ok := parseLapTime(result.FastestLap.Time.Time); ok {
				truth.FastestLapSeconds = &secs
			}
			if truth.Position == nil && truth.FastestLapSeconds == nil {
				return nil, nil
			}
			return truth, nil
		}
	}

	return nil, nil
}

// driverID resolves a display name to the feed's driver identifier,
// case-insensitively.
func (c *Client) driverID(ctx context.Context, driverName string) (string, error) {
	drivers, err := c.Drivers(ctx)
	if err != nil {
		return "", err
	}
	for _, d := range drivers {
		if strings.EqualFold(d.Name, driverName) {
			return d.ID, nil
		}
	}
	return "", nil
}

func (c *Client) racesByYear(ctx context.Context, year int) ([]apiRace, error) {
	c.mu.RLock()
	cached, ok := c.racesByYearCache[year]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var resp envelope
	url := fmt.Sprintf("%s/%d.json?limit=100", c.baseURL, year)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	races := resp.MRData.RaceTable.Races
	c.mu.Lock()
	c.racesByYearCache[year] = races
	c.mu.Unlock()
	return races, nil
}

// closestRace picks the race whose date is nearest the target.
func closestRace(races []apiRace, target time.Time) *apiRace {
	var best *apiRace
	var bestDiff time.Duration

	for i := range races {
		raceDate, err := time.Parse(telemetry.DateLayout, races[i].Date)
		if err != nil {
			continue
		}
		diff := target.Sub(raceDate)
		if diff < 0 {
			diff = -diff
		}
		if best == nil || diff < bestDiff {
			best = &races[i]
			bestDiff = diff
		}
	}
	return best
}

// parseLapTime converts a "M:SS.mmm" lap time into seconds.
func parseLapTime(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	minutes, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, false
	}
	return minutes*60 + seconds, true
}

// available probes the feed with a minimal request.
func (c *Client) available(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var resp envelope
	url := fmt.Sprintf("%s/%d/drivers.json?limit=1", c.baseURL, firstSeason)
	return c.getJSON(probeCtx, url, &resp) == nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
