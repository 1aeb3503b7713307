// Package geocode resolves property addresses to coordinates through the
// Google geocoding API. The adapter fails soft: any configuration,
// transport, or provider problem degrades to "no coordinates".
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"
	// DefaultQPS is the provider-friendly ceiling for sequential lookups.
	DefaultQPS = 8.0
)

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lon float64
}

type cacheKey struct {
	street, unit, city, state, zip string
}

// Client is a rate-limited, caching geocoder. Lookups for the same
// normalized address are answered from an in-process cache for the
// duration of a run; an optional Redis cache persists hits across runs.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *Limiter
	cache   map[cacheKey]*Coordinates
	redis   *RedisCache
}

// New creates a geocoding client. An empty apiKey produces a client whose
// lookups always return no coordinates.
func New(apiKey string, qps float64) *Client {
	if qps <= 0 {
		qps = DefaultQPS
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 8 * time.Second},
		limiter: NewLimiter(qps),
		cache:   make(map[cacheKey]*Coordinates),
	}
}

// WithRedisCache attaches a cross-run cache consulted between the
// in-process map and the provider.
func (c *Client) WithRedisCache(rc *RedisCache) *Client {
	c.redis = rc
	return c
}

// Geocode resolves an address to coordinates, or nil when the client has
// no API key, a required component is missing, or the provider fails or
// returns nothing. Failed lookups are cached too, so a bad address costs
// one call per run.
func (c *Client) Geocode(ctx context.Context, street, city, state, zip string, unit *string) *Coordinates {
	if c.apiKey == "" {
		return nil
	}
	if street == "" || city == "" || state == "" || zip == "" {
		return nil
	}

	key := cacheKey{
		street: strings.ToUpper(strings.TrimSpace(street)),
		unit:   strings.ToUpper(strings.TrimSpace(strVal(unit))),
		city:   strings.ToUpper(strings.TrimSpace(city)),
		state:  strings.ToUpper(strings.TrimSpace(state)),
		zip:    strings.TrimSpace(zip),
	}
	if coords, ok := c.cache[key]; ok {
		return coords
	}
	if c.redis != nil {
		if coords, ok := c.redis.Get(ctx, key); ok {
			c.cache[key] = coords
			return coords
		}
	}

	c.limiter.Wait()
	coords, err := c.lookup(ctx, street, city, state, zip, unit)
	if err != nil {
		log.Printf("Geocode failed for %s, %s: %v", street, city, err)
		coords = nil
	}
	c.cache[key] = coords
	if c.redis != nil && coords != nil {
		c.redis.Put(ctx, key, coords)
	}
	return coords
}

// lookup performs one provider call and picks the best-scoring candidate.
func (c *Client) lookup(ctx context.Context, street, city, state, zip string, unit *string) (*Coordinates, error) {
	line1 := strings.TrimSpace(street)
	if u := strVal(unit); u != "" {
		line1 += " " + u
	}

	params := url.Values{}
	params.Set("address", fmt.Sprintf("%s, %s, %s %s, USA", line1, strings.TrimSpace(city), strings.TrimSpace(state), strings.TrimSpace(zip)))
	params.Set("components", "country:US|postal_code:"+strings.TrimSpace(zip))
	params.Set("region", "us")
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "building geocode request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "geocode request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("geocode returned HTTP %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "decoding geocode response")
	}
	if body.Status != "OK" || len(body.Results) == 0 {
		return nil, nil
	}

	best := body.Results[0]
	for _, r := range body.Results[1:] {
		if score(r) > score(best) {
			best = r
		}
	}
	return &Coordinates{Lat: best.Geometry.Location.Lat, Lon: best.Geometry.Location.Lng}, nil
}

type geocodeResponse struct {
	Status  string   `json:"status"`
	Results []result `json:"results"`
}

type result struct {
	Geometry struct {
		LocationType string `json:"location_type"`
		Location     struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	PartialMatch bool     `json:"partial_match"`
	Types        []string `json:"types"`
}

var locationTypeScore = map[string]int{
	"ROOFTOP":            4,
	"RANGE_INTERPOLATED": 3,
	"GEOMETRIC_CENTER":   2,
	"APPROXIMATE":        1,
}

// score ranks a candidate: location-type precision, minus 2 for partial
// matches, plus 1 when the result is tagged as a street address.
func score(r result) int {
	s, ok := locationTypeScore[strings.ToUpper(r.Geometry.LocationType)]
	if !ok {
		s = 1
	}
	if r.PartialMatch {
		s -= 2
	}
	for _, t := range r.Types {
		if t == "street_address" {
			s++
			break
		}
	}
	return s
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
