package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

var (
	// ErrAddressNotFound: the provider answered but had no candidates for
	// the address text. Not retryable until the address changes.
	ErrAddressNotFound = errors.New("geocoder: address not found")
	// ErrGeocodingUnavailable: transport or provider failure. The client
	// performs no retry; that is the caller's call.
	ErrGeocodingUnavailable = errors.New("geocoder: service unavailable")
)

// Client resolves free-text addresses to coordinates through the configured
// geocoding provider. It is stateless; pair it with a Cache to avoid
// repeated network calls for the same address.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// geocodeResponse mirrors the provider's JSON. Candidates arrive ordered by
// relevance; each carries a "lon lat" position string.
type geocodeResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// Resolve geocodes one address. The first (most relevant) candidate wins;
// that tie-break is deliberate and callers depend on it being stable.
func (c *Client) Resolve(ctx context.Context, address string) (orb.Point, error) {
	if strings.TrimSpace(address) == "" {
		return orb.Point{}, fmt.Errorf("%w: empty address", ErrAddressNotFound)
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("geocode", address)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return orb.Point{}, fmt.Errorf("%w: %v", ErrGeocodingUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return orb.Point{}, fmt.Errorf("%w: %v", ErrGeocodingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return orb.Point{}, fmt.Errorf("%w: status %d", ErrGeocodingUnavailable, resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return orb.Point{}, fmt.Errorf("%w: decode: %v", ErrGeocodingUnavailable, err)
	}

	members := decoded.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return orb.Point{}, fmt.Errorf("%w: %q", ErrAddressNotFound, address)
	}

	return parsePos(members[0].GeoObject.Point.Pos)
}

// parsePos parses the provider's space-separated "lon lat" pair.
func parsePos(pos string) (orb.Point, error) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("%w: malformed position %q", ErrGeocodingUnavailable, pos)
	}
	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("%w: malformed longitude %q", ErrGeocodingUnavailable, parts[0])
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("%w: malformed latitude %q", ErrGeocodingUnavailable, parts[1])
	}
	return orb.Point{lon, lat}, nil
}

// DistanceKm returns the great-circle distance between two points in
// kilometers, rounded to 2 decimal places.
func DistanceKm(a, b orb.Point) float64 {
	return math.Round(orbgeo.Distance(a, b)/10) / 100
}
