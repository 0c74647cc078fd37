package geo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paulmach/orb"
)

func geocoderResponse(positions ...string) string {
	body := `{"response":{"GeoObjectCollection":{"featureMember":[`
	for i, pos := range positions {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"GeoObject":{"Point":{"pos":"%s"}}}`, pos)
	}
	return body + `]}}}`
}

func TestResolveFirstCandidateWins(t *testing.T) {
	var gotQuery, gotKey, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("geocode")
		gotKey = r.URL.Query().Get("apikey")
		gotFormat = r.URL.Query().Get("format")
		fmt.Fprint(w, geocoderResponse("30.523399 50.450001", "31.0 51.0"))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, 5*time.Second)
	p, err := client.Resolve(context.Background(), "Kyiv, Khreshchatyk 1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p != (orb.Point{30.523399, 50.450001}) {
		t.Errorf("Resolve = %v, want first candidate (30.523399 50.450001)", p)
	}
	if gotQuery != "Kyiv, Khreshchatyk 1" {
		t.Errorf("geocode query = %q", gotQuery)
	}
	if gotKey != "test-key" || gotFormat != "json" {
		t.Errorf("apikey/format = %q/%q, want test-key/json", gotKey, gotFormat)
	}
}

func TestResolveNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geocoderResponse())
	}))
	defer srv.Close()

	client := NewClient("k", srv.URL, 5*time.Second)
	_, err := client.Resolve(context.Background(), "no such place")
	if !errors.Is(err, ErrAddressNotFound) {
		t.Errorf("err = %v, want ErrAddressNotFound", err)
	}
}

func TestResolveProviderError(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusInternalServerError, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		client := NewClient("k", srv.URL, 5*time.Second)
		_, err := client.Resolve(context.Background(), "anywhere")
		srv.Close()
		if !errors.Is(err, ErrGeocodingUnavailable) {
			t.Errorf("status %d: err = %v, want ErrGeocodingUnavailable", status, err)
		}
	}
}

func TestResolveTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClient("k", srv.URL, time.Second)
	_, err := client.Resolve(context.Background(), "anywhere")
	if !errors.Is(err, ErrGeocodingUnavailable) {
		t.Errorf("err = %v, want ErrGeocodingUnavailable", err)
	}
}

func TestResolveEmptyAddress(t *testing.T) {
	client := NewClient("k", "http://unused", time.Second)
	_, err := client.Resolve(context.Background(), "   ")
	if !errors.Is(err, ErrAddressNotFound) {
		t.Errorf("err = %v, want ErrAddressNotFound", err)
	}
}

func TestParsePos(t *testing.T) {
	tests := []struct {
		pos     string
		want    orb.Point
		wantErr bool
	}{
		{"30.5 50.4", orb.Point{30.5, 50.4}, false},
		{"-0.1276 51.5072", orb.Point{-0.1276, 51.5072}, false},
		{"30.5", orb.Point{}, true},
		{"30.5 50.4 12", orb.Point{}, true},
		{"abc 50.4", orb.Point{}, true},
		{"30.5 def", orb.Point{}, true},
		{"", orb.Point{}, true},
	}
	for _, tt := range tests {
		got, err := parsePos(tt.pos)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePos(%q) err = %v, wantErr %v", tt.pos, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parsePos(%q) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestDistanceKm(t *testing.T) {
	// Moscow Kremlin to Red Square is a few hundred meters; same point is 0.
	a := orb.Point{37.617664, 55.752121}
	if d := DistanceKm(a, a); d != 0 {
		t.Errorf("DistanceKm(a, a) = %v, want 0", d)
	}

	b := orb.Point{37.620407, 55.754093}
	d := DistanceKm(a, b)
	if d <= 0 || d > 1 {
		t.Errorf("DistanceKm = %v, want a short positive distance under 1 km", d)
	}
	if d != DistanceKm(b, a) {
		t.Errorf("distance not symmetric: %v vs %v", d, DistanceKm(b, a))
	}
	// Rounded to 2 decimal places.
	if math.Abs(d*100-math.Round(d*100)) > 1e-9 {
		t.Errorf("DistanceKm = %v, want 2-decimal rounding", d)
	}
}
