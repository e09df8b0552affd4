package directions

import (
	"context"
	"ev-route-dashboard/internal/domain"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// routeURL builds {base}/directions/v5/{profile}/{lon},{lat};{lon},{lat}.
func (m *MapboxDirectionsProvider) routeURL(from, to domain.GeoPoint) string {
	coords := fmt.Sprintf("%.6f,%.6f;%.6f,%.6f", from.Lon, from.Lat, to.Lon, to.Lat)

	q := url.Values{}
	q.Set("geometries", "geojson")
	q.Set("access_token", m.token)

	return fmt.Sprintf("%s/directions/v5/%s/%s?%s", m.baseURL, m.profile, coords, q.Encode())
}

func (m *MapboxDirectionsProvider) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	return req, nil
}

// do executes the request and returns the body of a 2xx response.
// Other statuses come back as *httpStatusError carrying the raw body.
func (m *MapboxDirectionsProvider) do(req *http.Request) ([]byte, error) {
	resp, err := m.session.Do(req)
	if err != nil {
		// url.Error repeats the full request URL, token included.
		if ue, ok := err.(*url.Error); ok {
			return nil, ue.Err
		}
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}

	return b, nil
}
