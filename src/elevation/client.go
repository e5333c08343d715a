// Package elevation computes elevation profiles for map paths through the organization's
// elevationSync geoprocessing service, and persists the results as JSONL.
package elevation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iafilius/ElevationProfile/src/logging"
	"github.com/iafilius/ElevationProfile/src/profile"
	"github.com/iafilius/ElevationProfile/src/types"
)

var log = logging.For("elevation")

var (
	// ErrNoData is returned when the service answers without a usable profile path.
	ErrNoData = errors.New("unable to get elevation information")
	// ErrShortPath is returned for paths with fewer than two vertices.
	ErrShortPath = errors.New("elevation: path needs at least two points")
)

// ServiceError is an error object reported by the service, or a non-2xx HTTP status.
type ServiceError struct {
	StatusCode int      `json:"-"`
	Code       int      `json:"code"`
	Message    string   `json:"message"`
	Details    []string `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	code := e.Code
	if code == 0 {
		code = e.StatusCode
	}
	msg := fmt.Sprintf("profile service error %d: %s", code, e.Message)
	if len(e.Details) > 0 {
		msg += " (" + strings.Join(e.Details, "; ") + ")"
	}
	return msg
}

// Profile is one computed elevation profile, in the service's meters.
type Profile struct {
	Points           []types.ElevationPoint
	Unit             types.Unit
	SamplingDistance float64
	LengthMeters     float64
	WKID             int
}

// Series converts the profile into chart samples for the display unit.
func (p Profile) Series(unit types.Unit) profile.Series {
	return profile.ConvertFromMeters(p.Points, unit)
}

// Record builds the persisted form of a profile computation. err may be nil.
func (p Profile) Record(id, name string, at time.Time, err error) types.ProfileRecord {
	rec := types.ProfileRecord{
		SchemaVersion:    types.SchemaVersion,
		ID:               id,
		Name:             name,
		TimestampUTC:     at.UTC().Format(time.RFC3339),
		Unit:             p.Unit,
		SamplingDistance: p.SamplingDistance,
		LengthMeters:     p.LengthMeters,
		SpatialRef:       p.WKID,
		Points:           p.Points,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	return rec
}

// Result is what Go delivers: exactly one of Profile or Err is meaningful.
type Result struct {
	Profile Profile
	Err     error
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption { return func(c *Client) { c.http = hc } }

// WithTimeout bounds each request, including reading the body.
func WithTimeout(d time.Duration) ClientOption { return func(c *Client) { c.timeout = d } }

// WithMetrics records every call on m.
func WithMetrics(m *Metrics) ClientOption { return func(c *Client) { c.metrics = m } }

// WithToken appends a token parameter to every request.
func WithToken(token string) ClientOption { return func(c *Client) { c.token = token } }

// Client talks to the Profile task of an elevationSync service.
type Client struct {
	profileURL string
	token      string
	http       *http.Client
	timeout    time.Duration
	metrics    *Metrics
}

// NewClient returns a client for the Profile task at profileURL (".../GPServer/Profile").
func NewClient(profileURL string, opts ...ClientOption) *Client {
	c := &Client{
		profileURL: strings.TrimRight(profileURL, "/"),
		http:       http.DefaultClient,
		timeout:    120 * time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NewClientFromServices resolves the Profile task from the helper services config.
func NewClientFromServices(s Services, opts ...ClientOption) (*Client, error) {
	u, err := s.ProfileURL()
	if err != nil {
		return nil, err
	}
	if s.Token != "" {
		opts = append([]ClientOption{WithToken(s.Token)}, opts...)
	}
	return NewClient(u, opts...), nil
}

// Compute asks the service for the elevation profile of path, sampled in unit.
func (c *Client) Compute(ctx context.Context, path Path, unit types.Unit) (Profile, error) {
	if len(path.Line) < 2 {
		return Profile{}, ErrShortPath
	}
	start := time.Now()
	prof := Profile{
		Unit:             unit,
		SamplingDistance: SamplingDistance(path, unit),
		LengthMeters:     path.LengthMeters(),
		WKID:             path.SpatialRef(),
	}
	form, err := c.form(path, unit, prof.SamplingDistance)
	if err != nil {
		return prof, err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.profileURL+"/execute", strings.NewReader(form.Encode()))
	if err != nil {
		return prof, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	log.Debugf("execute %s sampling=%.4f %s points=%d", c.profileURL, prof.SamplingDistance, unit, len(path.Line))
	resp, err := c.http.Do(req)
	if err != nil {
		outcome := OutcomeTransportError
		if ctx.Err() != nil {
			outcome = OutcomeCanceled
		}
		c.metrics.observe(outcome, start, 0)
		return prof, fmt.Errorf("profile request: %w", err)
	}
	defer resp.Body.Close()

	points, err := decodeExecute(resp)
	if err != nil {
		var se *ServiceError
		switch {
		case errors.As(err, &se):
			c.metrics.observe(OutcomeServiceError, start, 0)
		case errors.Is(err, ErrNoData):
			c.metrics.observe(OutcomeNoData, start, 0)
		default:
			c.metrics.observe(OutcomeTransportError, start, 0)
		}
		log.Warnf("profile failed after %s: %v", time.Since(start).Truncate(time.Millisecond), err)
		return prof, err
	}
	prof.Points = points
	c.metrics.observe(OutcomeOK, start, len(points))
	log.Debugf("profile ok: %d samples in %s", len(points), time.Since(start).Truncate(time.Millisecond))
	return prof, nil
}

// Go runs Compute in the background. The channel yields exactly one Result and is then closed.
func (c *Client) Go(ctx context.Context, path Path, unit types.Unit) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		p, err := c.Compute(ctx, path, unit)
		ch <- Result{Profile: p, Err: err}
	}()
	return ch
}

type featureSet struct {
	GeometryType     string         `json:"geometryType"`
	SpatialReference spatialRef     `json:"spatialReference"`
	Fields           []field        `json:"fields"`
	Features         []inputFeature `json:"features"`
}

type spatialRef struct {
	WKID int `json:"wkid"`
}

type field struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Alias string `json:"alias"`
}

type inputFeature struct {
	Geometry   polyline       `json:"geometry"`
	Attributes map[string]int `json:"attributes"`
}

type polyline struct {
	Paths            [][][2]float64 `json:"paths"`
	SpatialReference spatialRef     `json:"spatialReference"`
}

func (c *Client) form(path Path, unit types.Unit, sampling float64) (url.Values, error) {
	sr := spatialRef{WKID: path.SpatialRef()}
	verts := make([][2]float64, len(path.Line))
	for i, p := range path.Line {
		verts[i] = [2]float64{p[0], p[1]}
	}
	fs := featureSet{
		GeometryType:     "esriGeometryPolyline",
		SpatialReference: sr,
		Fields:           []field{{Name: "OID", Type: "esriFieldTypeObjectID", Alias: "OID"}},
		Features: []inputFeature{{
			Geometry:   polyline{Paths: [][][2]float64{verts}, SpatialReference: sr},
			Attributes: map[string]int{"OID": 1},
		}},
	}
	b, err := json.Marshal(fs)
	if err != nil {
		return nil, fmt.Errorf("encode input features: %w", err)
	}
	v := url.Values{}
	v.Set("InputLineFeatures", string(b))
	v.Set("ProfileIDField", "OID")
	v.Set("DEMResolution", "FINEST")
	v.Set("MaximumSampleDistance", strconv.FormatFloat(sampling, 'f', -1, 64))
	v.Set("MaximumSampleDistanceUnits", string(unit))
	v.Set("returnZ", "true")
	v.Set("returnM", "true")
	v.Set("env:outSR", strconv.Itoa(sr.WKID))
	v.Set("f", "json")
	if c.token != "" {
		v.Set("token", c.token)
	}
	return v, nil
}

type executeResponse struct {
	Results []struct {
		ParamName string `json:"paramName"`
		Value     struct {
			Features []struct {
				Geometry struct {
					Paths [][][]float64 `json:"paths"`
				} `json:"geometry"`
			} `json:"features"`
		} `json:"value"`
	} `json:"results"`
	Error *ServiceError `json:"error,omitempty"`
}

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 32 << 20

func decodeExecute(resp *http.Response) ([]types.ElevationPoint, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read profile response: %w", err)
	}
	var out executeResponse
	jerr := json.Unmarshal(body, &out)
	if resp.StatusCode/100 != 2 {
		if jerr == nil && out.Error != nil {
			out.Error.StatusCode = resp.StatusCode
			return nil, out.Error
		}
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	if jerr != nil {
		return nil, fmt.Errorf("decode profile response: %w", jerr)
	}
	if out.Error != nil {
		out.Error.StatusCode = resp.StatusCode
		return nil, out.Error
	}
	if len(out.Results) == 0 || len(out.Results[0].Value.Features) == 0 || len(out.Results[0].Value.Features[0].Geometry.Paths) == 0 {
		return nil, ErrNoData
	}
	raw := out.Results[0].Value.Features[0].Geometry.Paths[0]
	if len(raw) == 0 {
		return nil, ErrNoData
	}
	points := make([]types.ElevationPoint, len(raw))
	for i, t := range raw {
		if len(t) < 4 {
			return nil, fmt.Errorf("%w: vertex %d has %d values, want x,y,z,m", ErrNoData, i, len(t))
		}
		points[i] = types.ElevationPoint{X: t[0], Y: t[1], Z: t[2], M: t[3]}
	}
	return points, nil
}
