// Package jobfeed is the HTTP client for the external job-search API.
package jobfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

const maxBodyBytes = 16 << 20

type Config struct {
	BaseURL        string
	Path           string
	Host           string
	APIKey         string
	TitleFilter    string
	LocationFilter string
	Timeout        time.Duration
}

// Client implements ports.JobFeed against the RapidAPI endpoint.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: timeout}, log: log}
}

// listing mirrors the fields the API returns that we care about.
type listing struct {
	Title                  text      `json:"title"`
	LinkedinOrgDescription text      `json:"linkedin_org_description"`
	LinkedinOrgSpecialties textList  `json:"linkedin_org_specialties"`
	SalaryRaw              salaryRaw `json:"salary_raw"`
	Seniority              text      `json:"seniority"`
	LocationsDerived       textList  `json:"locations_derived"`
	EmploymentType         textList  `json:"employment_type"`
	Organization           text      `json:"organization"`
	OrganizationLogo       text      `json:"organization_logo"`
	URL                    text      `json:"url"`
}

func (l listing) toPort() ports.ExternalListing {
	return ports.ExternalListing{
		Title:            string(l.Title),
		OrgDescription:   string(l.LinkedinOrgDescription),
		OrgSpecialties:   []string(l.LinkedinOrgSpecialties),
		SalaryMinValue:   float64(l.SalaryRaw.MinValue),
		Seniority:        string(l.Seniority),
		LocationsDerived: []string(l.LocationsDerived),
		EmploymentType:   []string(l.EmploymentType),
		Organization:     string(l.Organization),
		OrganizationLogo: string(l.OrganizationLogo),
		URL:              string(l.URL),
	}
}

// requestURL quotes the filters the way the API expects phrase matches.
func (c *Client) requestURL() (string, error) {
	u, err := url.Parse(strings.TrimRight(c.cfg.BaseURL, "/") + c.cfg.Path)
	if err != nil {
		return "", fmt.Errorf("parse feed url: %w", err)
	}
	q := u.Query()
	if c.cfg.TitleFilter != "" {
		q.Set("title_filter", `"`+c.cfg.TitleFilter+`"`)
	}
	if c.cfg.LocationFilter != "" {
		q.Set("location_filter", `"`+c.cfg.LocationFilter+`"`)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchListings performs one GET. Transport failures and non-2xx answers
// are reported as ErrUpstream; a body that is not a JSON array as
// ErrInvalidFeed.
func (c *Client) FetchListings(ctx context.Context) ([]ports.ExternalListing, error) {
	target, err := c.requestURL()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.cfg.APIKey)
	req.Header.Set("x-rapidapi-host", c.cfg.Host)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	c.log.Debug().Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("job feed responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrUpstream, err)
	}
	return c.decodeListings(body)
}

// decodeListings requires a top-level array. Elements that are not objects
// are skipped; inside an object a field of an unexpected type falls back to
// its zero value instead of dropping the listing.
func (c *Client) decodeListings(body []byte) ([]ports.ExternalListing, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFeed, err)
	}
	if elems == nil {
		// a literal null
		return nil, domain.ErrInvalidFeed
	}

	out := make([]ports.ExternalListing, 0, len(elems))
	for i, e := range elems {
		if !isObject(e) {
			c.log.Warn().Int("index", i).Msg("skipping feed element that is not an object")
			continue
		}
		var l listing
		if err := json.Unmarshal(e, &l); err != nil {
			c.log.Warn().Err(err).Int("index", i).Msg("skipping malformed feed listing")
			continue
		}
		out = append(out, l.toPort())
	}
	return out, nil
}
