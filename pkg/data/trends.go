package data

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vubinh304/btc-dca-advisor/internal/monitoring"
	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

const (
	trendsDefaultBase = "https://trends.google.com/trends/api"

	trendsCacheTTL = 30 * time.Minute

	// Ratio thresholds classifying recent interest vs the prior
	// baseline.
	trendSpikeRatio = 1.3
	trendCoolRatio  = 0.7

	// Recent window is the last recentSamples of the timeline; the
	// rest forms the prior baseline.
	recentSamples = 3
)

// GoogleTrendsProvider implements TrendsProvider against the
// unofficial Google Trends widget API.
type GoogleTrendsProvider struct {
	baseURL string
	client  *http.Client
	cache   Cache
}

// NewGoogleTrendsProvider creates a Google-Trends-backed provider. An
// empty baseURL selects the public endpoint.
func NewGoogleTrendsProvider(baseURL string, cache Cache) *GoogleTrendsProvider {
	if baseURL == "" {
		baseURL = trendsDefaultBase
	}
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &GoogleTrendsProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		cache:   cache,
	}
}

// fetchWidgetJSON performs a cached GET against a trends endpoint and
// strips the anti-JSON-hijacking prefix before decoding.
func (p *GoogleTrendsProvider) fetchWidgetJSON(ctx context.Context, reqURL string, out any) error {
	if body, ok := p.cache.Get(reqURL); ok {
		monitoring.RecordCacheHit("trends")
		return json.Unmarshal(body, out)
	}
	monitoring.RecordCacheMiss("trends")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		monitoring.RecordProviderRequest("trends", "error")
		return fmt.Errorf("fetch trends: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		monitoring.RecordProviderRequest("trends", "error")
		return fmt.Errorf("trends returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		monitoring.RecordProviderRequest("trends", "error")
		return fmt.Errorf("read response: %w", err)
	}
	monitoring.RecordProviderRequest("trends", "ok")

	// Responses open with a ")]}'," guard line before the JSON body.
	if idx := bytes.IndexByte(body, '{'); idx > 0 {
		body = body[idx:]
	}

	p.cache.Set(reqURL, body, trendsCacheTTL)
	return json.Unmarshal(body, out)
}

type trendsExplorePayload struct {
	Widgets []struct {
		ID      string          `json:"id"`
		Token   string          `json:"token"`
		Request json.RawMessage `json:"request"`
	} `json:"widgets"`
}

type trendsTimelinePayload struct {
	Default struct {
		TimelineData []struct {
			FormattedTime string `json:"formattedTime"`
			Time          string `json:"time"`
			Value         []int  `json:"value"`
		} `json:"timelineData"`
	} `json:"default"`
}

// SearchInterest fetches the interest-over-time timeline for keyword
// across the last windowDays days and classifies the recent samples
// against the prior baseline.
func (p *GoogleTrendsProvider) SearchInterest(ctx context.Context, keyword string, windowDays int) (types.SearchInterest, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -windowDays)

	exploreReq := fmt.Sprintf(`{"comparisonItem":[{"keyword":%q,"geo":"","time":"%s %s"}],"category":0,"property":""}`,
		keyword, start.Format(types.DateKeyFormat), end.Format(types.DateKeyFormat))
	exploreURL := fmt.Sprintf("%s/explore?hl=en-US&tz=0&req=%s", p.baseURL, url.QueryEscape(exploreReq))

	var explore trendsExplorePayload
	if err := p.fetchWidgetJSON(ctx, exploreURL, &explore); err != nil {
		return types.SearchInterest{}, err
	}

	var token string
	var widgetReq json.RawMessage
	for _, w := range explore.Widgets {
		if w.ID == "TIMESERIES" {
			token = w.Token
			widgetReq = w.Request
			break
		}
	}
	if token == "" {
		return types.SearchInterest{}, fmt.Errorf("trends explore response carried no timeseries widget")
	}

	timelineURL := fmt.Sprintf("%s/widgetdata/multiline?hl=en-US&tz=0&token=%s&req=%s",
		p.baseURL, url.QueryEscape(token), url.QueryEscape(string(widgetReq)))

	var timeline trendsTimelinePayload
	if err := p.fetchWidgetJSON(ctx, timelineURL, &timeline); err != nil {
		return types.SearchInterest{}, err
	}

	points := make([]types.SearchPoint, 0, len(timeline.Default.TimelineData))
	for _, d := range timeline.Default.TimelineData {
		if len(d.Value) == 0 {
			continue
		}
		points = append(points, types.SearchPoint{
			Date:  d.FormattedTime,
			Value: float64(d.Value[0]),
		})
	}
	if len(points) == 0 {
		return types.SearchInterest{}, fmt.Errorf("trends timeline for %q was empty", keyword)
	}

	return SummarizeSearchInterest(keyword, points), nil
}

// SummarizeSearchInterest classifies a timeline: the average of the
// last recentSamples points is compared against the average of the
// earlier points, spiking above trendSpikeRatio and cooling below
// trendCoolRatio.
func SummarizeSearchInterest(keyword string, timeline []types.SearchPoint) types.SearchInterest {
	split := len(timeline) - recentSamples
	if split < 0 {
		split = 0
	}

	recentAvg := averageSearchValues(timeline[split:])
	priorAvg := averageSearchValues(timeline[:split])

	trend := types.SearchTrendFlat
	if priorAvg > 0 {
		ratio := recentAvg / priorAvg
		if ratio >= trendSpikeRatio {
			trend = types.SearchTrendSpiking
		} else if ratio <= trendCoolRatio {
			trend = types.SearchTrendCooling
		}
	}

	return types.SearchInterest{
		Keyword:       keyword,
		RecentAverage: recentAvg,
		PriorAverage:  priorAvg,
		Trend:         trend,
		Timeline:      timeline,
	}
}

func averageSearchValues(points []types.SearchPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0.0
	for _, pt := range points {
		sum += pt.Value
	}
	return sum / float64(len(points))
}
