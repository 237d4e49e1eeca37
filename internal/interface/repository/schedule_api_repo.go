package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"skyline-ingest/internal/domain/entity"
	"skyline-ingest/internal/domain/repository"
	"skyline-ingest/pkg/logger"

	"golang.org/x/oauth2/clientcredentials"
)

// ScheduleAPIConfig configures the timetable lookup client. APIKey/APIHost
// select RapidAPI-style header auth; when OAuthTokenURL is set, an OAuth2
// client-credentials flow is used instead (Lufthansa-style APIs).
type ScheduleAPIConfig struct {
	BaseURL           string
	APIKey            string
	APIHost           string
	OAuthTokenURL     string
	OAuthClientID     string
	OAuthClientSecret string
}

// ScheduleAPIRepository implements ScheduleRepository against a flight
// timetable HTTP API.
type ScheduleAPIRepository struct {
	logger  logger.Logger
	baseURL string
	apiKey  string
	apiHost string
	client  *http.Client
}

// NewScheduleAPIRepository creates a new schedule lookup repository.
func NewScheduleAPIRepository(cfg ScheduleAPIConfig, logger logger.Logger) repository.ScheduleRepository {
	client := &http.Client{Timeout: 30 * time.Second}

	if cfg.OAuthTokenURL != "" {
		oauthCfg := &clientcredentials.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			TokenURL:     cfg.OAuthTokenURL,
		}
		client = oauthCfg.Client(context.Background())
		client.Timeout = 30 * time.Second
	}

	return &ScheduleAPIRepository{
		logger:  logger,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		apiHost: cfg.APIHost,
		client:  client,
	}
}

// legTimes mirrors the provider's per-leg time fields; whichever variant the
// provider fills is used.
type legTimes struct {
	ScheduledTimeLocal string `json:"scheduledTimeLocal"`
	ScheduledTime      string `json:"scheduledTime"`
	ScheduledTimeUTC   string `json:"scheduledTimeUtc"`
	ActualTimeLocal    string `json:"actualTimeLocal"`
	ActualTime         string `json:"actualTime"`
	ActualTimeUTC      string `json:"actualTimeUtc"`
}

type flightLeg struct {
	Departure    legTimes `json:"departure"`
	Arrival      legTimes `json:"arrival"`
	Status       string   `json:"status"`
	FlightStatus string   `json:"flightStatus"`
}

// Lookup queries the timetable service for one flight and date. Any
// transport or decode failure is returned as an error; the caller degrades
// it to "no enrichment".
func (r *ScheduleAPIRepository) Lookup(ctx context.Context, key entity.ScheduleLookupKey) (*entity.ScheduleLookupResult, error) {
	if len(key.DateCompact) != 8 {
		return nil, fmt.Errorf("malformed compact date %q", key.DateCompact)
	}
	number := key.AirlineCode + key.FlightNumber
	date := fmt.Sprintf("%s-%s-%s", key.DateCompact[:4], key.DateCompact[4:6], key.DateCompact[6:])

	lookupURL := fmt.Sprintf("%s/flights/number/%s/%s?withLeg=true",
		r.baseURL, url.PathEscape(number), url.PathEscape(date))

	req, err := http.NewRequestWithContext(ctx, "GET", lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if r.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", r.apiKey)
		req.Header.Set("X-RapidAPI-Host", r.apiHost)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schedule service returned status %d", resp.StatusCode)
	}

	leg, err := decodeFirstLeg(resp.Body)
	if err != nil {
		return nil, err
	}

	result := &entity.ScheduleLookupResult{
		DepartureScheduled: toClockTime(leg.Departure.ScheduledTimeLocal, leg.Departure.ScheduledTime, leg.Departure.ScheduledTimeUTC),
		DepartureActual:    toClockTime(leg.Departure.ActualTimeLocal, leg.Departure.ActualTime, leg.Departure.ActualTimeUTC),
		ArrivalScheduled:   toClockTime(leg.Arrival.ScheduledTimeLocal, leg.Arrival.ScheduledTime, leg.Arrival.ScheduledTimeUTC),
		ArrivalActual:      toClockTime(leg.Arrival.ActualTimeLocal, leg.Arrival.ActualTime, leg.Arrival.ActualTimeUTC),
	}
	if leg.Status != "" {
		result.Status = &leg.Status
	} else if leg.FlightStatus != "" {
		result.Status = &leg.FlightStatus
	}

	r.logger.Info("Schedule lookup completed",
		"flight", number,
		"date", date,
		"hasStatus", result.Status != nil)

	return result, nil
}

// decodeFirstLeg accepts both response shapes the provider is known to use:
// a bare array of legs or an object wrapping a "flights" array.
func decodeFirstLeg(body io.Reader) (*flightLeg, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var legs []flightLeg
	if err := json.Unmarshal(raw, &legs); err == nil && len(legs) > 0 {
		return &legs[0], nil
	}

	var wrapped struct {
		Flights []flightLeg `json:"flights"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Flights) > 0 {
		return &wrapped.Flights[0], nil
	}

	return nil, fmt.Errorf("no flight data in response")
}

// timeLayouts covers the timestamp shapes seen from timetable providers.
var timeLayouts = []string{
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// toClockTime reduces the first parseable candidate timestamp to HH:MM.
func toClockTime(candidates ...string) *string {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, c); err == nil {
				hhmm := t.Format("15:04")
				return &hhmm
			}
		}
	}
	return nil
}
