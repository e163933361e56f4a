package analytics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	matomoTrackerFile = "matomo.php"
	matomoTimeout     = 5 * time.Second
)

type Config struct {
	Host   string
	SiteID int
}

func (c Config) Enabled() bool {
	return c.Host != "" && c.SiteID > 0
}

// NewVisitorID returns a Matomo visitor id: 16 hexadecimal characters.
func NewVisitorID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// NewSink returns a Matomo sink when the tracker is configured and a Noop otherwise.
func NewSink(cfg Config, visitorID string, sugar *zap.SugaredLogger) Sink {
	if !cfg.Enabled() {
		sugar.Infof("Matomo tracking not configured, analytics disabled")
		return Noop{}
	}
	return NewMatomoSink(cfg, visitorID, &http.Client{Timeout: matomoTimeout}, sugar)
}

// MatomoSink sends each event to the Matomo HTTP tracking API from its own goroutine.
type MatomoSink struct {
	endpoint  string
	siteID    int
	visitorID string
	client    *http.Client
	sugar     *zap.SugaredLogger
	waitGroup sync.WaitGroup
}

func NewMatomoSink(cfg Config, visitorID string, client *http.Client, sugar *zap.SugaredLogger) *MatomoSink {
	host := strings.TrimRight(cfg.Host, "/")
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return &MatomoSink{
		endpoint:  fmt.Sprintf("%s/%s", host, matomoTrackerFile),
		siteID:    cfg.SiteID,
		visitorID: visitorID,
		client:    client,
		sugar:     sugar,
	}
}

func (s *MatomoSink) TrackEvent(event Event) {
	params := s.baseParams()
	params.Set("e_c", event.Category)
	params.Set("e_a", event.Action)
	if event.Name.Valid {
		params.Set("e_n", event.Name.String)
		if event.Value.Valid {
			params.Set("e_v", strconv.FormatFloat(event.Value.Float64, 'f', -1, 64))
		}
	}
	s.send(params)
}

func (s *MatomoSink) TrackSearch(search Search) {
	params := s.baseParams()
	params.Set("search", search.Keyword)
	params.Set("search_cat", search.Category)
	params.Set("search_count", strconv.Itoa(search.ResultsCount))
	s.send(params)
}

// Close waits for in-flight sends or until ctx is done.
func (s *MatomoSink) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.waitGroup.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *MatomoSink) baseParams() url.Values {
	params := url.Values{}
	params.Set("idsite", strconv.Itoa(s.siteID))
	params.Set("rec", "1")
	params.Set("apiv", "1")
	params.Set("rand", uuid.NewString())
	if s.visitorID != "" {
		params.Set("_id", s.visitorID)
	}
	return params
}

func (s *MatomoSink) send(params url.Values) {
	s.waitGroup.Add(1)
	go func() {
		defer s.waitGroup.Done()
		defer func() {
			if r := recover(); r != nil {
				s.sugar.Debugf("Matomo tracking panicked: %v", r)
			}
		}()
		target := s.endpoint + "?" + params.Encode()
		resp, err := s.client.Get(target)
		if err != nil {
			s.sugar.Debugf("Matomo tracking failed: %s", err)
			return
		}
		_ = resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			s.sugar.Debugf("Matomo tracking returned status %d", resp.StatusCode)
		}
	}()
}
