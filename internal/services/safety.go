package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ArtemKriachko/voidlink/internal/errs"
)

const safetyCheckTimeout = 3 * time.Second

type SafetyVerdict struct {
	Malicious  bool `json:"malicious"`
	Suspicious bool `json:"suspicious"`
}

// SafetyService asks an external reputation endpoint for a verdict on a
// target URL before a key is minted. The lookup is advisory by default: a
// transport failure degrades to a logged warning instead of blocking the
// shorten request. In strict mode the failure surfaces as
// errs.ErrUpstreamUnavailable.
type SafetyService struct {
	endpoint string
	strict   bool
	client   *http.Client
	logger   *slog.Logger
}

func NewSafetyService(endpoint string, strict bool, logger *slog.Logger) *SafetyService {
	return &SafetyService{
		endpoint: endpoint,
		strict:   strict,
		client:   &http.Client{Timeout: safetyCheckTimeout},
		logger:   logger,
	}
}

// Enabled reports whether a reputation endpoint is configured.
func (s *SafetyService) Enabled() bool {
	return s.endpoint != ""
}

// Check fetches the verdict for target. The context bounds the call in
// addition to the client timeout.
func (s *SafetyService) Check(ctx context.Context, target string) (*SafetyVerdict, error) {
	reqURL := s.endpoint + "?url=" + url.QueryEscape(target)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUpstreamUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: verdict endpoint returned %d", errs.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var verdict SafetyVerdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUpstreamUnavailable, err)
	}

	return &verdict, nil
}

// Screen applies the configured policy: a malicious verdict always rejects;
// a lookup failure rejects only in strict mode.
func (s *SafetyService) Screen(ctx context.Context, target string) error {
	if !s.Enabled() {
		return nil
	}

	verdict, err := s.Check(ctx, target)
	if err != nil {
		if s.strict {
			return err
		}
		s.logger.Warn("URL safety check unavailable, proceeding", "error", err)
		return nil
	}

	if verdict.Malicious {
		return errs.NewValidation("target URL flagged as malicious")
	}
	if verdict.Suspicious {
		s.logger.Warn("shortening suspicious URL", "url", target)
	}
	return nil
}
