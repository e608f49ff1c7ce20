package services

import (
	"net/url"
	"strings"

	"github.com/ArtemKriachko/voidlink/internal/errs"
)

var blockedHosts = map[string]bool{
	"127.0.0.1": true,
	"localhost": true,
	"0.0.0.0":   true,
}

// ValidateTargetURL checks a raw target URL and returns its normalized
// form. Bare domains are upgraded to https://. Only http and https pass,
// and loopback/unspecified hosts are rejected as a self-redirect guard.
// This is a syntactic check only; no DNS resolution happens here.
func ValidateTargetURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errs.NewValidation("empty URL")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", errs.NewValidation("cannot parse URL")
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errs.NewValidation("invalid URL scheme")
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return "", errs.NewValidation("missing host")
	}
	if blockedHosts[host] {
		return "", errs.NewValidation("URL points to local network")
	}

	return parsed.String(), nil
}
