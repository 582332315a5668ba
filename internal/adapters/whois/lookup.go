// Package whois provides the optional domain-registration lookup
// capability. RDAP is tried first, with classic port-43 WHOIS as the
// fallback. Every failure degrades to an unsuccessful WhoisInfo.
package whois

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mikey/scam-triage/internal/core"
	"go.uber.org/zap"
)

var creationDateRe = regexp.MustCompile(`(?im)^\s*(?:creation date|created(?: date)?|registered(?: on)?)\s*\.*:\s*(.+)$`)

// rdapEndpoints maps TLDs to registry RDAP bases. Unlisted TLDs go through
// the port-43 fallback.
var rdapEndpoints = map[string]string{
	"com":    "https://rdap.verisign.com/com/v1/",
	"net":    "https://rdap.verisign.com/net/v1/",
	"org":    "https://rdap.publicinterestregistry.net/rdap/",
	"io":     "https://rdap.nic.io/",
	"co":     "https://rdap.nic.co/",
	"me":     "https://rdap.nic.me/",
	"xyz":    "https://rdap.centralnic.com/xyz/",
	"top":    "https://rdap.nic.top/",
	"club":   "https://rdap.centralnic.com/club/",
	"online": "https://rdap.centralnic.com/online/",
	"site":   "https://rdap.centralnic.com/site/",
	"info":   "https://rdap.afilias.net/rdap/info/",
	"biz":    "https://rdap.nic.biz/",
	"ru":     "https://rdap.tcinet.ru/",
}

// whoisServers maps TLDs to their WHOIS hosts for the fallback path
var whoisServers = map[string]string{
	"com": "whois.verisign-grs.com", "net": "whois.verisign-grs.com",
	"org": "whois.pir.org", "io": "whois.nic.io",
	"co": "whois.nic.co", "me": "whois.nic.me",
	"xyz": "whois.nic.xyz", "top": "whois.nic.top",
	"club": "whois.nic.club", "online": "whois.nic.online",
	"site": "whois.nic.site", "info": "whois.afilias.net",
	"biz": "whois.nic.biz", "ru": "whois.tcinet.ru",
	"tk": "whois.dot.tk",
}

// Lookup fetches registration metadata for domains via RDAP/WHOIS
type Lookup struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
}

// NewLookup creates a new registration lookup
func NewLookup(timeout time.Duration, logger *zap.Logger) *Lookup {
	return &Lookup{
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
		logger:     logger,
	}
}

// Lookup fetches registration metadata for the domain. The returned info
// has Success=false on any failure; the error return is informational and
// callers may ignore it.
func (l *Lookup) Lookup(ctx context.Context, domain string) (*core.WhoisInfo, error) {
	tld := tldOf(domain)
	if domain == "" || tld == "" {
		return &core.WhoisInfo{Success: false}, nil
	}

	if created, err := l.rdapLookup(ctx, domain, tld); err == nil {
		return &core.WhoisInfo{Success: true, CreationDate: created}, nil
	} else {
		l.logger.Debug("RDAP lookup failed, falling back to WHOIS",
			zap.String("domain", domain), zap.Error(err))
	}

	created, err := l.whoisLookup(ctx, domain, tld)
	if err != nil {
		l.logger.Debug("WHOIS lookup failed",
			zap.String("domain", domain), zap.Error(err))
		return &core.WhoisInfo{Success: false}, err
	}
	return &core.WhoisInfo{Success: true, CreationDate: created}, nil
}

// rdapLookup queries the registry RDAP endpoint for the domain's
// registration event date
func (l *Lookup) rdapLookup(ctx context.Context, domain, tld string) (string, error) {
	base, ok := rdapEndpoints[tld]
	if !ok {
		return "", fmt.Errorf("no RDAP endpoint for .%s", tld)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"domain/"+domain, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/rdap+json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("RDAP returned status %d", resp.StatusCode)
	}

	var rdap struct {
		Events []struct {
			EventAction string `json:"eventAction"`
			EventDate   string `json:"eventDate"`
		} `json:"events"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&rdap); err != nil {
		return "", err
	}

	for _, ev := range rdap.Events {
		if ev.EventAction == "registration" {
			return ev.EventDate, nil
		}
	}
	return "", fmt.Errorf("no registration event in RDAP response")
}

// whoisLookup queries the TLD's WHOIS server over port 43
func (l *Lookup) whoisLookup(ctx context.Context, domain, tld string) (string, error) {
	server, ok := whoisServers[tld]
	if !ok {
		return "", fmt.Errorf("no WHOIS server for .%s", tld)
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(server, "43"))
	if err != nil {
		return "", err
	}
	defer conn.Close()

	deadline := time.Now().Add(l.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetDeadline(deadline)

	if _, err := fmt.Fprintf(conn, "%s\r\n", domain); err != nil {
		return "", err
	}

	raw, err := io.ReadAll(io.LimitReader(conn, 64<<10))
	if err != nil {
		return "", err
	}

	m := creationDateRe.FindSubmatch(raw)
	if m == nil {
		return "", fmt.Errorf("no creation date in WHOIS response")
	}
	return strings.TrimSpace(string(m[1])), nil
}

func tldOf(domain string) string {
	idx := strings.LastIndex(domain, ".")
	if idx < 0 || idx == len(domain)-1 {
		return ""
	}
	return strings.ToLower(domain[idx+1:])
}
