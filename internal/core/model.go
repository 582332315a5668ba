package core

import (
	"time"

	"github.com/google/uuid"
)

// Verdict is the three-tier risk classification for a message
type Verdict string

const (
	VerdictSafe       Verdict = "SAFE"
	VerdictSuspicious Verdict = "SUSPICIOUS"
	VerdictScam       Verdict = "SCAM"
)

// KeywordResult holds the lexical scoring outcome for a message
type KeywordResult struct {
	Score    float64  `json:"score"`
	Keywords []string `json:"keywords"`
	Pidgin   []string `json:"pidgin"`
}

// MLResult holds the output of the optional text-classification capability.
// Available is false whenever the capability is absent or failed at runtime.
type MLResult struct {
	Available bool    `json:"available"`
	Label     string  `json:"label,omitempty"`
	Score     float64 `json:"score,omitempty"`
}

// WhoisInfo holds registration metadata for a domain. Advisory only; it
// never feeds into scoring.
type WhoisInfo struct {
	Success      bool   `json:"success"`
	CreationDate string `json:"creation_date,omitempty"`
}

// DomainHeuristic holds the per-URL suspiciousness signals
type DomainHeuristic struct {
	OriginalURL          string     `json:"original_url"`
	ExpandedURL          string     `json:"expanded_url"`
	Domain               string     `json:"domain"`
	SuspiciousTLD        bool       `json:"suspicious_tld"`
	HasDash              bool       `json:"has_dash"`
	Length               int        `json:"length"`
	SuspiciousSubstrings []string   `json:"suspicious_substrings"`
	IsShortener          bool       `json:"is_shortener"`
	LinkScore            float64    `json:"link_score"`
	Whois                *WhoisInfo `json:"whois,omitempty"`
}

// AnalysisRecord is the immutable result of analyzing one message.
// Ownership transfers entirely to the caller; the pipeline keeps no
// reference after returning it.
type AnalysisRecord struct {
	ID         uuid.UUID         `json:"id"`
	Text       string            `json:"text"`
	Timestamp  time.Time         `json:"timestamp"`
	URLs       []string          `json:"urls"`
	Keyword    KeywordResult     `json:"keyword"`
	ML         MLResult          `json:"ml"`
	URLInfos   []DomainHeuristic `json:"url_infos"`
	FinalScore float64           `json:"final_score"`
	Reasons    []string          `json:"reasons"`
	Verdict    Verdict           `json:"verdict"`
}

// Report is the reduced projection of an AnalysisRecord kept by the
// reporting store.
type Report struct {
	ID         uuid.UUID `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	FinalScore float64   `json:"final_score"`
	Verdict    Verdict   `json:"verdict"`
	Keywords   []string  `json:"keywords"`
	Pidgin     []string  `json:"pidgin"`
	URLCount   int       `json:"url_count"`
	Reasons    []string  `json:"reasons"`
}

// maxReportReasons caps how many reasons are carried into a Report
const maxReportReasons = 5

// ToReport builds the reporting projection of the record
func (r *AnalysisRecord) ToReport() *Report {
	reasons := r.Reasons
	if len(reasons) > maxReportReasons {
		reasons = reasons[:maxReportReasons]
	}
	return &Report{
		ID:         r.ID,
		Timestamp:  r.Timestamp,
		FinalScore: r.FinalScore,
		Verdict:    r.Verdict,
		Keywords:   r.Keyword.Keywords,
		Pidgin:     r.Keyword.Pidgin,
		URLCount:   len(r.URLs),
		Reasons:    reasons,
	}
}
