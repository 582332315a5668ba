package frontend

import (
	"fmt"
	"strings"

	"github.com/mikey/scam-triage/internal/core"
)

// maxReplyReasons caps how many reasons appear in a rendered reply
const maxReplyReasons = 4

// VerdictIcon returns the icon shown next to a verdict
func VerdictIcon(v core.Verdict) string {
	switch v {
	case core.VerdictScam:
		return "🚨"
	case core.VerdictSuspicious:
		return "⚠️"
	default:
		return "✅"
	}
}

// Advice returns the fixed guidance text for a verdict tier
func Advice(v core.Verdict) string {
	switch v {
	case core.VerdictScam:
		return "Do NOT click links or share OTP/BVN. Contact your bank via official channels."
	case core.VerdictSuspicious:
		return "Proceed with caution. Verify the sender via official channels before taking action."
	default:
		return "Looks okay but stay cautious. Never share OTPs or BVN."
	}
}

// RenderReply formats an analysis record as a user-facing reply
func RenderReply(record *core.AnalysisRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s Verdict: %s\n", VerdictIcon(record.Verdict), record.Verdict)
	fmt.Fprintf(&b, "Score: %.0f%%\n", record.FinalScore*100)

	if len(record.Reasons) > 0 {
		b.WriteString("Reasons:\n")
		reasons := record.Reasons
		if len(reasons) > maxReplyReasons {
			reasons = reasons[:maxReplyReasons]
		}
		for _, r := range reasons {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	b.WriteString("\nAdvice:\n")
	b.WriteString(Advice(record.Verdict))
	b.WriteString("\n")

	return b.String()
}
