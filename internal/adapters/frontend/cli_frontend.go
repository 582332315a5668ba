package frontend

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/mikey/scam-triage/internal/core"
	"github.com/mikey/scam-triage/internal/ports"
)

// cliConversationID keys the last-analysis cache for the single
// interactive session
const cliConversationID = "cli"

// CLIFrontend implements an interactive command-line interface for message
// analysis
type CLIFrontend struct {
	service *core.AnalyzerService
	cache   ports.AnalysisCache
	store   ports.ReportStore
	logger  *zap.Logger
	verbose bool
}

// NewCLIFrontend creates a new CLI front end
func NewCLIFrontend(
	service *core.AnalyzerService,
	cache ports.AnalysisCache,
	store ports.ReportStore,
	logger *zap.Logger,
	verbose bool,
) *CLIFrontend {
	return &CLIFrontend{
		service: service,
		cache:   cache,
		store:   store,
		logger:  logger,
		verbose: verbose,
	}
}

// Run reads messages from stdin until EOF, analyzing each one. The
// /report command records the previous analysis.
func (f *CLIFrontend) Run(ctx context.Context) error {
	fmt.Println("Paste a suspicious message and press Enter to analyze it.")
	fmt.Println("Type /report to record the last analysis, /quit to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			fmt.Println("Please send a non-empty message to analyze.")
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/report":
			f.report(ctx)
		default:
			f.analyze(ctx, line)
		}
	}
	return scanner.Err()
}

// analyze runs one message through the pipeline and prints the verdict
func (f *CLIFrontend) analyze(ctx context.Context, text string) {
	record := f.service.Analyze(ctx, text)
	f.cache.Set(ctx, cliConversationID, record)

	fmt.Println()
	fmt.Print(RenderReply(record))
	if f.verbose {
		fmt.Println("\nPer-URL heuristics:")
		for _, info := range record.URLInfos {
			fmt.Printf("- %s -> %s (domain=%s, link_score=%.2f, shortener=%t)\n",
				info.OriginalURL, info.ExpandedURL, info.Domain, info.LinkScore, info.IsShortener)
		}
	}
	fmt.Println("\nTo record this message for community tracking, type /report")
}

// report persists the last analysis of the session
func (f *CLIFrontend) report(ctx context.Context) {
	record, ok := f.cache.Get(ctx, cliConversationID)
	if !ok {
		fmt.Println("No recent message analyzed to report. Send the suspicious message first.")
		return
	}
	if err := f.store.Save(ctx, record.ToReport()); err != nil {
		f.logger.Error("Failed to save report", zap.Error(err))
		fmt.Println("Failed to record the report.")
		return
	}
	fmt.Println("Thanks, the suspicious message has been recorded anonymously.")
}

// Start is a no-op for the CLI front end; Run drives it
func (f *CLIFrontend) Start() error {
	return nil
}

// Stop is a no-op for the CLI front end
func (f *CLIFrontend) Stop() error {
	return nil
}
