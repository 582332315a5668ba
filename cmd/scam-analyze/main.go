package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mikey/scam-triage/internal/adapters/cache"
	"github.com/mikey/scam-triage/internal/adapters/expander"
	"github.com/mikey/scam-triage/internal/adapters/frontend"
	"github.com/mikey/scam-triage/internal/config"
	"github.com/mikey/scam-triage/internal/di"
	"github.com/mikey/scam-triage/internal/factory"
	"github.com/mikey/scam-triage/internal/logging"
	"go.uber.org/zap"
)

var (
	// ML provider flags
	provider    = flag.String("provider", "none", "ML provider (none, openai, gemini, bedrock)")
	maxTokens   = flag.Int("max-tokens", 256, "Maximum tokens for model response")
	temperature = flag.Float64("temperature", 0.1, "Temperature for model generation")
	topP        = flag.Float64("top-p", 0.9, "Top-p for model generation")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-pro", "Gemini model name")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-4", "OpenAI model name")

	// Triage flags
	scamThreshold       = flag.Float64("scam-threshold", 0.7, "Final score at or above which a message is flagged as a scam")
	suspiciousThreshold = flag.Float64("suspicious-threshold", 0.35, "Final score at or above which a message is flagged as suspicious")
	trustedDomains      = flag.String("trusted", "", "Comma-separated list of trusted domains")
	enableWhois         = flag.Bool("whois", false, "Enable domain registration lookups")
	reportsPath         = flag.String("reports", "", "Path to the reports file (the configured default path is used if not specified)")

	// Input flags
	messageText = flag.String("text", "", "Message text to analyze")
	inputFile   = flag.String("file", "", "Input message file (one-shot mode)")
	interactive = flag.Bool("interactive", false, "Start an interactive session instead of a one-shot analysis")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog     = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile  = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	var cfg *config.Config
	var err error

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration from file if specified
	if *configFile != "" {
		cfg, err = config.NewFromFile(*configFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		// Create config from command line flags
		cfg = createConfigFromFlags()
	}

	// Initialize ML classifier capability
	textProcessor := factory.NewTextProcessorFactory(logger).CreateTextProcessor()
	mlFactory := factory.NewMLFactory(cfg, logger, textProcessor)
	classifier, err := mlFactory.CreateClassifier()
	if err != nil {
		logger.Fatal("Failed to create classifier", zap.Error(err))
	}

	// Initialize WHOIS capability
	whoisFactory := factory.NewWhoisFactory(cfg, logger)
	whoisLookup, err := whoisFactory.CreateRegistrationLookup()
	if err != nil {
		logger.Fatal("Failed to create registration lookup", zap.Error(err))
	}

	// Initialize URL expander
	expanderCfg, err := cfg.GetExpander()
	if err != nil {
		logger.Fatal("Failed to load expander configuration", zap.Error(err))
	}
	urlExpander := expander.NewHTTPExpander(expanderCfg.Timeout, logger)

	// Assemble the analyzer pipeline
	service, err := di.NewAnalyzerService(cfg, urlExpander, classifier, whoisLookup, logger)
	if err != nil {
		logger.Fatal("Failed to assemble analyzer", zap.Error(err))
	}

	storeFactory := factory.NewStoreFactory(cfg, logger)
	store, err := storeFactory.CreateReportStore()
	if err != nil {
		logger.Fatal("Failed to create report store", zap.Error(err))
	}

	lastAnalysis := cache.NewMemoryCache(time.Hour, 0, logger)
	defer lastAnalysis.Stop()

	if *interactive {
		cli := frontend.NewCLIFrontend(service, lastAnalysis, store, logger, *verbose)
		if err := cli.Run(context.Background()); err != nil {
			logger.Fatal("Interactive session failed", zap.Error(err))
		}
		closeClassifier(classifier, logger)
		return
	}

	// One-shot mode: read the message from the flag, a file, or stdin
	text := *messageText
	if text == "" {
		var reader io.Reader
		if *inputFile != "" {
			file, err := os.Open(*inputFile)
			if err != nil {
				logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
			}
			defer file.Close()
			reader = file
			logger.Info("Reading message from file", zap.String("file", *inputFile))
		} else {
			reader = os.Stdin
			logger.Info("Reading message from stdin")
		}
		raw, err := io.ReadAll(bufio.NewReader(reader))
		if err != nil {
			logger.Fatal("Failed to read message", zap.Error(err))
		}
		text = strings.TrimSpace(string(raw))
	}

	if text == "" {
		fmt.Println("Nothing to analyze: the message is empty")
		os.Exit(1)
	}

	// Print message summary
	fmt.Printf("\n=== Message Summary ===\n")
	fmt.Printf("Length: %d bytes\n", len(text))
	fmt.Printf("Provider: %s\n", cfg.GetString("ml.provider"))
	fmt.Printf("Scam threshold: %.2f\n", cfg.GetFloat64("scoring.scam_threshold"))
	fmt.Printf("\n")

	startTime := time.Now()
	record := service.Analyze(context.Background(), text)
	duration := time.Since(startTime)

	// Print results
	fmt.Printf("=== Results ===\n")
	fmt.Println(frontend.RenderReply(record))
	if *verbose {
		for _, info := range record.URLInfos {
			fmt.Printf("URL %s -> %s (domain %s, link score %.2f)\n",
				info.OriginalURL, info.ExpandedURL, info.Domain, info.LinkScore)
		}
	}
	fmt.Printf("Processing time: %v\n", duration)

	closeClassifier(classifier, logger)
}

// closeClassifier closes the classifier if it holds resources
func closeClassifier(classifier interface{}, logger *zap.Logger) {
	if closer, ok := classifier.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close classifier", zap.Error(err))
		}
	}
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	// Set ML provider
	v.Set("ml.provider", *provider)

	// Set provider-specific configuration
	switch *provider {
	case "bedrock":
		v.Set("bedrock.region", *bedrockRegion)
		v.Set("bedrock.model_id", *bedrockModelID)
		v.Set("bedrock.max_tokens", *maxTokens)
		v.Set("bedrock.temperature", *temperature)
		v.Set("bedrock.top_p", *topP)
	case "gemini":
		v.Set("gemini.api_key", *geminiAPIKey)
		v.Set("gemini.model_name", *geminiModelName)
		v.Set("gemini.max_tokens", *maxTokens)
		v.Set("gemini.temperature", *temperature)
		v.Set("gemini.top_p", *topP)
	case "openai":
		v.Set("openai.api_key", *openaiAPIKey)
		v.Set("openai.model_name", *openaiModelName)
		v.Set("openai.max_tokens", *maxTokens)
		v.Set("openai.temperature", *temperature)
		v.Set("openai.top_p", *topP)
	}

	// Set verdict thresholds
	v.Set("scoring.scam_threshold", *scamThreshold)
	v.Set("scoring.suspicious_threshold", *suspiciousThreshold)

	// Set trusted domains
	if *trustedDomains != "" {
		domains := strings.Split(*trustedDomains, ",")
		for i, domain := range domains {
			domains[i] = strings.TrimSpace(domain)
		}
		v.Set("heuristics.trusted_domains", domains)
	} else {
		v.Set("heuristics.trusted_domains", []string{})
	}

	// Set WHOIS capability
	v.Set("whois.enabled", *enableWhois)

	// Set report store
	if *reportsPath != "" {
		v.Set("reports.type", "file")
		v.Set("reports.file_path", *reportsPath)
	}

	return config.NewFromViper(v)
}
