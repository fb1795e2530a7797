package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/adapters/bedrock"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/adapters/gemini"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/adapters/live"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/adapters/openai"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/config"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/engine"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/scenarios"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/utils"
)

// AnalyzerFactory creates analyzers based on configuration
type AnalyzerFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewAnalyzerFactory creates a new analyzer factory
func NewAnalyzerFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *AnalyzerFactory {
	return &AnalyzerFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateAnalyzer creates an analyzer based on the configured agent mode
func (f *AnalyzerFactory) CreateAnalyzer() (core.Analyzer, error) {
	agentCfg := f.cfg.GetAgent()

	switch agentCfg.Mode {
	case "simulated":
		return f.createSimulatedAnalyzer()
	case "live":
		return f.createLiveAnalyzer()
	default:
		return nil, fmt.Errorf("unsupported agent mode: %s", agentCfg.Mode)
	}
}

func (f *AnalyzerFactory) createSimulatedAnalyzer() (core.Analyzer, error) {
	var library *scenarios.Library
	var err error

	if path := f.cfg.GetString("scenarios.path"); path != "" {
		library, err = scenarios.LoadFile(path)
	} else {
		library, err = scenarios.LoadEmbedded()
	}
	if err != nil {
		return nil, err
	}

	simCfg, err := f.cfg.GetSimulate()
	if err != nil {
		return nil, fmt.Errorf("invalid simulate configuration: %w", err)
	}

	var opts []engine.Option
	if simCfg.MaxDelay > 0 {
		opts = append(opts, engine.WithLatency(simCfg.MinDelay, simCfg.MaxDelay))
	}

	return engine.New(library, f.logger, opts...)
}

func (f *AnalyzerFactory) createLiveAnalyzer() (core.Analyzer, error) {
	liveCfg, err := f.cfg.GetLive()
	if err != nil {
		return nil, fmt.Errorf("invalid live configuration: %w", err)
	}

	switch liveCfg.Provider {
	case "lyzr":
		return live.NewClient(liveCfg.Endpoint, liveCfg.APIKey, liveCfg.Timeout, f.logger), nil
	case "openai":
		factory := openai.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateAnalyzer()
	case "gemini":
		factory := gemini.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateClient()
	case "bedrock":
		factory := bedrock.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateClient()
	default:
		return nil, fmt.Errorf("unsupported live provider: %s", liveCfg.Provider)
	}
}
