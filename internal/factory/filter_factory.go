package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/adapters/filter"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/config"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/ports"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/templates"
)

// FilterFactory creates email filters based on configuration
type FilterFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.TriageService
}

// NewFilterFactory creates a new filter factory
func NewFilterFactory(cfg *config.Config, logger *zap.Logger, service *core.TriageService) *FilterFactory {
	return &FilterFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateEmailFilter creates an email filter based on the configuration
func (f *FilterFactory) CreateEmailFilter() (ports.EmailFilter, error) {
	filterType := f.cfg.GetString("server.filter_type")

	switch filterType {
	case "smtp":
		return filter.NewSmtpFilter(
			f.service,
			f.logger,
			f.cfg.GetString("server.listen_address"),
			f.cfg.GetString("server.headers.intent"),
			f.cfg.GetString("server.headers.routing"),
			f.cfg.GetString("server.headers.urgency"),
			f.cfg.GetString("server.headers.confidence"),
			f.cfg.GetString("server.relay.address"),
			f.cfg.GetInt("server.relay.port"),
			f.cfg.GetBool("server.relay.enabled"),
			f.cfg.GetString("server.subject_prefix"),
			f.cfg.GetBool("server.modify_subject"),
		), nil
	case "cli":
		var kind templates.Kind
		if name := f.cfg.GetString("cli.template"); name != "" {
			parsed, err := templates.ParseKind(name)
			if err != nil {
				return nil, err
			}
			kind = parsed
		}
		return filter.NewCliFilter(
			f.service,
			f.logger,
			f.cfg.GetBool("cli.verbose"),
			kind,
		)
	default:
		return nil, fmt.Errorf("unsupported filter type: %s", filterType)
	}
}
