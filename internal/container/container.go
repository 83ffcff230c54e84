package container

import (
	"io/fs"

	"namecorrector/adapters/excel"
	"namecorrector/adapters/gbif"
	"namecorrector/internal"
	"namecorrector/internal/config"
	"namecorrector/internal/correction"
	"namecorrector/internal/dataset"
	"namecorrector/internal/errors"
	"namecorrector/internal/i18n"
	"namecorrector/internal/session"
	"namecorrector/ports"
	"namecorrector/ui"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger
	Labels *i18n.Labels

	// Adapters
	Matcher ports.NameMatcher
	Reader  *excel.DataReader
	Writer  *excel.DataWriter

	// Services
	Engine    *correction.Engine
	Processor *dataset.Processor
	Sessions  *session.Store
}

// New wires every service from cfg
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.ConfigInvalid("config cannot be nil")
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	labels := i18n.New(cfg.Locale)

	client, err := gbif.NewClient(gbif.Config{
		BaseURL: cfg.GBIF.BaseURL,
		Timeout: cfg.GBIF.Timeout,
		Strict:  cfg.GBIF.Strict,
		Kingdom: cfg.GBIF.Kingdom,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GBIF client")
	}

	return NewWithMatcher(cfg, client, logger, labels), nil
}

// NewWithMatcher wires the services around an existing matcher
func NewWithMatcher(cfg *config.Config, matcher ports.NameMatcher, logger *internal.Logger, labels *i18n.Labels) *Container {
	excelConfig := excel.DefaultExcelConfig()
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Labels:  labels,
		Matcher: matcher,
		Reader:  excel.NewDataReader(excelConfig, logger),
		Writer:  excel.NewDataWriter(excelConfig, logger),
	}
	c.Engine = correction.NewEngine(matcher, labels, logger)
	c.Processor = dataset.NewProcessor(c.Reader, c.Writer, c.Engine, labels, logger)
	c.Sessions = session.NewStore(cfg.Session.TTL, logger)
	return c
}

// UIServer builds the web UI over assets holding ui/templates, ui/static and ui/content
func (c *Container) UIServer(assets fs.FS) (*ui.Server, error) {
	return ui.NewServer(assets, ui.Dependencies{
		Processor:      c.Processor,
		Sessions:       c.Sessions,
		Labels:         c.Labels,
		Logger:         c.Logger,
		MaxUploadBytes: c.Config.Upload.MaxBytes(),
	})
}
