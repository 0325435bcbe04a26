// Package service runs the menu generation pipeline: load collections,
// partition team events, compose sub-menus, assemble the document and
// write it out.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/lfgmenu/internal/adapters/output"
	"github.com/okian/lfgmenu/internal/adapters/repository"
	"github.com/okian/lfgmenu/internal/adapters/templates"
	"github.com/okian/lfgmenu/internal/config"
	"github.com/okian/lfgmenu/internal/domain/menu"
	"github.com/okian/lfgmenu/internal/domain/model"
	"github.com/okian/lfgmenu/internal/domain/partition"
	"github.com/okian/lfgmenu/internal/domain/types"
	"github.com/okian/lfgmenu/pkg/logger"
	"github.com/okian/lfgmenu/pkg/metrics"
)

// Service wires the gateway adapters to the menu composer.
type Service struct {
	store    repository.Store
	renderer menu.Renderer
	writer   output.Writer

	// Configuration
	threshold          int
	scheme             types.TipScheme
	topLevelTemplate   string
	teamTemplate       string
	leagueTemplate     string
	tipSectionTemplate string
	foldNames          bool

	// Logging
	logger logger.Logger
	now    func() time.Time
}

// Result summarizes a completed run.
type Result struct {
	RunID        string
	LowEvents    int
	HighEvents   int
	LeagueEvents int
	Document     string
}

// New constructs a Service with default configuration. A store, renderer
// and writer must be provided before Run.
func New(opts ...Option) *Service {
	s := &Service{
		threshold:          partition.DefaultThreshold,
		scheme:             types.SchemeFlat,
		topLevelTemplate:   menu.DefaultTopLevelTemplate,
		teamTemplate:       menu.DefaultTeamTemplate,
		leagueTemplate:     menu.DefaultLeagueTemplate,
		tipSectionTemplate: menu.DefaultTipSectionTemplate,
		now:                time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// NewFromConfig builds a Service from cfg: a FileStore for the input
// collections, the template set and a FileWriter for the output path.
// Later options win over the configured components.
func NewFromConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Service, error) {
	scheme, err := cfg.Scheme()
	if err != nil {
		return nil, err
	}

	set, err := templates.Load(cfg.TemplateDir, cfg.Templates(scheme)...)
	if err != nil {
		metrics.RecordRunFailure(StageTemplates)
		return nil, &StageError{Stage: StageTemplates, Err: err}
	}
	l := logger.Get()
	l.Debug(ctx, "loaded template set", logger.Any("templates", set.Names()), logger.String("dir", cfg.TemplateDir))

	base := []Option{
		WithStore(repository.NewFileStore(
			repository.WithTeamEventsPath(cfg.TeamEventsPath),
			repository.WithLeagueEventsPath(cfg.LeagueEventsPath),
			repository.WithTipScheme(scheme),
		)),
		WithRenderer(set),
		WithWriter(output.NewFileWriter(cfg.OutputPath)),
		WithThreshold(cfg.PartitionThreshold),
		WithTipScheme(scheme),
		WithTemplates(cfg.TopLevelTemplate, cfg.TeamTemplate, cfg.LeagueTemplate, cfg.TipSectionTemplate),
		WithCaseFoldedNames(cfg.DedupeCaseFold),
	}
	return New(append(base, opts...)...), nil
}

// Render runs every stage except the final write and returns the document.
func (s *Service) Render(ctx context.Context) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	log := s.logger.With(logger.String("run_id", res.RunID))
	if s.store == nil || s.renderer == nil {
		return res, fmt.Errorf("%w: store and renderer are required", ErrNotConfigured)
	}

	var teamEvents, leagueEvents []model.GroupEvent
	err := s.stage(ctx, log, StageLoad, func() error {
		var err error
		if teamEvents, err = s.store.TeamEvents(ctx); err != nil {
			return err
		}
		leagueEvents, err = s.store.LeagueEvents(ctx)
		return err
	})
	if err != nil {
		return res, err
	}

	var low, high []model.TeamEvent
	err = s.stage(ctx, log, StagePartition, func() error {
		var err error
		low, high, err = partition.ByLevel(teamEvents, s.threshold)
		return err
	})
	if err != nil {
		return res, err
	}
	res.LowEvents, res.HighEvents, res.LeagueEvents = len(low), len(high), len(leagueEvents)

	composer := menu.New(s.renderer,
		menu.WithTipScheme(s.scheme),
		menu.WithTopLevelTemplate(s.topLevelTemplate),
		menu.WithTipSectionTemplate(s.tipSectionTemplate),
		menu.WithCaseFoldedNames(s.foldNames),
		menu.WithLogger(log),
	)

	var blocks menu.Blocks
	err = s.stage(ctx, log, StageCompose, func() error {
		var err error
		if blocks.GroupOne, err = composer.Compose(ctx, partition.Events(low), s.teamTemplate); err != nil {
			return err
		}
		if blocks.GroupTwo, err = composer.Compose(ctx, partition.Events(high), s.teamTemplate); err != nil {
			return err
		}
		blocks.LeagueEvents, err = composer.Compose(ctx, leagueEvents, s.leagueTemplate)
		return err
	})
	if err != nil {
		return res, err
	}

	err = s.stage(ctx, log, StageAssemble, func() error {
		var err error
		res.Document, err = composer.Assemble(ctx, blocks)
		return err
	})
	if err != nil {
		return res, err
	}

	log.Info(ctx, "menu document rendered",
		logger.Int("lowEvents", res.LowEvents),
		logger.Int("highEvents", res.HighEvents),
		logger.Int("leagueEvents", res.LeagueEvents),
		logger.Int("threshold", s.threshold),
		logger.Int("bytes", len(res.Document)),
	)
	return res, nil
}

// Run renders the document and writes it. Nothing is written when any
// earlier stage fails.
func (s *Service) Run(ctx context.Context) (Result, error) {
	res, err := s.Render(ctx)
	if err != nil {
		return res, err
	}
	if s.writer == nil {
		return res, fmt.Errorf("%w: writer is required", ErrNotConfigured)
	}

	log := s.logger.With(logger.String("run_id", res.RunID))
	err = s.stage(ctx, log, StageWrite, func() error {
		return s.writer.Write(ctx, res.Document)
	})
	if err != nil {
		return res, err
	}

	metrics.RecordSuccess(len(res.Document), s.now())
	if fw, ok := s.writer.(*output.FileWriter); ok {
		log.Info(ctx, "menu document written", logger.String("path", fw.Path()))
	}
	return res, nil
}

// stage times fn, records failures and tags errors with the stage name.
func (s *Service) stage(ctx context.Context, log logger.Logger, name string, fn func() error) error {
	start := s.now()
	err := fn()
	metrics.ObserveStage(name, s.now().Sub(start))
	if err != nil {
		metrics.RecordRunFailure(name)
		log.Error(ctx, "stage failed", logger.String("stage", name), logger.Error(err))
		return &StageError{Stage: name, Err: err}
	}
	log.Debug(ctx, "stage finished", logger.String("stage", name))
	return nil
}
