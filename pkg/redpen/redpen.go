package redpen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tool-recommender-bot/redpen/pkg/config"
	"github.com/tool-recommender-bot/redpen/pkg/model"
	"github.com/tool-recommender-bot/redpen/pkg/validator"
)

// Results maps each validated document to its ordered diagnostics. Every
// document of the collection has an entry, possibly empty.
type Results map[*model.Document][]validator.ValidationError

// Total returns the number of diagnostics across all documents.
func (r Results) Total() int {
	n := 0
	for _, errs := range r {
		n += len(errs)
	}
	return n
}

type boundValidator struct {
	v           validator.Validator
	granularity validator.Granularity
}

// RedPen holds the configured validators of one run. Validate may be called
// any number of times, also concurrently.
type RedPen struct {
	cfg         *config.Configuration
	validators  []boundValidator
	logger      *slog.Logger
	concurrency int
}

// New resolves and configures every validator named in cfg.
func New(cfg *config.Configuration, opts ...Option) (*RedPen, error) {
	if cfg == nil {
		return nil, errors.New("redpen: nil configuration")
	}

	o := options{registry: validator.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	rp := &RedPen{
		cfg:         cfg,
		logger:      o.logger,
		concurrency: o.concurrency,
	}

	for _, vc := range cfg.Validators() {
		bound, err := bind(o.registry, cfg, vc)
		if err != nil {
			return nil, err
		}
		rp.validators = append(rp.validators, bound)
		rp.logger.Debug("validator configured", "validator", vc.Name, "granularity", bound.granularity.String())
	}

	return rp, nil
}

func bind(r *validator.Registry, cfg *config.Configuration, vc config.ValidatorConfiguration) (boundValidator, error) {
	v, err := r.New(vc.Name)
	if err != nil {
		return boundValidator{}, err
	}

	granularity, err := validator.GranularityOf(v)
	if err != nil {
		return boundValidator{}, &validator.ConfigError{Validator: vc.Name, Err: err}
	}

	err = v.Configure(validator.Config{
		Name:       vc.Name,
		Language:   cfg.Language(),
		BaseDir:    cfg.BaseDir(),
		Attributes: validator.Attributes(vc.Attributes),
		Properties: validator.Properties(vc.Properties),
	})
	if err != nil {
		var cfgErr *validator.ConfigError
		var resErr *validator.ResourceError
		if errors.As(err, &cfgErr) || errors.As(err, &resErr) {
			return boundValidator{}, err
		}
		return boundValidator{}, &validator.ConfigError{Validator: vc.Name, Err: err}
	}

	return boundValidator{v: v, granularity: granularity}, nil
}

// Validators returns the names of the bound validators in configured order.
func (rp *RedPen) Validators() []string {
	names := make([]string, len(rp.validators))
	for i, b := range rp.validators {
		names[i] = b.v.Name()
	}
	return names
}

// Configuration returns the configuration the run was built from.
func (rp *RedPen) Configuration() *config.Configuration { return rp.cfg }

// Validate applies every validator to every document. On failure or
// cancellation it returns no results.
func (rp *RedPen) Validate(ctx context.Context, docs model.Collection) (Results, error) {
	runID := uuid.New().String()
	start := time.Now()
	logger := rp.logger.With("run_id", runID)
	logger.Debug("validation started", "validators", len(rp.validators), "documents", len(docs))

	perDoc, err := rp.validateAll(ctx, docs)
	if err != nil {
		logger.Debug("validation aborted", "error", err)
		return nil, err
	}

	results := make(Results, len(docs))
	for i, doc := range docs {
		results[doc] = perDoc[i]
	}

	logger.Info("validation finished",
		"documents", len(docs),
		"diagnostics", results.Total(),
		"elapsed", time.Since(start),
	)
	return results, nil
}

// ValidateDocument runs the validators over a single document.
func (rp *RedPen) ValidateDocument(ctx context.Context, doc *model.Document) ([]validator.ValidationError, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rp.validateDocument(doc)
}

func (rp *RedPen) validateAll(ctx context.Context, docs model.Collection) ([][]validator.ValidationError, error) {
	perDoc := make([][]validator.ValidationError, len(docs))

	if rp.concurrency < 2 || len(docs) < 2 {
		for i, doc := range docs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			errs, err := rp.validateDocument(doc)
			if err != nil {
				return nil, err
			}
			perDoc[i] = errs
		}
		return perDoc, ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rp.concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			errs, err := rp.validateDocument(doc)
			if err != nil {
				return err
			}
			perDoc[i] = errs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return perDoc, ctx.Err()
}

func (rp *RedPen) validateDocument(doc *model.Document) ([]validator.ValidationError, error) {
	out := []validator.ValidationError{}
	for _, b := range rp.validators {
		errs, err := apply(b, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, errs...)
	}
	return out, nil
}

// apply runs one validator over doc at its granularity. Errors and panics
// from the validator become a *ValidationFault.
func apply(b boundValidator, doc *model.Document) (errs []validator.ValidationError, err error) {
	name := b.v.Name()
	defer func() {
		if p := recover(); p != nil {
			errs = nil
			err = &ValidationFault{Validator: name, Document: doc.Name(), Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	collect := func(found []validator.ValidationError, ferr error) error {
		if ferr != nil {
			return &ValidationFault{Validator: name, Document: doc.Name(), Err: ferr}
		}
		for _, e := range found {
			e.Validator = name
			errs = append(errs, e)
		}
		return nil
	}

	switch b.granularity {
	case validator.GranularitySentence:
		sv := b.v.(validator.SentenceValidator)
		for _, sec := range doc.Sections() {
			for _, s := range sec.Sentences() {
				if err := collect(sv.ValidateSentence(s)); err != nil {
					return nil, err
				}
			}
		}
	case validator.GranularityParagraph:
		pv := b.v.(validator.ParagraphValidator)
		for _, sec := range doc.Sections() {
			for _, p := range sec.Paragraphs() {
				if err := collect(pv.ValidateParagraph(p)); err != nil {
					return nil, err
				}
			}
		}
	case validator.GranularityDocument:
		dv := b.v.(validator.DocumentValidator)
		if err := collect(dv.ValidateDocument(doc)); err != nil {
			return nil, err
		}
	}
	return errs, nil
}
