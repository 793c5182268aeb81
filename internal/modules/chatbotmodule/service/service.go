// Package service wires the classification core into a chat turn pipeline:
// intent, reply (AI responder or fallback bank), context and emotion,
// persona match and avatar.
package service

import (
	"context"
	"math/rand"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/mantonx/cinebot/internal/config"
	"github.com/mantonx/cinebot/internal/metrics"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/core/analyzer"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/core/fallback"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/core/intent"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/core/persona"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/core/taxonomy"
	chatboterrors "github.com/mantonx/cinebot/internal/modules/chatbotmodule/errors"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

// PersonaSource is the persistent catalog backing the database source.
type PersonaSource interface {
	List(ctx context.Context) ([]types.PersonaRecord, error)
	Get(ctx context.Context, id string) (types.PersonaRecord, error)
	Upsert(ctx context.Context, record types.PersonaRecord) error
	Reseed(ctx context.Context, records []types.PersonaRecord) error
	Count(ctx context.Context) (int64, error)
}

// Options configures a ChatbotService. Zero values fall back to the built-in
// tables, a clock-seeded random source and a null logger.
type Options struct {
	Config     config.ChatbotConfig
	Repository PersonaSource
	Responder  Responder
	Taxonomy   *taxonomy.Taxonomy
	Bank       fallback.Bank
	Rand       fallback.RandSource
	Metrics    *metrics.Recorder
	Logger     hclog.Logger
}

// ChatbotService runs chat turns against the current persona catalog.
type ChatbotService struct {
	cfg        config.ChatbotConfig
	repo       PersonaSource
	responder  Responder
	classifier *intent.Classifier
	analyzer   *analyzer.Analyzer
	selector   *fallback.Selector
	store      *persona.Store
	matcher    *persona.Matcher
	metrics    *metrics.Recorder
	logger     hclog.Logger

	defaultLang atomic.Value // types.Language
	watcher     *persona.Watcher
}

// NewChatbotService builds a service serving the built-in catalog. Call Start
// to load the configured catalog source.
func NewChatbotService(opts Options) *ChatbotService {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("chatbot")

	tax := opts.Taxonomy
	if tax == nil {
		tax = taxonomy.Default()
	} else if err := tax.Validate(); err != nil {
		logger.Warn("keyword taxonomy is incomplete, missing entries degrade to defaults", "error", err)
	}

	bank := opts.Bank
	if bank == nil {
		bank = fallback.DefaultBank()
	} else if err := bank.Validate(); err != nil {
		logger.Warn("fallback bank is incomplete, missing entries degrade to defaults", "error", err)
	}

	rng := opts.Rand
	if rng == nil {
		seed := opts.Config.RandomSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	store := persona.NewStore(persona.NewCatalog(persona.DefaultCatalog()))
	s := &ChatbotService{
		cfg:        opts.Config,
		repo:       opts.Repository,
		responder:  opts.Responder,
		classifier: intent.NewClassifier(tax),
		analyzer:   analyzer.NewAnalyzer(tax),
		selector:   fallback.NewSelector(bank, rng),
		store:      store,
		matcher:    persona.NewMatcher(store, logger),
		metrics:    opts.Metrics,
		logger:     logger,
	}
	s.defaultLang.Store(types.ParseLanguage(opts.Config.DefaultLanguage))
	s.metrics.SetCatalogSize(store.Load().Len())
	return s
}

// Start loads the configured catalog source and, for file catalogs with hot
// reload enabled, starts watching the file. A source that fails to load is
// logged and the built-in catalog keeps serving.
func (s *ChatbotService) Start(ctx context.Context) error {
	if s.cfg.CatalogSource == config.CatalogSourceDatabase && s.cfg.SeedOnStart {
		if err := s.seedIfEmpty(ctx); err != nil {
			s.logger.Warn("failed to seed persona table", "error", err)
		}
	}

	if _, err := s.ReloadCatalog(ctx); err != nil {
		s.logger.Warn("catalog source unavailable, serving built-in catalog",
			"source", s.cfg.CatalogSource, "error", err)
	}

	if s.cfg.CatalogSource == config.CatalogSourceFile && s.cfg.HotReload {
		w, err := persona.NewWatcher(s.cfg.CatalogFile, s.store, s.cfg.ReloadDebounce, s.logger, s.onFileReload)
		if err != nil {
			return chatboterrors.CatalogError("watch_catalog", err)
		}
		if err := w.Start(); err != nil {
			_ = w.Stop()
			return chatboterrors.CatalogError("watch_catalog", err)
		}
		s.watcher = w
	}
	return nil
}

// Stop releases the catalog watcher, if any.
func (s *ChatbotService) Stop() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Stop()
	s.watcher = nil
	return err
}

func (s *ChatbotService) onFileReload(c *persona.Catalog, err error) {
	if err != nil {
		s.metrics.RecordReload(0, err)
		return
	}
	s.metrics.RecordReload(c.Len(), nil)
}

func (s *ChatbotService) seedIfEmpty(ctx context.Context) error {
	if s.repo == nil {
		return chatboterrors.ConfigError("seed_catalog", chatboterrors.ErrEmptyCatalog)
	}
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	s.logger.Info("seeding persona table with built-in catalog")
	return s.repo.Reseed(ctx, persona.DefaultCatalog())
}

// Language resolves a request language, using the configured default when
// empty.
func (s *ChatbotService) Language(lang types.Language) types.Language {
	if strings.TrimSpace(string(lang)) == "" {
		return s.defaultLang.Load().(types.Language)
	}
	return types.ParseLanguage(string(lang))
}

// SetDefaultLanguage changes the language used for requests that name none.
func (s *ChatbotService) SetDefaultLanguage(lang string) {
	s.defaultLang.Store(types.ParseLanguage(lang))
}

// Classify runs intent, context, emotion and persona matching without
// generating a reply.
func (s *ChatbotService) Classify(in types.ClassificationInput) types.Classification {
	in.Language = s.Language(in.Language)
	c := s.classify(in)
	s.metrics.RecordClassification(string(c.Intent), string(in.Language), string(c.Context), string(c.Emotion), c.PersonaID)
	return c
}

func (s *ChatbotService) classify(in types.ClassificationInput) types.Classification {
	intentValue := s.classifier.Classify(in.MessageText, in.Language)
	ctxValue, emotion := s.analyzer.Analyze(in)

	catalog := s.store.Load()
	m := s.matcher.MatchCatalog(catalog, ctxValue, emotion)
	return types.Classification{
		Intent:    intentValue,
		Context:   m.Context,
		Emotion:   m.Emotion,
		PersonaID: m.PersonaID,
		Score:     m.Score,
		Avatar:    catalog.Avatar(m.PersonaID),
	}
}

// Fallback picks and personalizes a canned response.
func (s *ChatbotService) Fallback(lang types.Language, intentValue types.Intent, message string, p fallback.Personalization) fallback.Choice {
	lang = s.Language(lang)
	choice := s.selector.Select(lang, intentValue, message)
	choice.Text = fallback.Personalize(choice.Text, lang, p)
	s.metrics.RecordFallback(string(choice.Category))
	return choice
}

// HandleTurn produces the reply and classification for one user message.
func (s *ChatbotService) HandleTurn(ctx context.Context, turn Turn) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	message := strings.TrimSpace(turn.Message)
	if message == "" {
		return nil, chatboterrors.ValidationError("handle_turn", chatboterrors.ErrInvalidInput).
			WithDetail("field", "message")
	}

	id := turn.ID
	if id == "" {
		id = uuid.NewString()
	}
	lang := s.Language(turn.Language)
	intentValue := s.classifier.Classify(message, lang)

	result := &Result{TurnID: id, Language: lang}
	reply, err := s.respond(ctx, ResponderRequest{
		TurnID:    id,
		Message:   message,
		Language:  lang,
		Intent:    intentValue,
		PersonaID: turn.PreviousPersonaID,
		History:   turn.History,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		choice := s.Fallback(lang, intentValue, message, turn.Personalization)
		result.Response = choice.Text
		result.Fallback = true
		result.Category = choice.Category
	} else {
		result.Response = reply
	}

	result.Classification = s.classify(types.ClassificationInput{
		MessageText:  message,
		ResponseText: result.Response,
		Language:     lang,
	})
	result.PersonaChanged = turn.PreviousPersonaID != "" && turn.PreviousPersonaID != result.PersonaID
	s.metrics.RecordClassification(string(result.Intent), string(lang), string(result.Context), string(result.Emotion), result.PersonaID)

	s.logger.Debug("turn handled",
		"turn_id", id,
		"intent", result.Intent,
		"context", result.Context,
		"emotion", result.Emotion,
		"persona", result.PersonaID,
		"fallback", result.Fallback,
	)
	return result, nil
}

// respond asks the AI responder for a reply. It returns an error when the
// responder is disabled, fails or answers with nothing.
func (s *ChatbotService) respond(ctx context.Context, req ResponderRequest) (string, error) {
	if !s.cfg.AIEnabled || s.responder == nil {
		return "", chatboterrors.ResponderError("respond", chatboterrors.ErrResponderUnavailable)
	}

	if s.cfg.ResponderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ResponderTimeout)
		defer cancel()
	}

	reply, err := s.responder.Respond(ctx, req)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = chatboterrors.ErrResponderUnavailable
	}
	if err != nil {
		s.metrics.RecordResponderFailure()
		s.logger.Warn("responder failed, using fallback", "turn_id", req.TurnID, "error", err)
		return "", chatboterrors.ResponderError("respond", err)
	}
	return reply, nil
}

// Catalog returns the current catalog snapshot.
func (s *ChatbotService) Catalog() *persona.Catalog {
	return s.store.Load()
}

// Personas lists the current catalog in order.
func (s *ChatbotService) Personas() []types.PersonaRecord {
	return s.store.Load().Records()
}

// Persona looks up one persona in the current catalog.
func (s *ChatbotService) Persona(id string) (types.PersonaRecord, error) {
	p, ok := s.store.Load().Get(id)
	if !ok {
		return types.PersonaRecord{}, chatboterrors.CatalogError("get_persona", chatboterrors.ErrPersonaNotFound).
			WithDetail("id", id)
	}
	return p, nil
}

// ReloadCatalog reads the configured source and publishes it. On error the
// current snapshot keeps serving.
func (s *ChatbotService) ReloadCatalog(ctx context.Context) (*persona.Catalog, error) {
	records, err := s.readSource(ctx)
	if err == nil {
		var c *persona.Catalog
		c, err = s.store.Replace(records)
		if err == nil {
			s.metrics.RecordReload(c.Len(), nil)
			s.logger.Info("persona catalog loaded", "source", s.sourceName(), "personas", c.Len())
			return c, nil
		}
	}
	s.metrics.RecordReload(0, err)
	return nil, err
}

func (s *ChatbotService) sourceName() string {
	if s.cfg.CatalogSource == "" {
		return config.CatalogSourceBuiltin
	}
	return s.cfg.CatalogSource
}

func (s *ChatbotService) readSource(ctx context.Context) ([]types.PersonaRecord, error) {
	switch s.sourceName() {
	case config.CatalogSourceFile:
		return persona.LoadFile(s.cfg.CatalogFile)
	case config.CatalogSourceDatabase:
		if s.repo == nil {
			return nil, chatboterrors.ConfigError("load_catalog", chatboterrors.ErrEmptyCatalog).
				WithDetail("source", config.CatalogSourceDatabase)
		}
		return s.repo.List(ctx)
	default:
		return persona.DefaultCatalog(), nil
	}
}

// ReseedCatalog replaces the catalog with records, writing them through to
// the configured source first. Invalid records are rejected before anything
// is written. No records means the built-in catalog.
func (s *ChatbotService) ReseedCatalog(ctx context.Context, records []types.PersonaRecord) (*persona.Catalog, error) {
	if len(records) == 0 {
		records = persona.DefaultCatalog()
	}
	if err := persona.Validate(records); err != nil {
		return nil, err
	}

	switch s.sourceName() {
	case config.CatalogSourceDatabase:
		if s.repo == nil {
			return nil, chatboterrors.ConfigError("reseed_catalog", chatboterrors.ErrEmptyCatalog)
		}
		if err := s.repo.Reseed(ctx, records); err != nil {
			return nil, err
		}
	case config.CatalogSourceFile:
		if err := persona.WriteFile(s.cfg.CatalogFile, records); err != nil {
			return nil, err
		}
	}

	c, err := s.store.Replace(records)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordReload(c.Len(), nil)
	s.logger.Info("persona catalog reseeded", "source", s.sourceName(), "personas", c.Len())
	return c, nil
}

// UpsertPersona adds record to the catalog or replaces the persona with the
// same id, writing through to the configured source. created reports whether
// the id was new. The merged catalog is validated before anything is written.
func (s *ChatbotService) UpsertPersona(ctx context.Context, record types.PersonaRecord) (c *persona.Catalog, created bool, err error) {
	current := s.store.Load()
	_, exists := current.Get(record.ID)
	merged := append(make([]types.PersonaRecord, 0, current.Len()+1), current.Records()...)
	if exists {
		for i := range merged {
			if merged[i].ID == record.ID {
				merged[i] = record
				break
			}
		}
	} else {
		merged = append(merged, record)
	}
	if err := persona.Validate(merged); err != nil {
		return nil, false, err
	}

	switch s.sourceName() {
	case config.CatalogSourceDatabase:
		if s.repo == nil {
			return nil, false, chatboterrors.ConfigError("upsert_persona", chatboterrors.ErrEmptyCatalog)
		}
		if _, err := s.repo.Get(ctx, record.ID); err != nil {
			if !errors.Is(err, chatboterrors.ErrPersonaNotFound) {
				return nil, false, err
			}
			created = true
		}
		if err := s.repo.Upsert(ctx, record); err != nil {
			return nil, false, err
		}
		// The table is authoritative; rows written by other instances come along.
		c, err = s.ReloadCatalog(ctx)
		if err != nil {
			return nil, false, err
		}
	case config.CatalogSourceFile:
		if err := persona.WriteFile(s.cfg.CatalogFile, merged); err != nil {
			return nil, false, err
		}
		created = !exists
		if c, err = s.replace(merged); err != nil {
			return nil, false, err
		}
	default:
		created = !exists
		if c, err = s.replace(merged); err != nil {
			return nil, false, err
		}
	}

	s.logger.Info("persona saved", "id", record.ID, "created", created, "source", s.sourceName())
	return c, created, nil
}

func (s *ChatbotService) replace(records []types.PersonaRecord) (*persona.Catalog, error) {
	c, err := s.store.Replace(records)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordReload(c.Len(), nil)
	return c, nil
}
