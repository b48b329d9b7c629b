package filter

import (
	"time"

	"github.com/google/uuid"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// Options tunes the service; zero values fall back to the defaults.
type Options struct {
	PolicyTTL      time.Duration
	CooldownWindow time.Duration
	MuteDuration   time.Duration
}

// CheckResult is the outcome of the production enforcement entry point.
// Blocked means the message itself was suppressed: a log_only run (including
// display-name matches, which always demote to log_only) leaves the message
// in place and reports Blocked=false with Term, Kind and Action still set.
type CheckResult struct {
	Blocked bool                `json:"blocked"`
	Term    string              `json:"term,omitempty"`
	Kind    models.MatchKind    `json:"kind,omitempty"`
	Action  models.FilterAction `json:"action,omitempty"`
}

// TestResult is the outcome of the side-effect-free preview entry point.
type TestResult struct {
	WouldBlock     bool          `json:"wouldBlock"`
	Matches        []MatchResult `json:"matches"`
	NormalizedText string        `json:"normalizedText"`
}

// Service is the filter facade: it owns the policy cache, the match engine
// and the enforcement pipeline, and exposes the two entry points the rest of
// the bot uses.
type Service struct {
	cache    *PolicyCacheService
	engine   *MatchEngine
	pipeline *EnforcementPipeline
	log      Logger
}

// NewService wires the filter components together.
func NewService(store ConfigStore, actions Actions, sink ViolationSink, log Logger, opts Options) (*Service, error) {
	cache, err := NewPolicyCacheService(store, opts.PolicyTTL, log)
	if err != nil {
		return nil, err
	}
	engine, err := NewMatchEngine(log)
	if err != nil {
		return nil, err
	}
	cooldowns := NewCooldownTracker(opts.CooldownWindow)
	pipeline, err := NewEnforcementPipeline(actions, sink, cooldowns, log, opts.MuteDuration, uuid.NewString)
	if err != nil {
		return nil, err
	}
	return &Service{
		cache:    cache,
		engine:   engine,
		pipeline: pipeline,
		log:      log,
	}, nil
}

// Cache exposes the policy cache so config writers can invalidate it.
func (s *Service) Cache() *PolicyCacheService {
	return s.cache
}

// CheckMessage is the production entry point: evaluate the message against
// the guild's policy and, on a match, run the enforcement pipeline. Bot
// authors and DMs (no guild) are never filtered.
func (s *Service) CheckMessage(msg *IncomingMessage) CheckResult {
	if msg == nil || msg.IsBot || msg.GuildID == "" {
		return CheckResult{}
	}

	policy := s.cache.Get(msg.GuildID, false)
	match := s.engine.Evaluate(policy, msg)
	if match == nil {
		return CheckResult{}
	}

	action := s.pipeline.Handle(policy, msg, match)

	return CheckResult{
		Blocked: action != models.FilterActionLogOnly,
		Term:    match.Term,
		Kind:    match.Kind,
		Action:  action,
	}
}

// TestMessage runs the identical normalize+match pipeline with a forced
// policy refresh and no side effects, for configuration preview. It reports
// every matching pattern, not just the first.
func (s *Service) TestMessage(guildID, text string) TestResult {
	policy := s.cache.Get(guildID, true)
	normalized := Normalize(text, policy.Smart())

	matches := make([]MatchResult, 0)
	for _, p := range policy.Words {
		if p.Matches(normalized) {
			matches = append(matches, MatchResult{Term: p.Source, Kind: p.Kind})
		}
	}
	for _, p := range policy.Phrases {
		if p.Matches(normalized) {
			matches = append(matches, MatchResult{Term: p.Source, Kind: p.Kind})
		}
	}

	return TestResult{
		WouldBlock:     policy.Enabled && len(matches) > 0,
		Matches:        matches,
		NormalizedText: normalized,
	}
}
