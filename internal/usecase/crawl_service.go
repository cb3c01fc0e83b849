package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/riskibarqy/match-crawler/internal/domain/match"
	"github.com/riskibarqy/match-crawler/internal/domain/player"
	"github.com/riskibarqy/match-crawler/internal/domain/rawmatch"
	"github.com/riskibarqy/match-crawler/internal/domain/timeline"
	idgen "github.com/riskibarqy/match-crawler/internal/platform/id"
	"github.com/riskibarqy/match-crawler/internal/platform/logging"
	"github.com/riskibarqy/match-crawler/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

const (
	skipReasonExisting = "existing"
	skipReasonGameMode = "game_mode"

	harvestFalsePositiveRate = 0.001
	harvestMinCapacity       = 64
)

type CrawlConfig struct {
	PageSize int
	// HarvestParticipants links every co-participant to the match and refreshes
	// their player record.
	HarvestParticipants bool
	// SkipGameModes lists modes that are linked to the crawled player but not stored.
	SkipGameModes []string
}

// MatchRange slices the discovered references like a [Begin:End] slice
// expression. End <= 0 means up to the last reference.
type MatchRange struct {
	Begin int
	End   int
}

type CrawlInput struct {
	PlayerName string
	Range      *MatchRange
}

type CrawlService struct {
	api       RiotAPI
	players   player.Repository
	matches   match.Repository
	timelines timeline.Repository
	paginator *Paginator
	ids       idgen.Generator
	metrics   *metrics.Metrics
	logger    *logging.Logger
	cfg       CrawlConfig
	skipModes map[string]struct{}
}

func NewCrawlService(
	api RiotAPI,
	players player.Repository,
	matches match.Repository,
	timelines timeline.Repository,
	ids idgen.Generator,
	cfg CrawlConfig,
	m *metrics.Metrics,
	logger *logging.Logger,
) *CrawlService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = idgen.NewUUIDGenerator()
	}

	skipModes := make(map[string]struct{}, len(cfg.SkipGameModes))
	for _, mode := range cfg.SkipGameModes {
		mode = strings.ToUpper(strings.TrimSpace(mode))
		if mode != "" {
			skipModes[mode] = struct{}{}
		}
	}

	return &CrawlService{
		api:       api,
		players:   players,
		matches:   matches,
		timelines: timelines,
		paginator: NewPaginator(api, cfg.PageSize, logger),
		ids:       ids,
		metrics:   m,
		logger:    logger,
		cfg:       cfg,
		skipModes: skipModes,
	}
}

// crawlRun is the per-invocation state. Nothing in it is shared between runs.
type crawlRun struct {
	owner     player.Player
	refreshed *bloom.BloomFilter

	persisted int
	skipped   int
	failed    int
	conflicts int
}

// RunCrawl resolves the player, discovers unrecorded matches from the stored
// link count onward and persists every match not already on record.
//
// A failure on one reference aborts only that reference; the first such
// error is returned once every reference has been processed. Failed writes
// are logged and counted but never returned.
func (s *CrawlService) RunCrawl(ctx context.Context, input CrawlInput) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CrawlService.RunCrawl",
		attribute.String("crawl.player", strings.TrimSpace(input.PlayerName)))
	defer func() { endUsecaseSpan(span, err) }()

	name := strings.TrimSpace(input.PlayerName)
	if name == "" {
		return fmt.Errorf("%w: %w: player name is required", ErrCrawlNotStarted, ErrInvalidInput)
	}
	if r := input.Range; r != nil {
		if r.Begin < 0 || (r.End > 0 && r.End < r.Begin) {
			return fmt.Errorf("%w: %w: invalid match range [%d:%d]", ErrCrawlNotStarted, ErrInvalidInput, r.Begin, r.End)
		}
	}

	s.metrics.CrawlStarted()
	defer func() { s.metrics.CrawlFinished(err) }()

	started := time.Now()
	owner, err := s.resolvePlayer(ctx, name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCrawlNotStarted, err)
	}

	offset, err := s.players.CountMatches(ctx, owner.AccountID)
	if err != nil {
		return fmt.Errorf("%w: count recorded matches account_id=%s: %w", ErrCrawlNotStarted, owner.AccountID, err)
	}

	refs, err := s.paginator.Discover(ctx, owner.AccountID, offset)
	if err != nil {
		return fmt.Errorf("%w: discover matches for %q: %w", ErrCrawlNotStarted, name, err)
	}
	refs = applyRange(refs, input.Range)

	run := &crawlRun{owner: owner}
	if s.cfg.HarvestParticipants {
		capacity := uint(len(refs) * match.ParticipantsPerMatch)
		if capacity < harvestMinCapacity {
			capacity = harvestMinCapacity
		}
		run.refreshed = bloom.NewWithEstimates(capacity, harvestFalsePositiveRate)
		run.refreshed.AddString(owner.AccountID)
	}

	var firstErr error
	for i, ref := range refs {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("crawl %q interrupted: %w", name, ctxErr)
		}

		s.logger.InfoContext(ctx, "crawling match", "game_id", ref.GameID, "progress", fmt.Sprintf("%d/%d", i+1, len(refs)))
		if refErr := s.crawlReference(ctx, run, ref); refErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return fmt.Errorf("crawl %q interrupted: %w", name, ctxErr)
			}
			run.failed++
			s.logger.WarnContext(ctx, "match crawl failed", "game_id", ref.GameID, "error", refErr)
			if firstErr == nil {
				firstErr = fmt.Errorf("crawl match game_id=%d: %w", ref.GameID, refErr)
			}
		}
	}

	s.logger.InfoContext(ctx, "crawl finished",
		"player", name,
		"account_id", owner.AccountID,
		"resume_offset", offset,
		"discovered", len(refs),
		"persisted", run.persisted,
		"skipped", run.skipped,
		"failed", run.failed,
		"conflicts", run.conflicts,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return firstErr
}

func (s *CrawlService) resolvePlayer(ctx context.Context, name string) (player.Player, error) {
	summoner, err := s.api.GetSummonerByName(ctx, name)
	if err != nil {
		return player.Player{}, fmt.Errorf("resolve player %q: %w", name, err)
	}

	p := mapSummoner(summoner)
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("resolve player %q: upstream record invalid: %w", name, err)
	}
	s.write(ctx, nil, "player", func() error { return s.players.Upsert(ctx, p) })
	return p, nil
}

func (s *CrawlService) crawlReference(ctx context.Context, run *crawlRun, ref match.Reference) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CrawlService.crawlReference",
		attribute.Int64("match.game_id", ref.GameID))
	defer span.End()

	exists, err := s.matches.Exists(ctx, ref.GameID)
	if err != nil {
		return fmt.Errorf("check recorded match: %w", err)
	}
	if exists {
		run.skipped++
		s.metrics.IncMatchSkipped(skipReasonExisting)
		s.logger.DebugContext(ctx, "match already recorded, skipping", "game_id", ref.GameID)
		return nil
	}

	raw, err := s.api.GetMatch(ctx, ref.GameID)
	if err != nil {
		return err
	}
	if s.skipGameMode(raw.GameMode) {
		run.skipped++
		s.metrics.IncMatchSkipped(skipReasonGameMode)
		s.logger.InfoContext(ctx, "skipping match by game mode", "game_id", ref.GameID, "game_mode", raw.GameMode)
		s.write(ctx, run, "player_match", func() error { return s.players.LinkMatch(ctx, run.owner.AccountID, ref.GameID) })
		return nil
	}

	normalized, err := NormalizeMatch(raw)
	if err != nil {
		return err
	}

	rawTimeline, err := s.api.GetTimeline(ctx, ref.GameID)
	if err != nil {
		return err
	}
	tl, err := NormalizeTimeline(rawTimeline, normalized.SlotIndex)
	if err != nil {
		return err
	}

	if err := assignIdentifiers(&normalized, &tl, s.ids); err != nil {
		return err
	}

	s.persist(ctx, run, normalized, tl)
	run.persisted++
	s.metrics.IncMatchPersisted()
	return nil
}

// persist writes in foreign key order: teams, then per participant its stat,
// timeline and row, then the match, the player links and finally the frames.
func (s *CrawlService) persist(ctx context.Context, run *crawlRun, nm NormalizedMatch, tl timeline.MatchTimeline) {
	for _, team := range nm.Teams {
		s.write(ctx, run, "team", func() error { return s.matches.InsertTeam(ctx, team) })
	}
	for _, p := range nm.Participants {
		s.write(ctx, run, "stat", func() error { return s.matches.InsertStat(ctx, p.Stat) })
		s.write(ctx, run, "timeline", func() error { return s.matches.InsertTimeline(ctx, p.Timeline) })
		s.write(ctx, run, "participant", func() error { return s.matches.InsertParticipant(ctx, p) })
	}
	s.write(ctx, run, "match", func() error { return s.matches.Insert(ctx, nm.Match) })

	gameID := nm.Match.GameID
	s.write(ctx, run, "player_match", func() error { return s.players.LinkMatch(ctx, run.owner.AccountID, gameID) })
	if s.cfg.HarvestParticipants {
		for _, identity := range nm.Identities() {
			s.harvestParticipant(ctx, run, identity, gameID)
		}
	}

	for _, frame := range tl.Frames {
		s.write(ctx, run, "frame", func() error { return s.timelines.InsertFrame(ctx, gameID, frame) })
	}
}

// harvestParticipant refreshes a co-participant's player record at most once
// per run and links them to the match. The bloom filter only gates the
// refresh; a positive is confirmed against the store before skipping.
func (s *CrawlService) harvestParticipant(ctx context.Context, run *crawlRun, identity match.Identity, gameID int64) {
	accountID := identity.EffectiveAccountID()
	if accountID == "" || accountID == run.owner.AccountID || identity.AccountID == run.owner.AccountID {
		return
	}

	if !s.refreshedThisRun(ctx, run, accountID) {
		summoner, err := s.api.GetSummonerByAccount(ctx, accountID)
		if err != nil {
			s.logger.WarnContext(ctx, "refresh co-participant failed", "account_id", accountID, "error", err)
		} else {
			p := mapSummoner(summoner)
			if p.AccountID == "" {
				p.AccountID = accountID
			}
			if p.Name == "" {
				p.Name = identity.SummonerName
			}
			s.write(ctx, run, "player", func() error { return s.players.Upsert(ctx, p) })
			run.refreshed.AddString(accountID)
		}
	}

	s.write(ctx, run, "player_match", func() error { return s.players.LinkMatch(ctx, accountID, gameID) })
}

func (s *CrawlService) refreshedThisRun(ctx context.Context, run *crawlRun, accountID string) bool {
	if !run.refreshed.TestString(accountID) {
		return false
	}
	exists, err := s.players.Exists(ctx, accountID)
	if err != nil {
		s.logger.WarnContext(ctx, "check player existence failed", "account_id", accountID, "error", err)
		return false
	}
	return exists
}

// write runs one entity write. A failure is a persistence conflict: it is
// logged and counted and the crawl carries on with the next entity.
func (s *CrawlService) write(ctx context.Context, run *crawlRun, entity string, fn func() error) {
	err := fn()
	if err == nil {
		return
	}
	if run != nil {
		run.conflicts++
	}
	s.metrics.IncPersistenceConflict(entity)
	s.logger.WarnContext(ctx, "entity write rolled back",
		"entity", entity,
		"error", fmt.Errorf("%w: %w", ErrPersistenceConflict, err),
	)
}

func (s *CrawlService) skipGameMode(mode string) bool {
	if len(s.skipModes) == 0 {
		return false
	}
	_, ok := s.skipModes[strings.ToUpper(strings.TrimSpace(mode))]
	return ok
}

func applyRange(refs []match.Reference, r *MatchRange) []match.Reference {
	if r == nil {
		return refs
	}
	begin := r.Begin
	if begin > len(refs) {
		begin = len(refs)
	}
	end := len(refs)
	if r.End > 0 && r.End < end {
		end = r.End
	}
	if end < begin {
		end = begin
	}
	return refs[begin:end]
}

func mapSummoner(s rawmatch.Summoner) player.Player {
	return player.Player{
		AccountID:     strings.TrimSpace(s.AccountID),
		SummonerID:    strings.TrimSpace(s.ID),
		PUUID:         strings.TrimSpace(s.PUUID),
		Name:          strings.TrimSpace(s.Name),
		ProfileIconID: s.ProfileIconID,
		SummonerLevel: s.SummonerLevel,
		RevisionDate:  millisToTime(s.RevisionDate),
	}
}
