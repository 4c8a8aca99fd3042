package matches

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/olegsavin/brandmatch/internal/domain/enums"
	"github.com/olegsavin/brandmatch/internal/domain/model"
	"github.com/olegsavin/brandmatch/internal/domain/rules"
	pgrepo "github.com/olegsavin/brandmatch/internal/repo/postgres"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrMatchNotFound   = errors.New("match not found")
	ErrForbidden       = errors.New("forbidden")
)

type TxRunner func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error

type MatchStore interface {
	UpsertDecision(ctx context.Context, tx pgx.Tx, creatorID, brandID int64, score float64, status enums.MatchStatus, now time.Time) (model.Match, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, matchID int64, status enums.MatchStatus, now time.Time) (model.Match, error)
	ListByStatus(ctx context.Context, userID int64, role enums.Role, status enums.MatchStatus, limit int) ([]model.Match, error)
}

type UserStore interface {
	GetUser(ctx context.Context, id int64) (model.User, error)
}

type ProfileStore interface {
	GetCreatorProfile(ctx context.Context, userID int64) (model.CreatorProfile, error)
	GetBrandProfile(ctx context.Context, userID int64) (model.BrandProfile, error)
}

type ConversationStore interface {
	GetOrCreate(ctx context.Context, matchID int64) (model.Conversation, error)
}

// ExclusionInvalidator drops cached excluded-peer sets after a decision
// changes them. Implementations are best effort.
type ExclusionInvalidator interface {
	Invalidate(ctx context.Context, userIDs ...int64) error
}

type Dependencies struct {
	RunTx         TxRunner
	Matches       MatchStore
	Users         UserStore
	Profiles      ProfileStore
	Conversations ConversationStore
	Exclusions    ExclusionInvalidator
	Logger        *zap.Logger
}

type Config struct {
	ConversationTimeout time.Duration
	ListLimit           int
}

// Decision is the outcome of recording one swipe-style decision. The
// Conversation pointer is set only when a shortlist produced (or found)
// one; a nil pointer after a shortlist means the side effect failed and
// was logged.
type Decision struct {
	Match        model.Match
	Conversation *model.Conversation
}

type Service struct {
	runTx         TxRunner
	matches       MatchStore
	users         UserStore
	profiles      ProfileStore
	conversations ConversationStore
	exclusions    ExclusionInvalidator
	logger        *zap.Logger

	conversationTimeout time.Duration
	listLimit           int
	now                 func() time.Time
}

func NewService(deps Dependencies, cfg Config) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ConversationTimeout <= 0 {
		cfg.ConversationTimeout = 2 * time.Second
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = 100
	}

	return &Service{
		runTx:               deps.RunTx,
		matches:             deps.Matches,
		users:               deps.Users,
		profiles:            deps.Profiles,
		conversations:       deps.Conversations,
		exclusions:          deps.Exclusions,
		logger:              logger,
		conversationTimeout: cfg.ConversationTimeout,
		listLimit:           cfg.ListLimit,
		now:                 time.Now,
	}
}

// RecordDecision records a decision on targetID by the acting user: pending,
// shortlisted or rejected. The match row is upserted atomically on the
// role-normalized pair; the score snapshot is computed here, before the
// write, and never changes on later transitions. Only a shortlist ensures a
// conversation exists, and a conversation failure does not undo the
// committed decision.
func (s *Service) RecordDecision(ctx context.Context, actorID int64, actorRole enums.Role, targetID int64, rawStatus string) (Decision, error) {
	status, ok := enums.ParseDecisionStatus(rawStatus)
	if !ok {
		return Decision{}, ErrValidation
	}
	if actorID <= 0 || targetID <= 0 || actorID == targetID {
		return Decision{}, ErrValidation
	}
	if s.runTx == nil || s.matches == nil || s.users == nil || s.profiles == nil {
		return Decision{}, fmt.Errorf("matches dependencies are not configured")
	}

	actor, err := s.loadUser(ctx, actorID)
	if err != nil {
		return Decision{}, err
	}
	if actor.Role != actorRole {
		return Decision{}, ErrForbidden
	}

	target, err := s.loadUser(ctx, targetID)
	if err != nil {
		return Decision{}, err
	}
	if target.Role != actor.Role.Opposite() {
		return Decision{}, ErrValidation
	}

	creatorUser, brandUser := actor, target
	if actor.Role == enums.RoleBrand {
		creatorUser, brandUser = target, actor
	}

	creatorProfile, err := s.profiles.GetCreatorProfile(ctx, creatorUser.ID)
	if err != nil {
		return Decision{}, mapProfileErr(err)
	}
	brandProfile, err := s.profiles.GetBrandProfile(ctx, brandUser.ID)
	if err != nil {
		return Decision{}, mapProfileErr(err)
	}

	score := rules.Score(creatorProfile, creatorUser, brandProfile, brandUser)
	now := s.now().UTC()

	var match model.Match
	err = s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		match, txErr = s.matches.UpsertDecision(ctx, tx, creatorUser.ID, brandUser.ID, score, status, now)
		return txErr
	})
	if err != nil {
		return Decision{}, fmt.Errorf("record decision: %w", err)
	}

	s.invalidateExclusions(ctx, creatorUser.ID, brandUser.ID)

	decision := Decision{Match: match}
	if status == enums.MatchStatusShortlisted {
		decision.Conversation = s.ensureConversation(ctx, match.ID)
	}

	return decision, nil
}

// UpdateStatus is the moderation transition: any status, including matched,
// addressed by match id. Only participants of the match may call it unless
// actorID is zero, which marks an administrative caller.
func (s *Service) UpdateStatus(ctx context.Context, actorID, matchID int64, rawStatus string) (model.Match, error) {
	status, ok := enums.ParseMatchStatus(rawStatus)
	if !ok {
		return model.Match{}, ErrValidation
	}
	if matchID <= 0 {
		return model.Match{}, ErrValidation
	}
	if s.runTx == nil || s.matches == nil {
		return model.Match{}, fmt.Errorf("matches dependencies are not configured")
	}

	now := s.now().UTC()

	// The participant check happens inside the transaction so a forbidden
	// caller rolls the update back instead of leaving it committed.
	var match model.Match
	err := s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		match, txErr = s.matches.UpdateStatus(ctx, tx, matchID, status, now)
		if txErr != nil {
			return txErr
		}
		if actorID > 0 && actorID != match.CreatorID && actorID != match.BrandID {
			return ErrForbidden
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return model.Match{}, ErrMatchNotFound
		}
		if errors.Is(err, ErrForbidden) {
			return model.Match{}, ErrForbidden
		}
		return model.Match{}, fmt.Errorf("update match status: %w", err)
	}

	s.invalidateExclusions(ctx, match.CreatorID, match.BrandID)

	// The moderation overwrite carries no side effects except for the
	// shortlisted state, which must always have its conversation.
	if status == enums.MatchStatusShortlisted {
		s.ensureConversation(ctx, match.ID)
	}

	return match, nil
}

// ListByStatus returns the user's matches in a given status ordered by
// score descending.
func (s *Service) ListByStatus(ctx context.Context, userID int64, rawStatus string, limit int) ([]model.Match, error) {
	status, ok := enums.ParseMatchStatus(rawStatus)
	if !ok {
		return nil, ErrValidation
	}
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.matches == nil || s.users == nil {
		return nil, fmt.Errorf("matches dependencies are not configured")
	}
	if limit <= 0 || limit > s.listLimit {
		limit = s.listLimit
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.matches.ListByStatus(ctx, userID, user.Role, status, limit)
}

// ensureConversation runs the conversation side effect under its own
// bounded timeout. Failures are logged and swallowed; the decision that
// triggered the side effect is already committed.
func (s *Service) ensureConversation(ctx context.Context, matchID int64) *model.Conversation {
	if s.conversations == nil {
		return nil
	}

	sideCtx, cancel := context.WithTimeout(ctx, s.conversationTimeout)
	defer cancel()

	conversation, err := s.conversations.GetOrCreate(sideCtx, matchID)
	if err != nil {
		s.logger.Warn("conversation side effect failed",
			zap.Int64("match_id", matchID),
			zap.Error(err),
		)
		return nil
	}

	return &conversation
}

func (s *Service) invalidateExclusions(ctx context.Context, userIDs ...int64) {
	if s.exclusions == nil {
		return
	}
	if err := s.exclusions.Invalidate(ctx, userIDs...); err != nil {
		s.logger.Warn("exclusion cache invalidation failed",
			zap.Int64s("user_ids", userIDs),
			zap.Error(err),
		)
	}
}

func (s *Service) loadUser(ctx context.Context, id int64) (model.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func mapProfileErr(err error) error {
	if errors.Is(err, pgrepo.ErrProfileNotFound) {
		return ErrProfileNotFound
	}
	return err
}
