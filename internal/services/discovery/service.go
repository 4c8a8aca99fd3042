package discovery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/olegsavin/brandmatch/internal/domain/enums"
	"github.com/olegsavin/brandmatch/internal/domain/model"
	"github.com/olegsavin/brandmatch/internal/domain/rules"
	pgrepo "github.com/olegsavin/brandmatch/internal/repo/postgres"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

var (
	ErrValidation      = errors.New("validation error")
	ErrProfileNotFound = errors.New("profile not found")
)

type Repository interface {
	GetViewer(ctx context.Context, userID int64) (pgrepo.CandidateRecord, error)
	ListCandidates(ctx context.Context, role enums.Role) ([]pgrepo.CandidateRecord, error)
}

type ExclusionStore interface {
	ExcludedPeers(ctx context.Context, userID int64) ([]int64, error)
}

type ExclusionCache interface {
	Get(ctx context.Context, userID int64) ([]int64, bool, error)
	Set(ctx context.Context, userID int64, peers []int64) error
}

// Facets are the optional discovery constraints. A nil/empty field means
// "no constraint", never "match the zero value".
type Facets struct {
	MinReach     *int64
	MaxReach     *int64
	Vertical     string
	Verified     *bool
	AdSpendRange string
	Search       string
}

type Page struct {
	Limit  int
	Offset int
}

type Item struct {
	UserID     int64
	Role       enums.Role
	MatchScore float64
	Verified   bool
	Creator    *model.CreatorProfile
	Brand      *model.BrandProfile
}

type Result struct {
	Items  []Item
	Total  int
	Limit  int
	Offset int
}

type Service struct {
	repo       Repository
	exclusions ExclusionStore
	cache      ExclusionCache
	logger     *zap.Logger
}

func NewService(repo Repository, exclusions ExclusionStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		repo:       repo,
		exclusions: exclusions,
		logger:     logger,
	}
}

// AttachExclusionCache enables the best-effort redis cache in front of the
// excluded-peers query. Cache failures fall through to the store.
func (s *Service) AttachExclusionCache(cache ExclusionCache) {
	s.cache = cache
}

// Discover returns the scored, ranked, paginated candidate page for the
// requesting user. The requester's stored role must match the requested one.
func (s *Service) Discover(ctx context.Context, userID int64, role enums.Role, facets Facets, page Page) (Result, error) {
	if userID <= 0 {
		return Result{}, ErrValidation
	}
	if role != enums.RoleCreator && role != enums.RoleBrand {
		return Result{}, ErrValidation
	}
	if page.Offset < 0 || page.Limit < 0 {
		return Result{}, ErrValidation
	}
	if facets.AdSpendRange != "" {
		if _, ok := enums.ParseAdSpendRange(facets.AdSpendRange); !ok {
			return Result{}, ErrValidation
		}
	}
	if facets.MinReach != nil && facets.MaxReach != nil && *facets.MinReach > *facets.MaxReach {
		return Result{}, ErrValidation
	}
	if s.repo == nil || s.exclusions == nil {
		return Result{}, fmt.Errorf("discovery dependencies are not configured")
	}

	if page.Limit == 0 {
		page.Limit = defaultPageSize
	}
	if page.Limit > maxPageSize {
		page.Limit = maxPageSize
	}

	viewer, err := s.repo.GetViewer(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrDiscoveryViewerNotFound) {
			return Result{}, ErrProfileNotFound
		}
		return Result{}, err
	}
	if viewer.User.Role != role {
		return Result{}, ErrValidation
	}
	if !viewer.HasProfile {
		return Result{}, ErrProfileNotFound
	}

	excluded, err := s.excludedSet(ctx, userID)
	if err != nil {
		return Result{}, err
	}

	pool, err := s.repo.ListCandidates(ctx, role.Opposite())
	if err != nil {
		return Result{}, err
	}

	candidates := filterCandidates(pool, excluded, facets)
	items := s.rank(viewer, candidates)

	total := len(items)
	start := page.Offset
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	return Result{
		Items:  items[start:end],
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}, nil
}

func (s *Service) excludedSet(ctx context.Context, userID int64) (map[int64]struct{}, error) {
	if s.cache != nil {
		peers, hit, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.logger.Warn("exclusion cache read failed", zap.Int64("user_id", userID), zap.Error(err))
		} else if hit {
			return toSet(peers), nil
		}
	}

	peers, err := s.exclusions.ExcludedPeers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load excluded peers: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, peers); err != nil {
			s.logger.Warn("exclusion cache write failed", zap.Int64("user_id", userID), zap.Error(err))
		}
	}

	return toSet(peers), nil
}

// filterCandidates applies the exclusion strip first, then the facet
// filters, AND-combined. Candidates without a profile are dropped last
// since scoring requires one.
func filterCandidates(pool []pgrepo.CandidateRecord, excluded map[int64]struct{}, facets Facets) []pgrepo.CandidateRecord {
	out := make([]pgrepo.CandidateRecord, 0, len(pool))
	for _, candidate := range pool {
		if _, ok := excluded[candidate.User.ID]; ok {
			continue
		}
		if facets.Verified != nil && candidate.User.Verified != *facets.Verified {
			continue
		}
		if !matchesReachRange(candidate, facets) {
			continue
		}
		if !matchesBrandFacets(candidate, facets) {
			continue
		}
		if !matchesSearch(candidate, facets.Search) {
			continue
		}
		if !candidate.HasProfile {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

// matchesReachRange applies the reach window to creator candidates. When a
// range is requested, a candidate without follower data fails the filter
// instead of passing vacuously.
func matchesReachRange(candidate pgrepo.CandidateRecord, facets Facets) bool {
	if facets.MinReach == nil && facets.MaxReach == nil {
		return true
	}
	if candidate.User.Role != enums.RoleCreator {
		return true
	}
	if !candidate.HasProfile {
		return false
	}

	reach := candidate.Creator.Reach()
	if reach == 0 {
		return false
	}
	if facets.MinReach != nil && reach < *facets.MinReach {
		return false
	}
	if facets.MaxReach != nil && reach > *facets.MaxReach {
		return false
	}
	return true
}

func matchesBrandFacets(candidate pgrepo.CandidateRecord, facets Facets) bool {
	if candidate.User.Role != enums.RoleBrand {
		return true
	}

	if vertical := strings.TrimSpace(facets.Vertical); vertical != "" {
		if !candidate.HasProfile || !strings.EqualFold(candidate.Brand.Vertical, vertical) {
			return false
		}
	}
	if facets.AdSpendRange != "" {
		bucket, _ := enums.ParseAdSpendRange(facets.AdSpendRange)
		if !candidate.HasProfile || candidate.Brand.AdSpendRange != bucket {
			return false
		}
	}
	return true
}

func matchesSearch(candidate pgrepo.CandidateRecord, search string) bool {
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return true
	}
	if !candidate.HasProfile {
		return false
	}

	if candidate.User.Role == enums.RoleBrand {
		return strings.Contains(strings.ToLower(candidate.Brand.CompanyName), query)
	}

	return strings.Contains(strings.ToLower(candidate.Creator.InstagramHandle), query) ||
		strings.Contains(strings.ToLower(candidate.Creator.TiktokHandle), query) ||
		strings.Contains(strings.ToLower(candidate.Creator.Bio), query)
}

// rank scores every candidate against the viewer and sorts descending.
// The sort is stable on purpose: no secondary key is defined for equal
// scores, so ties keep their input order.
func (s *Service) rank(viewer pgrepo.CandidateRecord, candidates []pgrepo.CandidateRecord) []Item {
	items := make([]Item, 0, len(candidates))
	for _, candidate := range candidates {
		var score float64
		if viewer.User.Role == enums.RoleCreator {
			score = rules.Score(viewer.Creator, viewer.User, candidate.Brand, candidate.User)
		} else {
			score = rules.Score(candidate.Creator, candidate.User, viewer.Brand, viewer.User)
		}

		item := Item{
			UserID:     candidate.User.ID,
			Role:       candidate.User.Role,
			MatchScore: score,
			Verified:   candidate.User.Verified,
		}
		if candidate.User.Role == enums.RoleCreator {
			profile := candidate.Creator
			item.Creator = &profile
		} else {
			profile := candidate.Brand
			item.Brand = &profile
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].MatchScore > items[j].MatchScore
	})

	return items
}

func toSet(peers []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(peers))
	for _, peerID := range peers {
		set[peerID] = struct{}{}
	}
	return set
}
