package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const exclusionPrefix = "excluded_peers:"

// ExclusionCache keeps the per-user excluded-peer set hot for discovery.
// It is strictly an accelerator: readers fall back to the store on a miss or
// an error, and every recorded decision invalidates both parties.
type ExclusionCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewExclusionCache(client *goredis.Client, ttl time.Duration) *ExclusionCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ExclusionCache{client: client, ttl: ttl}
}

func (c *ExclusionCache) Get(ctx context.Context, userID int64) ([]int64, bool, error) {
	if c.client == nil || userID <= 0 {
		return nil, false, nil
	}

	values, err := c.client.SMembers(ctx, exclusionKey(userID)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("read exclusion cache: %w", err)
	}
	if len(values) == 0 {
		return nil, false, nil
	}

	peers := make([]int64, 0, len(values))
	for _, value := range values {
		// The sentinel marks a cached-but-empty set; skip it.
		if value == "0" {
			continue
		}
		peerID, parseErr := strconv.ParseInt(value, 10, 64)
		if parseErr != nil {
			return nil, false, nil
		}
		peers = append(peers, peerID)
	}

	return peers, true, nil
}

// Set overwrites the cached set. The write is not fenced against
// Invalidate: a decision that commits between the caller's store read and
// this write can resurrect the stale set, so the TTL is the upper bound on
// how long an outdated exclusion set can live.
func (c *ExclusionCache) Set(ctx context.Context, userID int64, peers []int64) error {
	if c.client == nil || userID <= 0 {
		return nil
	}

	// "0" is never a valid user id, so it doubles as the empty-set marker
	// and keeps the key present for negative caching.
	members := make([]interface{}, 0, len(peers)+1)
	members = append(members, "0")
	for _, peerID := range peers {
		members = append(members, strconv.FormatInt(peerID, 10))
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, exclusionKey(userID))
	pipe.SAdd(ctx, exclusionKey(userID), members...)
	pipe.Expire(ctx, exclusionKey(userID), c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write exclusion cache: %w", err)
	}

	return nil
}

func (c *ExclusionCache) Invalidate(ctx context.Context, userIDs ...int64) error {
	if c.client == nil || len(userIDs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(userIDs))
	for _, userID := range userIDs {
		if userID > 0 {
			keys = append(keys, exclusionKey(userID))
		}
	}
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate exclusion cache: %w", err)
	}

	return nil
}

func exclusionKey(userID int64) string {
	return exclusionPrefix + strconv.FormatInt(userID, 10)
}
