package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// AllowList is the immutable set of chat users permitted to use the bot.
// It is built once at startup and only read afterwards, so it is safe for
// concurrent use without locking.
type AllowList struct {
	ids map[int64]struct{}
}

// NewAllowList builds an allow-list from the given user ids.
func NewAllowList(ids ...int64) *AllowList {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &AllowList{ids: set}
}

// LoadAllowList merges the configured ids with the members of the Redis set at key.
// A nil client skips Redis. Non-numeric members are rejected.
func LoadAllowList(ctx context.Context, rdb redis.Cmdable, key string, ids []int64) (*AllowList, error) {
	all := append([]int64(nil), ids...)
	if rdb != nil {
		members, err := rdb.SMembers(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("read allow-list %q: %w", key, err)
		}
		for _, m := range members {
			id, err := strconv.ParseInt(strings.TrimSpace(m), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("allow-list %q member %q: %w", key, m, err)
			}
			all = append(all, id)
		}
	}
	return NewAllowList(all...), nil
}

// Contains reports whether userID may use the bot.
func (a *AllowList) Contains(userID int64) bool {
	if a == nil {
		return false
	}
	_, ok := a.ids[userID]
	return ok
}

// Len returns the number of allowed users.
func (a *AllowList) Len() int {
	if a == nil {
		return 0
	}
	return len(a.ids)
}
