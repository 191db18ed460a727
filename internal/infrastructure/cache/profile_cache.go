package cache

import (
	"context"
	"encoding/json"
	"time"

	"mentorlink/internal/domain/entity"
)

const profileTTL = 5 * time.Minute

// ProfileCache sits in front of the role-keyed profile lookups the chat
// list performs once per row. Failures are swallowed: a broken cache
// must never fail a list build.
type ProfileCache struct {
	redis *RedisCache
}

func NewProfileCache(redis *RedisCache) *ProfileCache {
	return &ProfileCache{redis: redis}
}

func (pc *ProfileCache) Get(ctx context.Context, kind, id string) *entity.ProfileSummary {
	if pc == nil || pc.redis == nil {
		return nil
	}

	data, err := pc.redis.Get(ctx, "profile:"+kind+":"+id)
	if err != nil || data == nil {
		return nil
	}

	var summary entity.ProfileSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil
	}
	return &summary
}

func (pc *ProfileCache) Set(ctx context.Context, kind string, summary *entity.ProfileSummary) {
	if pc == nil || pc.redis == nil || summary == nil {
		return
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	pc.redis.Set(ctx, "profile:"+kind+":"+summary.ID, data, profileTTL)
}

func (pc *ProfileCache) Invalidate(ctx context.Context, kind, id string) {
	if pc == nil || pc.redis == nil {
		return
	}
	pc.redis.Delete(ctx, "profile:"+kind+":"+id)
}
