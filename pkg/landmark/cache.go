package landmark

import (
	"PresenceCoach/internal/entity"
	redisPkg "PresenceCoach/pkg/redis"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

const cacheKeyPrefix = "landmarks:"

// cachedDetector remembers detector output per frame digest so a client that
// re-sends an unchanged frame skips the detector. Only the landmarks are
// cached; scoring always runs again.
type cachedDetector struct {
	inner Detector
	cache redisPkg.ISnapshotCache
	ttl   time.Duration
	log   *logrus.Logger
}

func NewCachedDetector(inner Detector, cache redisPkg.ISnapshotCache, ttl time.Duration, log *logrus.Logger) Detector {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &cachedDetector{
		inner: inner,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

func CacheKey(frame []byte) string {
	sum := sha256.Sum256(frame)
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *cachedDetector) Detect(ctx context.Context, frame []byte) (*entity.DetectionSnapshot, error) {
	key := CacheKey(frame)

	cached, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		var snapshot entity.DetectionSnapshot
		if err := json.Unmarshal(cached, &snapshot); err == nil {
			return &snapshot, nil
		}
		c.log.WithField("key", key).Warn("Discarding unreadable cached landmarks")
	case !errors.Is(err, redisPkg.ErrCacheMiss):
		c.log.WithField("error", err.Error()).Warn("Landmark cache unavailable, calling detector")
	}

	snapshot, err := c.inner.Detect(ctx, frame)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(snapshot)
	if err == nil {
		if err := c.cache.Set(ctx, key, encoded, c.ttl); err != nil {
			c.log.WithField("error", err.Error()).Warn("Failed to cache landmarks")
		}
	}

	return snapshot, nil
}

func (c *cachedDetector) Close() error {
	return errors.Join(c.inner.Close(), c.cache.Close())
}
