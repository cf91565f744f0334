package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"socialfeed/internal/middleware"
)

const (
	PostKeyFormat      = "post:%d:g%d"
	PostGenKeyFormat   = "post:%d:gen"
	PostsListKeyFormat = "posts:list:g%d:l%d"
	PostsListGenKey    = "posts:list:gen"
)

const (
	PostTTL = 30 * time.Minute
	ListTTL = time.Minute
)

// ListCacheMaxLimit is the largest first-page size kept in the list cache.
const ListCacheMaxLimit = 20

func postGenKey(postID uint) string {
	return fmt.Sprintf(PostGenKeyFormat, postID)
}

// generation reads a counter key; a missing key or cache error reads as 0.
func generation(ctx context.Context, key string) int64 {
	if client == nil {
		return 0
	}
	v, err := client.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return v
}

// PostKey returns the key for postID in its current generation. Callers
// must resolve the key before reading storage: a snapshot fetched before an
// invalidation then lands under a retired generation and is never served.
func PostKey(ctx context.Context, postID uint) string {
	return fmt.Sprintf(PostKeyFormat, postID, generation(ctx, postGenKey(postID)))
}

// PostsListKey returns the key for the first page of size limit in the
// current list generation.
func PostsListKey(ctx context.Context, limit int) string {
	return fmt.Sprintf(PostsListKeyFormat, generation(ctx, PostsListGenKey), limit)
}

// Invalidate deletes key. Errors are logged and otherwise ignored.
func Invalidate(ctx context.Context, key string) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, key).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache invalidation failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// InvalidatePostsList retires every cached list page by bumping the
// generation; stale pages expire on their own TTL.
func InvalidatePostsList(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Incr(ctx, PostsListGenKey).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "posts list invalidation failed", slog.String("error", err.Error()))
	}
}

// InvalidatePost retires the cached post and every cached list page. The
// current entry is deleted and the post generation bumped so an in-flight
// reader cannot repopulate it.
func InvalidatePost(ctx context.Context, postID uint) {
	if client == nil {
		return
	}
	Invalidate(ctx, PostKey(ctx, postID))
	if err := client.Incr(ctx, postGenKey(postID)).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "post generation bump failed", slog.Uint64("post_id", uint64(postID)), slog.String("error", err.Error()))
	}
	InvalidatePostsList(ctx)
}
