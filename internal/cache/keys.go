package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	PostKeyPrefix     = "post:%d"
	GroupKeyPrefix    = "group:%s"
	FeedPageKeyPrefix = "feed:all:page:%d"
)

const (
	UserTTL     = 5 * time.Minute
	GroupTTL    = 10 * time.Minute
	PostTTL     = 30 * time.Minute
	FeedPageTTL = 1 * time.Minute
)

// FeedCachedPages is how many leading pages of the global feed get cached.
const FeedCachedPages = 3

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func GroupKey(slug string) string {
	return fmt.Sprintf(GroupKeyPrefix, slug)
}

func FeedPageKey(page int) string {
	return fmt.Sprintf(FeedPageKeyPrefix, page)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateGroup(ctx context.Context, slug string) {
	Invalidate(ctx, GroupKey(slug))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateFeed drops the cached leading pages of the global feed.
// Called after any write that changes feed ordering or contents.
func InvalidateFeed(ctx context.Context) {
	for page := 1; page <= FeedCachedPages; page++ {
		Invalidate(ctx, FeedPageKey(page))
	}
}
