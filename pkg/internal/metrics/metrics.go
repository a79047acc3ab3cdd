package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FeedCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yatube",
		Name:      "feed_cache_lookups_total",
		Help:      "Global feed page cache lookups partitioned by result.",
	}, []string{"result"})

	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "yatube",
		Name:      "posts_created_total",
		Help:      "Posts published.",
	})

	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "yatube",
		Name:      "comments_created_total",
		Help:      "Comments added to posts.",
	})

	FollowChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yatube",
		Name:      "follow_changes_total",
		Help:      "Follow edges created or removed.",
	}, []string{"action"})
)
