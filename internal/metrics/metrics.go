package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks the post pipeline, follow transitions and best-effort side effects
type Metrics struct {
	PostsCreated        prometheus.Counter
	PostCreateFailures  *prometheus.CounterVec
	PostCreateLatency   prometheus.Histogram
	FollowTransitions   *prometheus.CounterVec
	FollowFailures      *prometheus.CounterVec
	MetadataFetches     prometheus.Counter
	MetadataFailures    prometheus.Counter
	MetadataCacheHits   prometheus.Counter
	NotificationsSent   prometheus.Counter
	NotificationSkipped prometheus.Counter
	NotificationFailure prometheus.Counter
	BroadcastFailures   prometheus.Counter
	EngagementFailures  prometheus.Counter
	DispatchDropped     prometheus.Counter
}

// New creates and registers the metrics. A nil registry uses the default one.
func New(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	f := promauto.With(registry)

	return &Metrics{
		PostsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "agora_posts_created_total",
			Help: "Total number of posts created and assigned a federated id",
		}),
		PostCreateFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agora_post_create_failures_total",
			Help: "Post submissions rejected, by error code",
		}, []string{"code"}),
		PostCreateLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "agora_post_create_latency_seconds",
			Help:    "Post submission pipeline latency",
			Buckets: prometheus.DefBuckets,
		}),
		FollowTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agora_follow_transitions_total",
			Help: "Community membership transitions, by target state",
		}, []string{"transition"}),
		FollowFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agora_follow_failures_total",
			Help: "Rejected follow/unfollow requests, by error code",
		}, []string{"code"}),
		MetadataFetches: f.NewCounter(prometheus.CounterOpts{
			Name: "agora_metadata_fetches_total",
			Help: "Link metadata fetch attempts",
		}),
		MetadataFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "agora_metadata_fetch_failures_total",
			Help: "Link metadata fetches that degraded to empty metadata",
		}),
		MetadataCacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "agora_metadata_cache_hits_total",
			Help: "Link metadata served from cache",
		}),
		NotificationsSent: f.NewCounter(prometheus.CounterOpts{
			Name: "agora_link_notifications_sent_total",
			Help: "Link notifications delivered",
		}),
		NotificationSkipped: f.NewCounter(prometheus.CounterOpts{
			Name: "agora_link_notifications_skipped_total",
			Help: "Link notifications skipped because the target has no endpoint",
		}),
		NotificationFailure: f.NewCounter(prometheus.CounterOpts{
			Name: "agora_link_notification_failures_total",
			Help: "Link notifications that failed",
		}),
		BroadcastFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "agora_broadcast_failures_total",
			Help: "Realtime broadcasts that failed",
		}),
		EngagementFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "agora_engagement_bootstrap_failures_total",
			Help: "Creator upvote or read-mark writes that failed after post creation",
		}),
		DispatchDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "agora_dispatch_dropped_total",
			Help: "Side-effect jobs dropped because the dispatch queue was full",
		}),
	}
}

// NewNop returns metrics registered on a throwaway registry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
