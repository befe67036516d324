package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eduassist",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eduassist",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	ChatsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eduassist",
		Name:      "chats_created_total",
		Help:      "Chats created by createOrGetChat.",
	})

	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eduassist",
		Name:      "messages_sent_total",
		Help:      "Chat messages sent.",
	})

	PushFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eduassist",
		Name:      "push_failures_total",
		Help:      "Push notifications that could not be delivered, by kind.",
	}, []string{"kind"})
)
