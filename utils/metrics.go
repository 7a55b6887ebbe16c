package utils

import (
	"github.com/DataDog/datadog-go/statsd"
)

const (
	MetricUserRegistered = "socialmux.user.registered"
	MetricPostCreated    = "socialmux.post.created"
	MetricCommentCreated = "socialmux.comment.created"
	MetricFollowCreated  = "socialmux.follow.created"
)

// NewDogStatsdClient returns a statsd client sending to addr, or a client
// that drops every metric when addr is empty.
func NewDogStatsdClient(addr string) (statsd.ClientInterface, error) {
	if addr == "" {
		return &statsd.NoOpClient{}, nil
	}
	return statsd.New(addr)
}
