package jterm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricFramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jterm",
		Name:      "frames_rendered_total",
		Help:      "Frames painted because the widget tree was dirty.",
	})
	metricFrameDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "jterm",
		Name:      "frame_duration_seconds",
		Help:      "Time spent measuring, laying out and painting one frame.",
		Buckets:   []float64{.0005, .001, .002, .004, .008, .016, .033, .066, .1},
	})
	metricFrameOverruns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jterm",
		Name:      "frame_overruns_total",
		Help:      "Ticks whose work exceeded the frame period.",
	})
	metricInputEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jterm",
		Name:      "input_events_total",
		Help:      "Decoded input events dispatched into the widget tree, by kind.",
	}, []string{"kind"})
	metricUnknownSequences = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jterm",
		Name:      "unknown_sequences_total",
		Help:      "Escape sequences the decoder could not map to a key.",
	})
	metricMessagesPosted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jterm",
		Name:      "messages_posted_total",
		Help:      "Messages posted to the application, by message type.",
	}, []string{"type"})
	metricMessagesUnhandled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jterm",
		Name:      "messages_unhandled_total",
		Help:      "Posted messages with no registered handler.",
	})
)
