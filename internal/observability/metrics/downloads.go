package metrics

import (
	"time"

	obserrors "github.com/spotdown/spotdown/internal/observability/errors"
	"github.com/spotdown/spotdown/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// DownloadMetric captures details about a download lifecycle stage for metric emission.
type DownloadMetric struct {
	Stage    string
	Result   string
	Duration time.Duration
	Err      error
}

// EmitDownloadLifecycle emits standardised download lifecycle metrics.
func EmitDownloadLifecycle(sink statsd.Sink, in DownloadMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"stage":  in.Stage,
		"result": in.Result,
	}

	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("download.stage", 1, tags)

	if in.Duration > 0 {
		sink.Timing("download.stage_duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
