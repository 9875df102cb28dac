package perf

import (
	"expvar"
	"net/http"

	"github.com/encodeous/metric"
)

var (
	DispatchLatency = metric.NewHistogram("1m1s")
	PreqProcessed   = metric.NewCounter("10s1s")
	PrepProcessed   = metric.NewCounter("10s1s")
	PerrProcessed   = metric.NewCounter("10s1s")
	PerrSuppressed  = metric.NewCounter("10s1s")
	ElementsDropped = metric.NewCounter("10s1s")
	FramesDropped   = metric.NewCounter("10s1s")
	FramesSent      = metric.NewCounter("10s1s")
	FramesReceived  = metric.NewCounter("10s1s")
)

func init() {
	http.Handle("/debug/metrics", metric.Handler(metric.Exposed))
	expvar.Publish("hwmp:Preq/s", PreqProcessed)
	expvar.Publish("hwmp:Prep/s", PrepProcessed)
	expvar.Publish("hwmp:Perr/s", PerrProcessed)
	expvar.Publish("hwmp:PerrSuppressed/s", PerrSuppressed)
	expvar.Publish("hwmp:ElementsDropped/s", ElementsDropped)
	expvar.Publish("hwmp:FramesDropped/s", FramesDropped)
	expvar.Publish("hwmp:FramesSent/s", FramesSent)
	expvar.Publish("hwmp:FramesReceived/s", FramesReceived)
	expvar.Publish("hwmp:DispatchLatency (µs)", DispatchLatency)
}
