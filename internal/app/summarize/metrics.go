package summarize

import (
	"context"
	"time"

	"bitbucket.org/airenas/meetsum/internal/pkg/api"
	"bitbucket.org/airenas/meetsum/internal/pkg/metrics"
	"bitbucket.org/airenas/meetsum/internal/pkg/pipeline"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "summarize_service"

type serviceMetric struct {
	responseDur prometheus.ObserverVec
	requestSize prometheus.ObserverVec
	stages      *metrics.StageMetrics
}

func initMetrics(data *ServiceData) error {
	dur := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "summarize_request_durations_seconds",
			Help:      "Summarize request latency distributions.",
			Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 40, 80, 160, 320},
		}, []string{"code"})
	if err := metrics.Register(dur); err != nil {
		return err
	}
	size := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace: namespace,
			Name:      "summarize_request_size_bytes",
			Help:      "Summarize request size in bytes."}, nil)
	if err := metrics.Register(size); err != nil {
		return err
	}
	stages, err := metrics.NewStageMetrics(namespace)
	if err != nil {
		return err
	}
	data.metrics = serviceMetric{responseDur: dur, requestSize: size, stages: stages}
	return nil
}

type instrumentedTranscriber struct {
	next    pipeline.Transcriber
	metrics *metrics.StageMetrics
}

func (it instrumentedTranscriber) Transcribe(ctx context.Context, audio *api.AudioBlob) (string, error) {
	start := time.Now()
	res, err := it.next.Transcribe(ctx, audio)
	it.metrics.Observe(string(pipeline.StageTranscription), start, err)
	return res, err
}

type instrumentedSummarizer struct {
	next    pipeline.Summarizer
	metrics *metrics.StageMetrics
}

func (is instrumentedSummarizer) Summarize(ctx context.Context, transcript string) (*api.Summary, error) {
	start := time.Now()
	res, err := is.next.Summarize(ctx, transcript)
	is.metrics.Observe(string(pipeline.StageSummarization), start, err)
	return res, err
}
