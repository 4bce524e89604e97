package summarize

import (
	"time"

	"bitbucket.org/airenas/meetsum/internal/pkg/cmdapp"
	"bitbucket.org/airenas/meetsum/internal/pkg/pipeline"
	"bitbucket.org/airenas/meetsum/internal/pkg/summarizer"
	"bitbucket.org/airenas/meetsum/internal/pkg/transcriber"
	"bitbucket.org/airenas/meetsum/internal/pkg/utils"
	"github.com/heptiolabs/healthcheck"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "summarizeService",
	Short: "Meeting Audio Summarization Service",
	Long:  `HTTP server to transcribe uploaded meeting audio and summarize the transcript`,
	Run:   run,
}

func init() {
	cmdapp.InitApplication(rootCmd)
	rootCmd.PersistentFlags().Int32P("port", "", 3000, "Default service port")
	cmdapp.Config.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	setDefaults()
}

func setDefaults() {
	cmdapp.Config.SetDefault("port", 3000)
	cmdapp.Config.SetDefault("groq.url", "https://api.groq.com/openai/v1")
	cmdapp.Config.SetDefault("transcriber.model", transcriber.DefaultModel)
	cmdapp.Config.SetDefault("summarizer.model", summarizer.DefaultModel)
	cmdapp.Config.SetDefault("upstream.retries", 0)
	cmdapp.Config.SetDefault("static.dir", "public")
}

//Execute starts the server
func Execute() {
	cmdapp.Execute(rootCmd)
}

func run(cmd *cobra.Command, args []string) {
	cmdapp.Log.Info("Starting summarizeService")
	data, err := newServiceData()
	cmdapp.CheckOrPanic(err, "Can't init service")

	err = StartWebServer(data)
	cmdapp.CheckOrPanic(err, "Can't start web server")
}

// ErrNoAPIKey is returned at startup when the upstream credential is not configured
var ErrNoAPIKey = errors.New("No groq.api_key (GROQ_API_KEY) provided")

func newServiceData() (*ServiceData, error) {
	apiKey := cmdapp.Config.GetString("groq.api_key")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	url, err := utils.GetURLFromConfig("groq.url")
	if err != nil {
		return nil, err
	}
	cmdapp.Log.Infof("Upstream API: %s", utils.URLToLog(url))
	oc, err := utils.NewOpenAIClient(apiKey, url, cmdapp.Config.GetInt("upstream.retries"))
	if err != nil {
		return nil, errors.Wrap(err, "Can't init API client")
	}

	data := &ServiceData{Port: cmdapp.Config.GetInt("port"), StaticDir: cmdapp.Config.GetString("static.dir")}
	if err := initMetrics(data); err != nil {
		return nil, errors.Wrap(err, "Can't init metrics")
	}

	tr, err := transcriber.NewClient(oc, cmdapp.Config.GetString("transcriber.model"))
	if err != nil {
		return nil, errors.Wrap(err, "Can't init transcriber")
	}
	sm, err := summarizer.NewClient(oc, cmdapp.Config.GetString("summarizer.model"))
	if err != nil {
		return nil, errors.Wrap(err, "Can't init summarizer")
	}
	data.Processor, err = pipeline.New(instrumentedTranscriber{next: tr, metrics: data.metrics.stages},
		instrumentedSummarizer{next: sm, metrics: data.metrics.stages})
	if err != nil {
		return nil, errors.Wrap(err, "Can't init pipeline")
	}

	data.health = healthcheck.NewHandler()
	host, err := utils.HostName(url)
	if err != nil {
		return nil, err
	}
	data.health.AddReadinessCheck("upstream-dns", healthcheck.Async(healthcheck.DNSResolveCheck(host, 2*time.Second), 30*time.Second))
	return data, nil
}
