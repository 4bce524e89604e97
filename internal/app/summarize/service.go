package summarize

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"bitbucket.org/airenas/meetsum/internal/pkg/api"
	"bitbucket.org/airenas/meetsum/internal/pkg/cmdapp"
	"bitbucket.org/airenas/meetsum/internal/pkg/pipeline"
	"github.com/facebookgo/grace/gracehttp"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/heptiolabs/healthcheck"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const (
	prmAudio        = "audio"
	headerRequestID = "X-Request-ID"

	msgNoAudio = "No audio file uploaded."
	msgFailed  = "Failed to process audio."
)

// Processor runs the transcribe and summarize pipeline
type Processor interface {
	Process(ctx context.Context, audio *api.AudioBlob) (*api.Result, error)
}

// ServiceData keeps data required for service work
type ServiceData struct {
	Processor Processor
	StaticDir string

	Port    int
	health  healthcheck.Handler
	metrics serviceMetric
}

//StartWebServer starts the HTTP service and listens for the requests
func StartWebServer(data *ServiceData) error {
	cmdapp.Log.Infof("Starting HTTP service at %d", data.Port)
	r := NewRouter(data)

	portStr := strconv.Itoa(data.Port)
	srv := http.Server{
		Addr:              ":" + portStr,
		ReadHeaderTimeout: 5 * time.Second,
		Handler:           cors.Default().Handler(r),
	}

	w := cmdapp.Log.Writer()
	defer w.Close()
	l := log.New(w, "", 0)
	gracehttp.SetLogger(l)

	cmdapp.Log.Infof("Server running at http://localhost:%s", portStr)
	return gracehttp.Serve(&srv)
}

//NewRouter creates the router for HTTP service
func NewRouter(data *ServiceData) *mux.Router {
	router := mux.NewRouter()
	var sh http.Handler = summarizeHandler{data: data}
	if data.metrics.responseDur != nil {
		sh = promhttp.InstrumentHandlerDuration(data.metrics.responseDur,
			promhttp.InstrumentHandlerRequestSize(data.metrics.requestSize, sh))
	}
	router.Methods("POST").Path("/api/summarize").Handler(sh)
	router.Methods("GET").Path("/metrics").Handler(promhttp.Handler())
	if data.health != nil {
		router.Methods("GET").Path("/live").HandlerFunc(data.health.LiveEndpoint)
		router.Methods("GET").Path("/ready").HandlerFunc(data.health.ReadyEndpoint)
	}
	if data.StaticDir != "" {
		router.Methods("GET", "HEAD").PathPrefix("/").Handler(http.FileServer(http.Dir(data.StaticDir)))
	}
	return router
}

type summarizeHandler struct {
	data *ServiceData
}

func (h summarizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	w.Header().Set(headerRequestID, id)
	lg := cmdapp.Log.WithField("id", id)
	lg.Infof("Summarize request from %s", r.Host)

	audio, err := takeAudio(r)
	defer cleanFiles(r.MultipartForm)
	if err != nil {
		lg.Warn(err)
		writeJSON(w, http.StatusBadRequest, api.ErrorResult{Error: msgNoAudio}, lg)
		return
	}
	lg.Infof("Got audio '%s', size %d", audio.Name, len(audio.Data))

	res, err := h.data.Processor.Process(r.Context(), audio)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoAudio) {
			lg.Warn(err)
			writeJSON(w, http.StatusBadRequest, api.ErrorResult{Error: msgNoAudio}, lg)
			return
		}
		lg.WithField("stage", pipeline.StageOf(err)).Errorf("Error in /api/summarize: %v", err)
		writeJSON(w, http.StatusInternalServerError, api.ErrorResult{Error: msgFailed}, lg)
		return
	}
	writeJSON(w, http.StatusOK, res, lg)
}

func takeAudio(r *http.Request) (*api.AudioBlob, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, errors.Wrap(err, "Can't parse MultipartForm")
	}
	file, handler, err := r.FormFile(prmAudio)
	if err != nil {
		return nil, errors.Wrapf(err, "no form param %s", prmAudio)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read file")
	}
	res := &api.AudioBlob{Name: handler.Filename, Data: data}
	if res.Empty() {
		return nil, errors.Wrapf(pipeline.ErrNoAudio, "empty file '%s'", handler.Filename)
	}
	return res, nil
}

func writeJSON(w http.ResponseWriter, code int, v interface{}, lg *logrus.Entry) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		lg.Error(errors.Wrap(err, "Can not write result"))
	}
}

func cleanFiles(f *multipart.Form) {
	if f != nil {
		cmdapp.LogIf(f.RemoveAll())
	}
}
