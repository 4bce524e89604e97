package utils

import (
	"net/http"

	"bitbucket.org/airenas/meetsum/internal/pkg/cmdapp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

//NewHTTPClient creates http client for upstream calls.
//retries = 0 makes exactly one call. Non 2xx responses are returned to the caller unchanged.
func NewHTTPClient(retries int) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retries
	rc.Logger = leveledLogger{log: cmdapp.Log}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return rc.StandardClient()
}

// leveledLogger passes retryablehttp logs to logrus
type leveledLogger struct {
	log *logrus.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(toFields(keysAndValues)).Error(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(toFields(keysAndValues)).Debug(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(toFields(keysAndValues)).Trace(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(toFields(keysAndValues)).Warn(msg)
}

func toFields(keysAndValues []interface{}) logrus.Fields {
	res := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if k, ok := keysAndValues[i].(string); ok {
			res[k] = keysAndValues[i+1]
		}
	}
	return res
}
