package httplog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/nats-io/nuid"
	log "github.com/sirupsen/logrus"
	"github.com/taskcal/project/internal/platform/metrics"
)

var requestsTotal = metrics.NewCounterVec(metrics.Opts{
	Name: "http_requests_total",
	Help: "HTTP requests by method, path and status.",
}, []string{"method", "path", "status"})

func init() {
	metrics.Default.MustRegister(requestsTotal)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// Middleware assigns each request an id, records a counter sample and logs
// method, path, status and latency once the handler returns.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := nuid.Next()
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		requestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(status)).Inc()
		log.WithField("request_id", requestID).
			WithField("method", r.Method).
			WithField("path", r.URL.Path).
			WithField("status", status).
			WithField("latency", time.Since(start)).
			Info("http request processed")
	})
}
