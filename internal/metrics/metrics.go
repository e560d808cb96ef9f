package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	previewsSavedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sitegen_previews_saved_total",
		Help: "Total number of preview records written",
	})
	corruptRecordsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sitegen_storage_corrupt_records_total",
		Help: "Stored preview payloads that could not be decoded and were treated as absent",
	})
	templateFallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sitegen_template_fallbacks_total",
		Help: "Silent template fallbacks by kind (default_data, unknown_template, schema_mismatch)",
	}, []string{"kind"})
	loginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sitegen_login_attempts_total",
		Help: "Shared-password login attempts by scope and result",
	}, []string{"scope", "result"})
	rateLimitedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sitegen_rate_limited_total",
		Help: "Requests rejected by a rate limiter",
	}, []string{"limiter"})
	renderTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sitegen_render_total",
		Help: "Preview pages rendered by renderer",
	}, []string{"renderer"})
	panicsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sitegen_http_panics_total",
		Help: "Handler panics recovered, by route template",
	}, []string{"route"})
	buildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sitegen_build_info",
		Help: "Always 1; labels carry the running build",
	}, []string{"version", "commit", "go_version"})

	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sitegen_http_requests_total",
		Help: "Total number of HTTP requests received",
	}, []string{"endpoint", "status", "method"})
	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sitegen_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "method"})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry prometheus.Registerer) {
	registry.MustRegister(
		previewsSavedTotal,
		corruptRecordsTotal,
		templateFallbacksTotal,
		loginAttemptsTotal,
		rateLimitedTotal,
		renderTotal,
		panicsTotal,
		buildInfo,
		httpRequestsTotal,
		httpRequestDuration,
	)
}

// IncPreviewSaved increments the saved previews counter.
func IncPreviewSaved() { previewsSavedTotal.Inc() }

// IncCorruptRecord counts a stored payload that failed to decode.
func IncCorruptRecord() { corruptRecordsTotal.Inc() }

// IncTemplateFallback counts a silent template fallback of the given kind.
func IncTemplateFallback(kind string) { templateFallbacksTotal.WithLabelValues(kind).Inc() }

// IncLoginAttempt counts a login attempt; result is "success", "failure" or "error".
func IncLoginAttempt(scope, result string) { loginAttemptsTotal.WithLabelValues(scope, result).Inc() }

// IncRateLimited counts a request rejected by the named limiter.
func IncRateLimited(limiter string) { rateLimitedTotal.WithLabelValues(limiter).Inc() }

// IncRender counts a rendered preview page.
func IncRender(renderer string) { renderTotal.WithLabelValues(renderer).Inc() }

// IncPanic counts a recovered handler panic.
func IncPanic(route string) { panicsTotal.WithLabelValues(route).Inc() }

// SetBuildInfo publishes the running build. Earlier label sets are dropped.
func SetBuildInfo(version, commit, goVersion string) {
	buildInfo.Reset()
	buildInfo.WithLabelValues(version, commit, goVersion).Set(1)
}

// ObserveHTTPRequest records a handled request.
func ObserveHTTPRequest(endpoint, method, status string, seconds float64) {
	httpRequestsTotal.WithLabelValues(endpoint, status, method).Inc()
	httpRequestDuration.WithLabelValues(endpoint, method).Observe(seconds)
}
