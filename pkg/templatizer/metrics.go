package templatizer

// Metric keys emitted through the go-metrics global sink.
var (
	metricCompile     = []string{"templatizer", "compile"}
	metricRender      = []string{"templatizer", "render"}
	metricRenderError = []string{"templatizer", "render", "error"}
	metricCacheHit    = []string{"templatizer", "cache", "hit"}
	metricCacheMiss   = []string{"templatizer", "cache", "miss"}
)
