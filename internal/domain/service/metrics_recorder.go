package service

import "time"

// MetricsRecorder receives operation outcomes from the use cases and the HTTP layer.
// outcome is "ok" or the business error code that ended the operation.
type MetricsRecorder interface {
	RecordAuth(operation, outcome string)
	RecordCollectionOp(collection, op, outcome string)
	RecordHTTPRequest(method, route string, status int, elapsed time.Duration)
}
