package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// ============================================
// Standard Tracing Fields (Context level)
// These fields are propagated through the call chain
// ============================================

const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldQueryID is the chat pipeline correlation ID
	FieldQueryID = "query_id"

	// FieldConversationID identifies the conversation a turn belongs to
	FieldConversationID = "conversation_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldRoute is the resolved pipeline route label
	FieldRoute = "route"

	// FieldLanguage is the detected message language
	FieldLanguage = "language"
)

// ============================================
// Standard Metric Fields (Entry level)
// These fields are used for aggregation and alerting
// ============================================

const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation status
	FieldStatus = "status"

	// FieldCacheHit records whether the decision cache answered the request
	FieldCacheHit = "cache_hit"
)
