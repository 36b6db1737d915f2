package constants

import "time"

// Request handling
const (
	DefaultTimeout        = 30 * time.Second
	DefaultRequestTimeout = 10 * time.Second
)

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Echo context keys
const (
	ContextTokenData = "token_data"
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Actor roles carried in JWT claims
const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
)

// Redis key prefixes
const (
	RedisKeyTokenBlacklist = "token:blacklist:"
	RedisKeyTutorSearch    = "tutors:search:"
)

// Cache TTLs
const (
	BlockDuration        = 24 * time.Hour
	TutorSearchCacheTTL  = 2 * time.Minute
)

// Asynq task types and queues
const (
	TaskSweepNoShows         = "booking:sweep_no_shows"
	TaskDispatchNotification = "notification:dispatch"
	QueueDefault             = "default"
)
