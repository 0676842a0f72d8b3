package constants

import "time"

const (
	MaxDays           = 5
	DayOvers          = 16
	SessionOvers      = 8
	BallsPerOver      = 6
	XISize            = 11
	MaxWickets        = 10
	FollowOnThreshold = 200
)

const (
	MaxBowlerSessionOvers = 2
	MaxBowlerDayOvers     = 4
)

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	WebhookTimeout  = 10 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	MaxSeriesTests     = 10
	CommentaryPageSize = 500
)
