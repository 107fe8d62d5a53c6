package module

import (
	"time"

	"demovault/internal/platform/config"
)

// Options controls the ingestion pipeline and its outbound clients
type Options struct {
	// local demo directory
	Dir string

	// history walker
	WalkMaxSteps int
	WalkPause    time.Duration

	// steam web api client
	SteamBaseURL string
	SteamUA      string
	SteamTimeout time.Duration
	SteamAPIKey  string

	// analysis queue
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	QueueKey      string

	// optional object storage mirror
	BlobEnabled    bool
	BlobBucket     string
	BlobRegion     string
	BlobEndpoint   string
	BlobAccessKey  string
	BlobSecretKey  string
}

// FromConfig reads DEMOS_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	dc := cfg.Prefix("DEMOS_")
	return Options{
		Dir:          dc.MayString("DIR", "demos"),
		WalkMaxSteps: dc.MayInt("WALK_MAX_STEPS", 10),
		WalkPause:    dc.MayDuration("WALK_PAUSE", 200*time.Millisecond),

		SteamBaseURL: dc.MayString("STEAM_BASE_URL", ""),
		SteamUA:      dc.MayString("STEAM_UA", "demovault-ingest"),
		SteamTimeout: dc.MayDuration("STEAM_TIMEOUT", 10*time.Second),
		SteamAPIKey:  dc.MayString("STEAM_API_KEY", ""),

		RedisAddr:     dc.MayString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: dc.MayString("REDIS_PASSWORD", ""),
		RedisDB:       dc.MayInt("REDIS_DB", 0),
		QueueKey:      dc.MayString("QUEUE_KEY", ""),

		BlobEnabled:   dc.MayBool("BLOB_ENABLED", false),
		BlobBucket:    dc.MayString("BLOB_BUCKET", ""),
		BlobRegion:    dc.MayString("BLOB_REGION", "auto"),
		BlobEndpoint:  dc.MayString("BLOB_ENDPOINT", ""),
		BlobAccessKey: dc.MayString("BLOB_ACCESS_KEY", ""),
		BlobSecretKey: dc.MayString("BLOB_SECRET_KEY", ""),
	}
}
