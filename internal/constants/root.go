package constants

const (
	AppName            = "streakly"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/streakly/streakly.db"
	Version            = "v0.3.0"

	// DateFormat is the day key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// HabitsKey is the storage key of the canonical habit list
	HabitsKey = "habits"

	// Environment variables
	EnvConfig            = "STREAKLY_CONFIG"
	EnvDebug             = "STREAKLY_DEBUG"
	EnvDBConnection      = "STREAKLY_DB_CONNECTION"
	EnvTestPostgres      = "STREAKLY_TEST_POSTGRES"
	LockfileName         = "streakly.lock"
	LogDirName           = "logs"
	LogFileName          = "streakly.log"
	DefaultQuoteFallback = "productivity"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "streakly-"
)
