package constants

const (
	AppName            = "meditrack"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/meditrack"
	DefaultStorePath   = "~/.config/meditrack/meditrack.db"
	DefaultConfigFile  = "~/.config/meditrack/config.json"
	Version            = "v0.1.0"

	// DateFormat is the canonical day key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is used for --month flags (YYYY-MM)
	MonthFormat = "2006-01"

	// Persisted keys
	PlanTextKey    = "meditation-plan-text"
	CompletionsKey = "meditation-completions"
	ManualPlanKey  = "meditation-manual-plan"

	// Default ramp configuration
	DefaultStartDuration  = 10
	DefaultTargetDuration = 60
	DefaultRampDays       = 30

	// Default ramp values are rounded to this many minutes
	RampRoundingStep = 5

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "meditrack-"
	BackupFileSuffix = ".db"

	// Lock constants
	LockfileName = "meditrack.lock"

	DaysPerWeek = 7
)
