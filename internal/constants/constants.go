package constants

// App identity
const (
	AppName        = "genovault"
	AppDisplayName = "GenoVault"
)

// Paths
const (
	ConfigDir   = ".config/genovault"
	ConfigFile  = "config.yaml"
	InternalDir = ".internal"
	StoreDB     = "genovault.db"
	UploadsDir  = "uploads"
)

// API
const (
	DefaultPort    = 3000
	DefaultBaseURL = "http://localhost:3000"
)

// Database pragmas applied to every connection
var SQLitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA foreign_keys=ON",
}

// Logging
const (
	DefaultLogLevel    = "DEBUG"
	LogsDir            = "logs"
	LogsDirDebug       = "debug"
	LogsDirInfo        = "info"
	LogsDirWarn        = "warn"
	LogsDirError       = "error"
	LogFileExtension   = ".log"
	LogTimestampFormat = "2006-01-02 15:04:05"
)

// Shutdown
const (
	ShutdownTimeoutSecs = 10
)

// Pagination
const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// Filesystem permissions
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)
