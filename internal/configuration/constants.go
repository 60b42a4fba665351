package configuration

const AppName = "kycadmin"

// Upload targets.
const (
	UploadTargetAPI     = "api"
	UploadTargetStorage = "storage"
)

// Storage, messaging and sink provider types.
const (
	ProviderMinio      = "minio"
	ProviderMemory     = "memory"
	ProviderFilesystem = "filesystem"
	ProviderLog        = "log"
	ProviderNone       = "none"
)

const EventsNotifications = "notifications"

// DraftSweepIntervalMinutes is how often expired upload drafts are removed.
const DraftSweepIntervalMinutes = 5

// DefaultAPIBaseURL is the upstream KYC API used when nothing is configured.
const DefaultAPIBaseURL = "http://localhost:8080/api"

var ArrayConfigFields = []string{
	"app.allowed_origins",
}

var ConfigFileSearchPaths = []string{
	"./config.yaml",
	"templates/config.yaml",
}
