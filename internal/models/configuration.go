package models

import "time"

type Configuration struct {
	App      AppConfiguration      `mapstructure:"app"      validate:"required"`
	API      APIConfiguration      `mapstructure:"api"      validate:"required"`
	Upload   UploadConfiguration   `mapstructure:"upload"   validate:"required"`
	Storage  StorageConfiguration  `mapstructure:"storage"`
	Events   EventsConfiguration   `mapstructure:"events"   validate:"required"`
	Notifier NotifierConfiguration `mapstructure:"notifier" validate:"required"`
	Activity ActivityConfiguration `mapstructure:"activity" validate:"required"`
	Tracing  TracingConfiguration  `mapstructure:"tracing"`
}

type AppConfiguration struct {
	LogLevel        string   `mapstructure:"log_level"         validate:"oneof=debug info warn error fatal panic"`
	Port            int      `mapstructure:"port"              validate:"gte=80,lte=65535"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	MaxUploadSize   int64    `mapstructure:"max_upload_size"   validate:"gte=1"`
	DraftTTLMinutes int      `mapstructure:"draft_ttl_minutes" validate:"gte=1,lte=1440"`
	DraftDirectory  string   `mapstructure:"draft_directory"`
}

// DraftTTL returns how long an abandoned upload draft is kept on disk.
func (c *AppConfiguration) DraftTTL() time.Duration {
	return time.Duration(c.DraftTTLMinutes) * time.Minute
}

// APIConfiguration points at the upstream KYC REST API.
// A zero timeout leaves requests on transport defaults.
type APIConfiguration struct {
	BaseURL        string `mapstructure:"base_url"        validate:"required,http_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0,lte=600"`
}

func (c *APIConfiguration) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type UploadConfiguration struct {
	Target string `mapstructure:"target" validate:"required,oneof=api storage"`
}

type StorageConfiguration struct {
	Type  string                     `mapstructure:"type"  validate:"omitempty,oneof=minio"`
	Minio *MinioStorageConfiguration `mapstructure:"minio" validate:"required_if=Type minio"`
}

type MinioStorageConfiguration struct {
	Endpoint  string `mapstructure:"endpoint"   validate:"required"`
	AccessKey string `mapstructure:"access_key" validate:"required"`
	SecretKey string `mapstructure:"secret_key" validate:"required"`
	Region    string `mapstructure:"region"`
	UseTLS    bool   `mapstructure:"use_tls"`
}

type QueueConfig struct {
	Name string `mapstructure:"name" validate:"required"`
}

type EventsConfiguration struct {
	Type   string                 `mapstructure:"type"   validate:"required,oneof=memory"`
	Queues map[string]QueueConfig `mapstructure:"queues" validate:"required,dive"`
}

type NotifierConfiguration struct {
	Type       string                           `mapstructure:"type"       validate:"required,oneof=log filesystem"`
	Filesystem *FilesystemNotifierConfiguration `mapstructure:"filesystem" validate:"required_if=Type filesystem"`
}

type FilesystemNotifierConfiguration struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

type ActivityConfiguration struct {
	Type       string                           `mapstructure:"type"       validate:"required,oneof=none filesystem"`
	Filesystem *FilesystemActivityConfiguration `mapstructure:"filesystem" validate:"required_if=Type filesystem"`
}

type FilesystemActivityConfiguration struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

type TracingConfiguration struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"     validate:"required_if=Enabled true"`
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool   `mapstructure:"insecure"`
}
