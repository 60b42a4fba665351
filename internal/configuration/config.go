package configuration

import (
	"os"
	"strings"

	"kycadmin/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

func parseArrayFields(k *koanf.Koanf) {
	for _, field := range ArrayConfigFields {
		if stringVal := k.String(field); stringVal != "" {
			stringVal = strings.Trim(stringVal, "[]")
			var items []string
			if strings.Contains(stringVal, ",") {
				items = strings.Split(stringVal, ",")
			} else {
				items = strings.Fields(stringVal)
			}
			for i, item := range items {
				items[i] = strings.TrimSpace(item)
			}
			err := k.Set(field, items)
			if err != nil {
				zap.L().
					Error("Error parsing array field", zap.String("field", field), zap.Error(err))
			}
		}
	}
}

func readEnvVars(k *koanf.Koanf) {
	err := k.Load(env.Provider("", ".", func(s string) string {
		s = strings.ToLower(s)
		segments := strings.Split(s, "__")
		return strings.Join(segments, ".")
	}), nil)
	if err != nil {
		zap.L().Warn("Error loading environment variables", zap.Error(err))
	}

	parseArrayFields(k)
}

func readFileConfig(k *koanf.Koanf) {
	configFilePath := os.Getenv("CONFIG_FILE_PATH")
	var filePath string
	if configFilePath == "" {
		for _, path := range ConfigFileSearchPaths {
			if _, err := os.Stat(path); err == nil {
				filePath = path
				break
			}
		}
	} else {
		filePath = configFilePath
	}

	if filePath != "" {
		err := k.Load(file.Provider(filePath), yaml.Parser())
		if err != nil {
			zap.L().
				Fatal("Fatal error loading config file", zap.String("path", filePath), zap.Error(err))
		}
		zap.L().Info("Read configuration from file " + filePath)
	} else {
		zap.L().Warn("No configuration file found")
	}
}

func loadDefaults(k *koanf.Koanf) {
	defaults := map[string]interface{}{
		"app.log_level":         "info",
		"app.port":              3000,
		"app.allowed_origins":   []string{"*"},
		"app.max_upload_size":   int64(104857600),
		"app.draft_ttl_minutes": 60,

		"api.base_url":        DefaultAPIBaseURL,
		"api.timeout_seconds": 0,

		"upload.target": UploadTargetAPI,

		"events.type":                      ProviderMemory,
		"events.queues.notifications.name": "kycadmin-notifications",

		"notifier.type":        ProviderLog,
		"activity.type":        ProviderNone,
		"tracing.enabled":      false,
		"tracing.insecure":     true,
		"tracing.service_name": AppName,
	}

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		zap.L().Fatal("Failed to load default configuration", zap.Error(err))
	}
}

func setIfMissing(k *koanf.Koanf, key string, value interface{}) {
	if !k.Exists(key) {
		_ = k.Set(key, value)
	}
}

func loadConditionalDefaults(k *koanf.Koanf) {
	if k.String("storage.type") == ProviderMinio {
		setIfMissing(k, "storage.minio.region", "us-east-1")
	}
	if k.String("notifier.type") == ProviderFilesystem {
		setIfMissing(k, "notifier.filesystem.directory", "data/notifications")
	}
	if k.String("activity.type") == ProviderFilesystem {
		setIfMissing(k, "activity.filesystem.directory", "data/activity")
	}
}

// Load reads defaults, the optional YAML file and the environment into a
// validated configuration.
func Load() (models.Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)
	readFileConfig(k)
	readEnvVars(k)
	loadConditionalDefaults(k)

	var config models.Configuration
	err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{Tag: "mapstructure"})
	if err != nil {
		return models.Configuration{}, err
	}

	if err = Validate(config); err != nil {
		return models.Configuration{}, err
	}

	return config, nil
}

// Validate checks struct tags and the cross-section rules they cannot express.
func Validate(config models.Configuration) error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return err
	}
	if config.Upload.Target == UploadTargetStorage && config.Storage.Type == "" {
		return ErrStorageRequired
	}
	return nil
}

func Read() models.Configuration {
	config, err := Load()
	if err != nil {
		zap.L().Fatal("Invalid configuration", zap.Error(err))
	}
	return config
}
