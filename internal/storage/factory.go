package storage

import "strings"

// NewStorage creates the media storage client. When cfg.Type is empty the
// backend flavor is inferred from the endpoint host, so a plain R2 or AWS
// endpoint needs no explicit type in config.
func NewStorage(cfg *S3Config) (ObjectStorage, error) {
	if cfg.Type == "" {
		cfg.Type = detectStorageType(cfg.Endpoint)
	}
	return NewS3Storage(cfg)
}

func detectStorageType(endpoint string) StorageType {
	host := strings.ToLower(endpoint)
	if strings.Contains(host, "r2.cloudflarestorage.com") {
		return StorageTypeR2
	}
	if strings.Contains(host, "amazonaws.com") {
		return StorageTypeS3
	}
	return StorageTypeS3Compatible
}
