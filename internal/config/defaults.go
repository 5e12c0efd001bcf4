package config

import "time"

// defaultConfig returns the values used for every field no other source
// sets. Secrets have no defaults.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-file-keeper",
			TokenDuration: 24 * time.Hour,
			Version:       "dev",
		},
		Storage: Storage{
			DB: DB{
				Driver: DBDriverPostgres,
			},
			Objects: Objects{
				Driver: ObjectsDriverMinio,
				Bucket: "file-keeper",
				Region: "us-east-1",
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
			MaxUploadSize:  50 << 20,
		},
		Workers: Workers{
			RetryMaxElapsed: 5 * time.Second,
			SweepInterval:   time.Minute,
			SweepBatch:      100,
		},
	}
}
