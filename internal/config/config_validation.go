// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token issuer and a positive token duration are required", ErrInvalidAppConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DBDriverPostgres, DBDriverSQLite:
	default:
		return fmt.Errorf("%w: unknown db driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: db dsn is required", ErrInvalidStorageConfigs)
	}

	objects := cfg.Storage.Objects
	switch objects.Driver {
	case ObjectsDriverMemory:
	case ObjectsDriverMinio:
		if objects.Endpoint == "" || objects.Bucket == "" || objects.AccessKeyID == "" || objects.SecretAccessKey == "" {
			return fmt.Errorf("%w: minio needs endpoint, bucket and credentials", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown objects driver %q", ErrInvalidStorageConfigs, objects.Driver)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 || cfg.Server.MaxUploadSize <= 0 {
		return fmt.Errorf("%w: address, request timeout and upload size are required", ErrInvalidServerConfigs)
	}

	return nil
}
