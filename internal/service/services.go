package service

import (
	"fmt"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/crypto"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/store"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/internal/validators"
	"github.com/MKhiriev/go-file-keeper/models"
)

type Services struct {
	KeyService      KeyService
	AuthService     AuthService
	FolderService   FolderService
	FileService     FileService
	ReminderService ReminderService
	TreeService     TreeService
	AppInfoService  AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	keyChain := crypto.NewKeyChainService()
	validator := validators.NewFileKeeperValidator()
	keyService := NewKeyService(keyChain, logger)

	return &Services{
		KeyService:      keyService,
		AuthService:     NewAuthService(storages, keyService, validator, cfg.App, logger),
		FolderService:   NewFolderService(storages, validator, logger),
		FileService:     NewFileService(storages, keyChain, utils.NewUUIDGenerator(), validator, logger),
		ReminderService: NewReminderService(storages, validator, logger),
		TreeService:     NewTreeService(storages, logger),
		AppInfoService:  appInfoService,
	}, nil
}
