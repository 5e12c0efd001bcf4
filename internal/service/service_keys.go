// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-file-keeper/internal/crypto"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/models"
)

// keyService is the concrete implementation of KeyService. It turns the
// primitives of a crypto.KeyChainService into the three lifecycle steps of
// a user's key material and keeps the base64 storage encoding in one place.
type keyService struct {
	keyChain crypto.KeyChainService

	logger *logger.Logger
}

// NewKeyService constructs a KeyService on top of keyChain.
func NewKeyService(keyChain crypto.KeyChainService, logger *logger.Logger) KeyService {
	return &keyService{
		keyChain: keyChain,
		logger:   logger,
	}
}

// Provision generates the FEK of a new user and wraps it under secret.
//
// Returns ErrKeyMaterialExists if user already has key material and
// ErrInvalidDataProvided for an empty secret.
func (k *keyService) Provision(ctx context.Context, user models.User, secret string) (models.User, []byte, error) {
	log := logger.FromContext(ctx)

	if !user.Keys.IsZero() {
		log.Error().Str("func", "*keyService.Provision").Str("login", user.Login).Msg("key material already exists")
		return models.User{}, nil, ErrKeyMaterialExists
	}
	if secret == "" {
		return models.User{}, nil, ErrInvalidDataProvided
	}

	fek, err := k.keyChain.GenerateFEK()
	if err != nil {
		log.Err(err).Str("func", "*keyService.Provision").Msg("error generating FEK")
		return models.User{}, nil, fmt.Errorf("error generating FEK: %w", err)
	}

	keys, err := k.wrap(fek, secret)
	if err != nil {
		log.Err(err).Str("func", "*keyService.Provision").Msg("error wrapping FEK")
		return models.User{}, nil, err
	}

	user.Keys = keys
	return user, fek, nil
}

// Recover unwraps the FEK of user with secret.
//
// A wrong secret is reported as ErrAuthentication. Stored fields that do not
// decode or have the wrong size are reported as ErrMalformedKeyMaterial.
func (k *keyService) Recover(ctx context.Context, user models.User, secret string) ([]byte, error) {
	fek, err := k.unwrap(user.Keys, secret)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*keyService.Recover").
			Int64("user_id", user.UserID).
			Msg("error recovering FEK")
		return nil, err
	}
	return fek, nil
}

// Rewrap unwraps the FEK with oldSecret and wraps the same FEK under
// newSecret with a new salt and IV. All three stored fields are replaced
// together; on any error the zero user is returned.
func (k *keyService) Rewrap(ctx context.Context, user models.User, oldSecret, newSecret string) (models.User, error) {
	log := logger.FromContext(ctx)

	if newSecret == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	fek, err := k.unwrap(user.Keys, oldSecret)
	if err != nil {
		log.Err(err).Str("func", "*keyService.Rewrap").Int64("user_id", user.UserID).Msg("error unwrapping FEK with old secret")
		return models.User{}, err
	}

	keys, err := k.wrap(fek, newSecret)
	if err != nil {
		log.Err(err).Str("func", "*keyService.Rewrap").Int64("user_id", user.UserID).Msg("error wrapping FEK with new secret")
		return models.User{}, err
	}

	user.Keys = keys
	return user, nil
}

func (k *keyService) wrap(fek []byte, secret string) (models.KeyMaterial, error) {
	salt, err := k.keyChain.GenerateSalt()
	if err != nil {
		return models.KeyMaterial{}, fmt.Errorf("error generating salt: %w", err)
	}
	iv, err := k.keyChain.GenerateIV()
	if err != nil {
		return models.KeyMaterial{}, fmt.Errorf("error generating IV: %w", err)
	}

	kek, err := k.keyChain.DeriveKEK(secret, salt)
	if err != nil {
		return models.KeyMaterial{}, fmt.Errorf("error deriving KEK: %w", err)
	}

	wrapped, err := k.keyChain.WrapFEK(fek, kek, iv)
	if err != nil {
		return models.KeyMaterial{}, fmt.Errorf("error wrapping FEK: %w", err)
	}

	return models.KeyMaterial{
		KEKSalt:    base64.StdEncoding.EncodeToString(salt),
		WrapIV:     base64.StdEncoding.EncodeToString(iv),
		WrappedFEK: base64.StdEncoding.EncodeToString(wrapped),
	}, nil
}

func (k *keyService) unwrap(keys models.KeyMaterial, secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrAuthentication
	}
	if keys.IsZero() {
		return nil, fmt.Errorf("%w: no key material", ErrMalformedKeyMaterial)
	}

	salt, err := base64.StdEncoding.DecodeString(keys.KEKSalt)
	if err != nil {
		return nil, fmt.Errorf("%w: salt: %w", ErrMalformedKeyMaterial, err)
	}
	iv, err := base64.StdEncoding.DecodeString(keys.WrapIV)
	if err != nil {
		return nil, fmt.Errorf("%w: iv: %w", ErrMalformedKeyMaterial, err)
	}
	wrapped, err := base64.StdEncoding.DecodeString(keys.WrappedFEK)
	if err != nil {
		return nil, fmt.Errorf("%w: wrapped FEK: %w", ErrMalformedKeyMaterial, err)
	}

	kek, err := k.keyChain.DeriveKEK(secret, salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedKeyMaterial, err)
	}

	fek, err := k.keyChain.UnwrapFEK(wrapped, kek, iv)
	switch {
	case errors.Is(err, crypto.ErrIntegrity):
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrMalformedKeyMaterial, err)
	}

	if len(fek) != crypto.KeySize {
		return nil, fmt.Errorf("%w: unwrapped key is %d bytes", ErrMalformedKeyMaterial, len(fek))
	}

	return fek, nil
}
