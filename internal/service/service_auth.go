package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/store"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/internal/validators"
	"github.com/MKhiriev/go-file-keeper/models"
)

// passwordHashCost is the bcrypt work factor for stored password hashes.
const passwordHashCost = 12

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, password changes
// and JWT token lifecycle. A password is checked twice on login: once
// against the bcrypt hash and once by unwrapping the FEK with it.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// fileRepository and objectStorage are used to remove the encrypted
	// bodies of a deleted account.
	fileRepository store.FileRepository
	objectStorage  store.ObjectStorage

	// keyService provisions, recovers and rewraps the user's FEK.
	keyService KeyService

	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	hashCost int

	// now is replaced in tests.
	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given storages
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(storages *store.Storages, keyService KeyService, validator validators.Validator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: storages.UserRepository,
		fileRepository: storages.FileRepository,
		objectStorage:  storages.ObjectStorage,
		keyService:     keyService,
		validator:      validator,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		hashCost:       passwordHashCost,
		now:            time.Now,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// It validates Login and Password, hashes the password with bcrypt,
// provisions a fresh FEK wrapped under the password and persists the user.
//
// Returns the persisted user (with a server-assigned UserID and no
// plaintext password) together with the FEK, or:
//   - ErrInvalidDataProvided if Login or Password is invalid.
//   - A wrapped storage error if the repository call fails (e.g. login already
//     taken, see store.ErrLoginAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, []byte, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, user, validators.FieldLogin, validators.FieldPassword); err != nil {
		log.Err(err).Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), a.hashCost)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("password hashing failed")
		return models.User{}, nil, fmt.Errorf("password hashing failed: %w", err)
	}

	secret := user.Password
	user.Password = ""
	user.PasswordHash = string(hash)
	user.Keys = models.KeyMaterial{}

	provisioned, fek, err := a.keyService.Provision(ctx, user, secret)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("key provisioning failed")
		return models.User{}, nil, fmt.Errorf("key provisioning failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, provisioned)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, nil, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, fek, nil
}

// Login authenticates an existing user and recovers the FEK.
//
// Returns the authenticated user record and FEK or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - ErrAuthentication if the login is unknown or the password is wrong.
//   - ErrKeyMismatch if the bcrypt hash accepts the password but the wrapped
//     FEK does not.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, []byte, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, nil, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, user.Login)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Warn().Str("login", user.Login).Msg("login attempt for unknown user")
		return models.User{}, nil, ErrAuthentication
	}
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user search by login failed")
		return models.User{}, nil, fmt.Errorf("user search by login failed: %w", err)
	}

	fek, err := a.verifyAndRecover(ctx, foundUser, user.Password)
	if err != nil {
		return models.User{}, nil, err
	}

	return foundUser, fek, nil
}

// ChangePassword rewraps the FEK of userID under the new password and
// stores the new hash and key material in one update. Tokens issued before
// the change stop being accepted by ParseToken.
//
// The returned FEK is recovered from the freshly written key material with
// the new password, so a successful return proves the rewrap round-trips.
func (a *authService) ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest) (models.User, []byte, error) {
	log := logger.FromContext(ctx)

	if request.OldPassword == "" {
		return models.User{}, nil, ErrInvalidDataProvided
	}
	if err := a.validator.Validate(ctx, models.User{Password: request.NewPassword}, validators.FieldPassword); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("invalid new password")
		return models.User{}, nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user search by id failed")
		return models.User{}, nil, fmt.Errorf("user search by id failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.OldPassword)); err != nil {
		log.Warn().Int64("user_id", userID).Msg("wrong old password")
		return models.User{}, nil, ErrAuthentication
	}

	rewrapped, err := a.keyService.Rewrap(ctx, user, request.OldPassword, request.NewPassword)
	if errors.Is(err, ErrAuthentication) {
		log.Error().Int64("user_id", userID).Msg("password hash accepted the old password but key material did not")
		return models.User{}, nil, fmt.Errorf("%w: %v", ErrKeyMismatch, err)
	}
	if err != nil {
		return models.User{}, nil, fmt.Errorf("rewrapping key failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), a.hashCost)
	if err != nil {
		return models.User{}, nil, fmt.Errorf("password hashing failed: %w", err)
	}

	changedAt := a.now().UTC()
	rewrapped.PasswordHash = string(hash)
	rewrapped.PasswordChangedAt = &changedAt

	if err = a.userRepository.UpdateCredentials(ctx, rewrapped); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("credentials update failed")
		return models.User{}, nil, fmt.Errorf("credentials update failed: %w", err)
	}

	fek, err := a.keyService.Recover(ctx, rewrapped, request.NewPassword)
	if err != nil {
		return models.User{}, nil, fmt.Errorf("recovering rewrapped key failed: %w", err)
	}

	return rewrapped, fek, nil
}

// DeleteAccount removes the user, every encrypted object it owns and, via
// the foreign keys, all of its folder and file records. The key material is
// deleted with the user row.
func (a *authService) DeleteAccount(ctx context.Context, userID int64, password string) error {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Int64("user_id", userID).Msg("wrong password on account deletion")
		return ErrAuthentication
	}

	files, err := a.fileRepository.ListFiles(ctx, userID)
	if err != nil {
		return fmt.Errorf("listing files of deleted account failed: %w", err)
	}
	for _, file := range files {
		if err = a.objectStorage.DeleteObject(ctx, file.Location); err != nil {
			log.Err(err).Int64("user_id", userID).Int64("file_id", file.FileID).Msg("object deletion failed")
			return fmt.Errorf("object deletion failed: %w", err)
		}
	}

	if err = a.userRepository.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user deletion failed")
		return fmt.Errorf("user deletion failed: %w", err)
	}

	log.Info().Int64("user_id", userID).Int("files", len(files)).Msg("account deleted")
	return nil
}

// GetUser returns the account of userID without its secrets. The JSON form
// of the user already hides them; the fields are cleared so no other
// encoding can leak them.
func (a *authService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}
	return publicUser(user), nil
}

// UpdateProfile changes the login or display name of userID. A request
// carrying a password is refused with ErrPasswordUpdateNotAllowed.
//
// Returns store.ErrLoginAlreadyExists (wrapped) when the new login is taken.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, request models.ProfileRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.Password != nil {
		log.Warn().Int64("user_id", userID).Msg("password sent to profile update")
		return models.User{}, ErrPasswordUpdateNotAllowed
	}
	if err := a.validator.Validate(ctx, request, validators.FieldUpdate); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("invalid profile data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if request.Login != nil {
		user.Login = strings.TrimSpace(*request.Login)
	}
	if request.Name != nil {
		user.Name = strings.TrimSpace(*request.Name)
	}

	updated, err := a.userRepository.UpdateProfile(ctx, user)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	return publicUser(updated), nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Besides signature, issuer and expiry it checks that the user still exists
// and that the token was not issued before the user's last password change.
// Every such failure is normalised to ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	if err != nil {
		return models.Token{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if user.PasswordChangedAt != nil && token.IssuedBefore(*user.PasswordChangedAt) {
		logger.FromContext(ctx).Warn().Int64("user_id", user.UserID).Msg("token issued before password change")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func publicUser(user models.User) models.User {
	user.Password = ""
	user.PasswordHash = ""
	user.Keys = models.KeyMaterial{}
	return user
}

// verifyAndRecover runs both password checks. They must agree: a bcrypt
// match followed by a failed unwrap is ErrKeyMismatch, never a success.
func (a *authService) verifyAndRecover(ctx context.Context, user models.User, password string) ([]byte, error) {
	log := logger.FromContext(ctx)

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Int64("user_id", user.UserID).Msg("wrong password")
		return nil, ErrAuthentication
	}

	fek, err := a.keyService.Recover(ctx, user, password)
	if errors.Is(err, ErrAuthentication) {
		log.Error().Int64("user_id", user.UserID).Msg("password hash accepted the password but key material did not")
		return nil, fmt.Errorf("%w: %v", ErrKeyMismatch, err)
	}
	if err != nil {
		return nil, fmt.Errorf("key recovery failed: %w", err)
	}

	return fek, nil
}
