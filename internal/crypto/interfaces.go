package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService bundles every cryptographic primitive the file keeper
// needs. It knows nothing about users, HTTP or storage; its only job is to
// produce and protect keys and objects.
//
// Envelope scheme:
//
//	salt, iv, FEK = GenerateSalt(), GenerateIV(), GenerateFEK()
//	KEK           = DeriveKEK(password, salt)
//	wrappedFEK    = WrapFEK(FEK, KEK, iv)
//	blob          = EncryptObject(plaintext, FEK)
type KeyChainService interface {
	// GenerateSalt returns 16 fresh random bytes for the KDF. The salt is
	// not secret and is stored next to the wrapped key.
	GenerateSalt() ([]byte, error)

	// GenerateIV returns 12 fresh random bytes used as the wrapping nonce.
	GenerateIV() ([]byte, error)

	// GenerateFEK returns a fresh random 32-byte file-encryption key.
	GenerateFEK() ([]byte, error)

	// DeriveKEK derives the key-encryption key from a password and salt.
	DeriveKEK(secret string, salt []byte) ([]byte, error)

	// WrapFEK encrypts FEK under KEK with the given IV (ciphertext ‖ tag).
	WrapFEK(fek, kek, iv []byte) ([]byte, error)

	// UnwrapFEK recovers the FEK or fails with ErrFormat / ErrIntegrity.
	UnwrapFEK(wrapped, kek, iv []byte) ([]byte, error)

	// EncryptObject seals a file body as IV ‖ ciphertext ‖ tag.
	EncryptObject(plaintext, fek []byte) ([]byte, error)

	// DecryptObject opens a blob produced by EncryptObject.
	DecryptObject(blob, fek []byte) ([]byte, error)
}
