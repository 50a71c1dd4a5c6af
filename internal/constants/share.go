package constants

// Share-token encryption (AES-256-GCM)
// Wire layout of an encrypted token before base64url encoding:
// salt || nonce || tag || ciphertext. The salt is random padding carried
// for format compatibility; the key comes directly from ENCRYPTION_KEY.
const (
	ShareTokenSaltBytes     = 64
	ShareTokenNonceBytes    = 12
	ShareTokenTagBytes      = 16
	ShareEncryptionKeyBytes = 32
)

// Share payload
const (
	SharePayloadNonceBytes = 16
)

// Shared viewer path used to build shareable URLs
const (
	SharedReportPathPrefix = "/shared/"
)

// User-facing share messages
const (
	ShareMsgPasswordProtected = "Anyone with the password can access this report unlimited times"
	ShareMsgPublic            = "Public link - anyone with the URL can access"
	ShareMsgRevoked           = "Share token revoked successfully"
)
