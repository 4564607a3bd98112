package constants

// Common HTTP error messages
const (
	ErrMethodNotAllowed     = "Method not allowed"
	ErrServerError          = "Server error"
	ErrInvalidData          = "Invalid data"
	ErrNotAuthenticated     = "Not authenticated"
	ErrInvalidToken         = "Invalid token"
	ErrInvalidProgramID     = "Invalid program ID"
	ErrProgramNotFound      = "Program not found"
	ErrRegistrationNotFound = "Registration not found"
	ErrRegistrationEnded    = "Registrations are closed for this program"
	ErrProgramInactive      = "This program is not open for registration"
	ErrProgramFull          = "This program is full"
	ErrUserNotFound         = "User not found"
	ErrAdminOnly            = "Access denied - admin only"
	ErrUploadFailed         = "File upload failed"
	ErrInvalidImageID       = "Invalid image ID"
	ErrImageNotFound        = "Image not found"
	ErrMemberNotFound       = "Team member not found"
	ErrMessageNotFound      = "Message not found"
)

// HTTP headers
const (
	HeaderContentType     = "Content-Type"
	HeaderApplicationJSON = "application/json"
)
