package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation       ErrCode = "VALIDATION_ERROR"
	ErrInvalidID        ErrCode = "INVALID_ID"
	ErrInvalidPayload   ErrCode = "INVALID_PAYLOAD"
	ErrUnsupportedField ErrCode = "UNSUPPORTED_FIELD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound                 ErrCode = "NOT_FOUND"
	ErrConflict                 ErrCode = "CONFLICT"
	ErrDuplicateAdmissionNumber ErrCode = "DUPLICATE_ADMISSION_NUMBER"
	ErrDuplicateUsername        ErrCode = "DUPLICATE_USERNAME"
	ErrActionForbidden          ErrCode = "ACTION_FORBIDDEN"

	// ─── Import ────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"
	ErrImportFailed    ErrCode = "IMPORT_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid username or password."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid or expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have access to this resource."
	case ErrPermissionDenied:
		return "Permission denied."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Request validation failed."
	case ErrInvalidID:
		return "Invalid ID."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrUnsupportedField:
		return "Unsupported field. Use one of: grade, gender, stream."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "The resource conflicts with existing data."
	case ErrDuplicateAdmissionNumber:
		return "Student with this admission number already exists."
	case ErrDuplicateUsername:
		return "Username already exists."
	case ErrActionForbidden:
		return "This action is not allowed."

	// ─── Import ────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "A file is required."
	case ErrUnsupportedFile:
		return "Unsupported file type. Use .csv, .xlsx or .xls."
	case ErrFileTooLarge:
		return "The file exceeds the maximum upload size."
	case ErrImportFailed:
		return "Could not upload the file."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."

	default:
		return "An unknown error occurred."
	}
}
