package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation   ErrCode = "VALIDATION_ERROR"
	ErrInvalidIndex ErrCode = "INVALID_INDEX"

	// ─── Roster ────────────────────────────────────────────────────────
	ErrEntryNotFound    ErrCode = "ENTRY_NOT_FOUND"
	ErrRosterLoadFailed ErrCode = "ROSTER_LOAD_FAILED"
	ErrFileRequired     ErrCode = "FILE_REQUIRED"
	ErrFileTooLarge     ErrCode = "FILE_TOO_LARGE"

	// ─── Export ────────────────────────────────────────────────────────
	ErrNothingToExport ErrCode = "NOTHING_TO_EXPORT"

	// ─── Clipboard ─────────────────────────────────────────────────────
	ErrClipboardUnavailable ErrCode = "CLIPBOARD_UNAVAILABLE"
	ErrClipboardEmpty       ErrCode = "CLIPBOARD_EMPTY"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidIndex:
		return "Entry index must be a whole number."

	case ErrEntryNotFound:
		return "No roster entry at that index."
	case ErrRosterLoadFailed:
		return "Error parsing JSON file. Please check the format."
	case ErrFileRequired:
		return "A roster file upload is required."
	case ErrFileTooLarge:
		return "Roster file exceeds the upload limit."

	case ErrNothingToExport:
		return "No data to export. Please check your filter options."

	case ErrClipboardUnavailable:
		return "Shared clipboard is not available."
	case ErrClipboardEmpty:
		return "Nothing has been copied yet."

	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
