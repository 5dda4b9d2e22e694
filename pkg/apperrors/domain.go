package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors into AppErrors.

// ErrNotFound converts a repository miss into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrNotFoundOrUnauthorized is used when acting on a resource that either
// does not exist or belongs to someone else. The two cases are deliberately
// conflated to avoid leaking resource existence.
func ErrNotFoundOrUnauthorized(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found or unauthorized", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Auth ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

// --- Jobs & applications ---

var ErrAlreadyApplied = New(
	CodeConflict,
	"job",
	"You have already applied to this job",
	http.StatusConflict,
)

var ErrJobNotPayable = New(
	CodeInvalidOperation,
	"job",
	"Job posting requires a recorded payment before publishing",
	http.StatusBadRequest,
)

// --- Messaging ---

var ErrMessageToSelf = New(
	CodeInvalidOperation,
	"message",
	"Cannot send a message to yourself",
	http.StatusBadRequest,
)

// --- Connections ---

var ErrConnectionExists = New(
	CodeAlreadyExists,
	"connection",
	"Connection request already exists",
	http.StatusConflict,
)

var ErrSelfConnection = New(
	CodeInvalidOperation,
	"connection",
	"Cannot connect with yourself",
	http.StatusBadRequest,
)

// --- Payments ---

var ErrDuplicateTransaction = New(
	CodeConflict,
	"payment",
	"Transaction hash already recorded",
	http.StatusConflict,
)

var ErrInvalidTransactionHash = New(
	CodeValidationFailed,
	"payment",
	"Invalid transaction hash format",
	http.StatusBadRequest,
)

var ErrUnsupportedBlockchain = New(
	CodeValidationFailed,
	"payment",
	"Unsupported blockchain",
	http.StatusBadRequest,
)

// --- AI ---

// ErrAIService hides the upstream cause from the client; the specific error
// is logged where it happens.
func ErrAIService(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "ai", "AI service error", http.StatusInternalServerError)
}

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
