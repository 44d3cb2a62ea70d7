package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an Error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindInvalidCredential
	KindUnauthenticated
	KindNotFound
	KindConflict
	KindDataAccess
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindDataAccess:
		return "data_access"
	default:
		return "internal"
	}
}

// FieldError describes one offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the business error carried from services to the HTTP layer.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind and code so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

func Validation(code, msg string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: msg, Fields: fields}
}

func NotFound(code, msg string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: msg}
}

func Conflict(code, msg string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: msg}
}

func Unauthenticated(code, msg string, cause error) *Error {
	return &Error{Kind: KindUnauthenticated, Code: code, Message: msg, Err: cause}
}

// DataAccess wraps a storage failure. The message is safe for clients; the cause is not.
func DataAccess(msg string, cause error) *Error {
	return &Error{Kind: KindDataAccess, Code: CodeDBQuery, Message: msg, Err: cause}
}

// KindOf reports the Kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidBody      = "INVALID_BODY"
	CodeInvalidCategory  = "INVALID_CATEGORY"
	CodeInvalidProductID = "INVALID_PRODUCT_ID"
	CodeInvalidCreds     = "INVALID_CREDENTIALS"
	CodeNoToken          = "NO_TOKEN"
	CodeInvalidToken     = "INVALID_TOKEN"
	CodeInvalidAPIKey    = "INVALID_API_KEY"
	CodeNotFound         = "NOT_FOUND"
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodeProductNotFound  = "PRODUCT_NOT_FOUND"
	CodeEmailTaken       = "USER_ALREADY_EXISTS"
	CodeHandleTaken      = "USER_ID_ALREADY_EXISTS"
	CodeDBQuery          = "DB_QUERY_ERROR"
	CodeInternal         = "INTERNAL_SERVER_ERROR"
	CodeTooManyRequests  = "TOO_MANY_REQUESTS"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

var (
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredential, Code: CodeInvalidCreds, Message: "invalid user id or password"}
	ErrUserNotFound       = NotFound(CodeUserNotFound, "user does not exist")
	ErrProductNotFound    = NotFound(CodeProductNotFound, "product not found")
	ErrEmailTaken         = Conflict(CodeEmailTaken, "email is already registered")
	ErrHandleTaken        = Conflict(CodeHandleTaken, "user id is already registered")
	ErrNoToken            = Unauthenticated(CodeNoToken, "authentication token is missing", nil)
)

// QuantityTooLarge rejects a cart add above MaxLineQuantity.
func QuantityTooLarge() *Error {
	return Validation(CodeValidation, "invalid input",
		FieldError{Field: "quantity", Message: fmt.Sprintf("must be at most %d", MaxLineQuantity)})
}

// InvalidCategory reports a category code outside the fixed set.
func InvalidCategory(code string) *Error {
	return Validation(CodeInvalidCategory, fmt.Sprintf("unknown category code %q", code),
		FieldError{Field: "categoryCode", Message: "must be one of TWIN_BAG, REMOOD_BAG, CLO_BAG, MINIMAL_BAG, ACCESSORY"})
}
