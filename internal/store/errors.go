package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameTaken is returned when a principal cannot be created because
	// the username is already registered.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrPrincipalNotFound is returned when no principal matches the lookup.
	ErrPrincipalNotFound = errors.New("principal was not found")

	// ErrTokenNotFound is returned when no token record matches the lookup.
	ErrTokenNotFound = errors.New("token was not found")

	// ErrUnknownPrincipal is returned by SaveToken when the username of the
	// token owner does not resolve to a principal.
	ErrUnknownPrincipal = errors.New("token owner does not exist")

	// ErrStoreUnavailable wraps driver errors that PostgreSQL classifies as
	// transient (connection loss, serialization failure, deadlock).
	ErrStoreUnavailable = errors.New("store is temporarily unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a result
	// row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
