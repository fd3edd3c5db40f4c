package store

import "errors"

// Sentinel errors returned by the store backends. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrStoreClosed is returned by any operation on a closed store.
	ErrStoreClosed = errors.New("store is closed")

	// ErrUnknownDriver is returned by [NewPersistentStore] for a driver name
	// it does not know.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Low-level database operation errors. These wrap the driver error when a
// SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")
)
