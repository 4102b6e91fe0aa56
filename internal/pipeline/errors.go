package pipeline

import "errors"

// Row-scoped failures. Each one marks the current row FAILED and is
// converted to a logged skip at the row processor boundary; none of them
// aborts the batch.
var (
	// ErrNavigationTimeout: the target search URL never finished loading
	// within the bounded wait.
	ErrNavigationTimeout = errors.New("navigation timeout")
	// ErrInputNotFound: the search input never became present/clickable.
	ErrInputNotFound = errors.New("search input not found")
	// ErrResultNotFound: the results marker element never appeared.
	ErrResultNotFound = errors.New("result not found")
	// ErrFieldExtraction: a required field's element is absent.
	ErrFieldExtraction = errors.New("field extraction failed")
	// ErrSessionAcquire: the browser session could not be started.
	ErrSessionAcquire = errors.New("session acquire failed")
	// ErrNetworkProtocol: a transient network-level fetch failure
	// (connection reset, protocol error, blocked response). The only
	// class retried within a row.
	ErrNetworkProtocol = errors.New("network protocol error")
)
