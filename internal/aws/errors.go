package aws

import "errors"

// Error categories for the collection pipeline. Authorization failures are
// fatal at startup; query and data-format failures are contained within a
// single collection cycle.
var (
	ErrAuthorization = errors.New("role assumption failed")
	ErrQuery         = errors.New("cost query failed")
	ErrDataFormat    = errors.New("malformed cost data")
)
