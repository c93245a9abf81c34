package platform

import "errors"

// ErrElementUnavailable marks the expected condition where the window behind
// a handle closed or stopped being reachable while it was being looked up.
var ErrElementUnavailable = errors.New("element not available")
