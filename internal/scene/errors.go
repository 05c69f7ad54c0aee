package scene

import "errors"

// ErrConfig indicates scene configuration that cannot produce valid ranges.
var ErrConfig = errors.New("scene: invalid configuration")
