package availability

import "errors"

var ErrStorage = errors.New("storage unavailable")
