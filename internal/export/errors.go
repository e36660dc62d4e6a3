package export

import "errors"

var ErrUnknownFormat = errors.New("unknown export format")
