package invoice

import "errors"

// ErrRenderIO reports a failed write of the generated PDF. Callers must not
// stream a file after receiving it.
var ErrRenderIO = errors.New("invoice: write failed")
