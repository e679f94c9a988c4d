package invoice

import (
	"fmt"
	"strconv"
	"time"
)

// NewNumber generates an invoice number of the form FAC-YYYYMM-XXXXXX where
// the suffix is the last six digits of the current unix-millisecond clock.
// Numbers are time-ordered and practically unique, not globally unique.
func NewNumber() string {
	now := time.Now()
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	return fmt.Sprintf("FAC-%s-%s", now.Format("200601"), ms[len(ms)-6:])
}
