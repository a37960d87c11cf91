package order_number

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Factory issues human-readable order numbers of the form
// ORD-<unix millis>-<sequence>. The sequence disambiguates orders created
// within the same millisecond.
type Factory struct {
	seq atomic.Uint64
	now func() time.Time
}

func New() *Factory {
	return &Factory{now: time.Now}
}

func (f *Factory) Next() string {
	seq := f.seq.Add(1) % 10000
	return fmt.Sprintf("ORD-%d-%04d", f.now().UnixMilli(), seq)
}
