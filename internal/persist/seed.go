package persist

import (
	"context"

	"github.com/MrJamesThe3rd/billy/internal/bill"
	"github.com/MrJamesThe3rd/billy/internal/seed"
)

// Seed serves the bundled snapshot shipped with the binary. It is the
// last tier of the cascade: always available, never written.
type Seed struct{}

var _ Backend = (*Seed)(nil)

func NewSeed() *Seed {
	return &Seed{}
}

func (*Seed) Load(context.Context) ([]bill.Bill, error) {
	return seed.Bills()
}

// Save discards writes; the cascade directs them to a writable tier.
func (*Seed) Save(context.Context, []bill.Bill) error {
	return nil
}
