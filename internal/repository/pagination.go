package repository

const (
	DefaultTake = 10
	MaxTake     = 100
)

// PageVerify clamps take/offset into sane bounds before they reach the
// database.
func PageVerify(take, offset *int) {
	if *take <= 0 {
		*take = DefaultTake
	}
	if *take > MaxTake {
		*take = MaxTake
	}
	if *offset < 0 {
		*offset = 0
	}
}
