package service

// Pagination bounds the list-posts read path.
type Pagination struct {
	DefaultLimit int
	// MaxLimit caps the requested limit; zero disables the cap.
	MaxLimit int
}

// DefaultPagination matches the configuration defaults.
var DefaultPagination = Pagination{DefaultLimit: 10}

// Normalize resolves a requested page. A nil limit or a negative one falls
// back to DefaultLimit; a negative offset becomes zero.
func (p Pagination) Normalize(limit *int, offset int) (int, int) {
	l := p.DefaultLimit
	if limit != nil && *limit >= 0 {
		l = *limit
	}
	if p.MaxLimit > 0 && l > p.MaxLimit {
		l = p.MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return l, offset
}
