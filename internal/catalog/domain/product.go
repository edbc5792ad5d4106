package domain

// Product identifies a catalog entry by its code. Two products are the same
// product when their codes match; the description is informational only.
type Product struct {
	code        int64
	description string
}

func NewProduct(code int64, description string) *Product {
	return &Product{
		code:        code,
		description: description,
	}
}

func (p *Product) Code() int64 {
	return p.code
}

func (p *Product) Description() string {
	return p.description
}

// Equal reports whether both products carry the same code.
// A nil product is only equal to another nil product.
func (p *Product) Equal(other *Product) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.code == other.code
}

// Key is the lookup key consistent with Equal.
func (p *Product) Key() int64 {
	return p.code
}
