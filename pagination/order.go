package pagination

import (
	"fmt"

	"github.com/leeforge/webresult/json"
)

// Order is a sort direction. It always serializes as "Asc" or "Desc".
type Order string

const (
	Asc  Order = "Asc"
	Desc Order = "Desc"
)

// ParseOrder accepts Asc, ASC, asc, Desc, DESC and desc.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "Asc", "ASC", "asc":
		return Asc, nil
	case "Desc", "DESC", "desc":
		return Desc, nil
	default:
		return "", fmt.Errorf("unknown order %q, want Asc or Desc", s)
	}
}

func (o Order) String() string { return string(o) }

// UnmarshalQuery lets the query binder parse orders.
func (o *Order) UnmarshalQuery(s string) error {
	parsed, err := ParseOrder(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("order must be a string: %w", err)
	}
	return o.UnmarshalQuery(s)
}
