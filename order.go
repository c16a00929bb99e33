package docpager

// Direction represents sort direction
type Direction int

const (
	// ASC ascending sort order
	ASC = Direction(0)
	// DESC descending sort order
	DESC = Direction(1)
)

func (d Direction) String() string {
	switch d {
	case ASC:
		return "ASC"
	case DESC:
		return "DESC"
	}
	return ""
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == ASC {
		return DESC
	}
	return ASC
}

// OrderField is the only ordering field supported by stores: creation time.
const OrderField = "created_at"

// Order is an ordering of the collection by Field in Direction.
// Records with equal Field values are ordered by ID in the same direction.
type Order struct {
	Field     string
	Direction Direction
}

// DefaultOrder is the display order of a page window: newest records first.
var DefaultOrder = Order{Field: OrderField, Direction: DESC} //nolint:gochecknoglobals // ok

// Reverse returns the same ordering in the opposite direction.
func (o Order) Reverse() Order {
	return Order{Field: o.Field, Direction: o.Direction.Reverse()}
}

func (o Order) String() string {
	return o.Field + " " + o.Direction.String()
}
