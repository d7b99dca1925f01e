package model

// Category is one of the six fixed spending buckets, or the reserved
// Unknown fallback. The set is closed at build time.
type Category string

const (
	// CategoryFood covers restaurants, cafes, groceries and delivery.
	CategoryFood Category = "식비"
	// CategoryShopping covers retail purchases.
	CategoryShopping Category = "쇼핑"
	// CategoryHousing covers rent, maintenance and utilities.
	CategoryHousing Category = "주거"
	// CategoryTransport covers taxis, public transit, fuel and parking.
	CategoryTransport Category = "교통비"
	// CategoryLeisure covers culture, hobbies and subscriptions.
	CategoryLeisure Category = "문화/여가"
	// CategoryLiving covers medical, hygiene and other daily necessities.
	CategoryLiving Category = "생활비"
	// CategoryUnknown is the fallback for anything the resolver cannot place.
	CategoryUnknown Category = "알 수 없음"
)

// PersonaRusher is the sentinel persona assigned when a user pushes through
// with data that was flagged as invalid. It is not a Category.
const PersonaRusher = "생각없는 직진가"

// Categories returns the six valid spending categories in display order.
// CategoryUnknown is deliberately excluded; it is a fallback, not a bucket
// users classify into.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryShopping,
		CategoryHousing,
		CategoryTransport,
		CategoryLeisure,
		CategoryLiving,
	}
}

// Valid reports whether c is one of the six spending categories.
// CategoryUnknown is not considered valid for pass-through purposes.
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryShopping, CategoryHousing,
		CategoryTransport, CategoryLeisure, CategoryLiving:
		return true
	default:
		return false
	}
}

// String returns the category label.
func (c Category) String() string {
	return string(c)
}

// ParseCategory maps a label onto the closed enumeration. Anything that is
// not one of the six valid categories (including the empty string) becomes
// CategoryUnknown.
func ParseCategory(label string) Category {
	if c := Category(label); c.Valid() {
		return c
	}
	return CategoryUnknown
}
