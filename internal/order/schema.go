// Package order declares the shoe order schemas and the sales prompt.
package order

import "assistant-kit/internal/extraction"

var (
	Address = extraction.MustSchema("Address", "a shipping address",
		extraction.Leaf("street", "the street address").WithMaxLength(100),
		extraction.Leaf("city", "the city").WithMaxLength(100),
		extraction.Leaf("state", "the state").WithMaxLength(100),
		extraction.Leaf("zip", "the zip code").WithMaxLength(20),
	)

	Person = extraction.MustSchema("Person", "the customer",
		extraction.Leaf("first_name", "the human's first name").WithMaxLength(100),
		extraction.Leaf("last_name", "the human's last name").WithMaxLength(100),
		extraction.Leaf("email", "the human's email address").WithMaxLength(100),
		extraction.Leaf("phone", "the human's phone number").WithMaxLength(20),
	)

	OrderItem = extraction.MustSchema("OrderItem", "a shoe being ordered",
		extraction.Leaf("size", "the size of the shoe"),
		extraction.Leaf("color", "the color of the shoe"),
		extraction.Leaf("brand", "the brand of the shoe"),
		extraction.Leaf("quantity", "the number of shoes ordered. assume 1 unless otherwise specified"),
		extraction.Leaf("style", "the style of the shoe"),
	)

	Order = extraction.MustSchema("Order", "a shoe order",
		extraction.Group("person", "the person ordering the shoes", Person),
		extraction.Group("item", "the item being ordered", OrderItem),
		extraction.Group("shipping_address", "the person's shipping address", Address),
	)
)
