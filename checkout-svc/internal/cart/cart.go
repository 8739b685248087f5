package cart

import (
	"errors"
	"time"

	"food-delivery/checkout-svc/internal/domain"
	"food-delivery/checkout-svc/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrItemUnavailable = errors.New("menu item is not available")
	ErrInvalidItem     = errors.New("menu item has no identity")
	ErrLineNotFound    = errors.New("cart line not found")
)

var newLineID = uuid.NewString

// AddItem puts an item into the cart. A cart only ever holds one restaurant's
// items: adding from another restaurant empties it first and reports cleared.
// The same item with the same selection and instructions is merged into the
// existing line.
func AddItem(c *domain.Cart, item domain.MenuItem, quantity int, customizations []domain.SelectedCustomization, instructions string) (*domain.CartLineItem, bool, error) {
	if item.ID <= 0 || item.RestaurantID <= 0 {
		return nil, false, ErrInvalidItem
	}
	if !item.Available {
		return nil, false, ErrItemUnavailable
	}
	if quantity < 1 {
		return nil, false, ErrInvalidQuantity
	}

	cleared := false
	if len(c.Items) > 0 && c.RestaurantID != item.RestaurantID {
		Clear(c)
		cleared = true
	}
	c.RestaurantID = item.RestaurantID
	c.UpdatedAt = time.Now()

	for i := range c.Items {
		existing := &c.Items[i]
		if existing.Item.ID == item.ID && existing.Instructions == instructions && sameSelection(existing.Customizations, customizations) {
			existing.Quantity += quantity
			existing.TotalPrice = pricing.LineItemTotal(existing.Item, existing.Quantity, existing.Customizations)
			return existing, cleared, nil
		}
	}

	c.Items = append(c.Items, domain.CartLineItem{
		ID:             newLineID(),
		Item:           item,
		Quantity:       quantity,
		Customizations: customizations,
		Instructions:   instructions,
		TotalPrice:     pricing.LineItemTotal(item, quantity, customizations),
	})
	return &c.Items[len(c.Items)-1], cleared, nil
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func UpdateQuantity(c *domain.Cart, lineID string, quantity int) error {
	idx := indexOf(c, lineID)
	if idx < 0 {
		return ErrLineNotFound
	}
	if quantity <= 0 {
		return RemoveLine(c, lineID)
	}

	line := &c.Items[idx]
	line.Quantity = quantity
	line.TotalPrice = pricing.LineItemTotal(line.Item, line.Quantity, line.Customizations)
	c.UpdatedAt = time.Now()
	return nil
}

func UpdateCustomizations(c *domain.Cart, lineID string, customizations []domain.SelectedCustomization) error {
	idx := indexOf(c, lineID)
	if idx < 0 {
		return ErrLineNotFound
	}

	line := &c.Items[idx]
	line.Customizations = customizations
	line.TotalPrice = pricing.LineItemTotal(line.Item, line.Quantity, line.Customizations)
	c.UpdatedAt = time.Now()
	return nil
}

func RemoveLine(c *domain.Cart, lineID string) error {
	idx := indexOf(c, lineID)
	if idx < 0 {
		return ErrLineNotFound
	}

	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	if len(c.Items) == 0 {
		c.RestaurantID = 0
	}
	c.UpdatedAt = time.Now()
	return nil
}

func Clear(c *domain.Cart) {
	c.Items = nil
	c.RestaurantID = 0
	c.UpdatedAt = time.Now()
}

func Subtotal(c *domain.Cart) float64 {
	sum := decimal.Zero
	for _, line := range c.Items {
		sum = sum.Add(decimal.NewFromFloat(line.TotalPrice))
	}
	return sum.InexactFloat64()
}

func ItemCount(c *domain.Cart) int {
	count := 0
	for _, line := range c.Items {
		count += line.Quantity
	}
	return count
}

func indexOf(c *domain.Cart, lineID string) int {
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			return i
		}
	}
	return -1
}

func sameSelection(a, b []domain.SelectedCustomization) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].GroupID != b[i].GroupID || len(a[i].Options) != len(b[i].Options) {
			return false
		}
		for j := range a[i].Options {
			if a[i].Options[j].Name != b[i].Options[j].Name {
				return false
			}
		}
	}
	return true
}
