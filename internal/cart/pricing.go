package cart

import (
	"github.com/shopspring/decimal"

	"github.com/mcastellon/shopora-backend/internal/coupons"
	"github.com/mcastellon/shopora-backend/pkg/db/models"
)

var hundred = decimal.NewFromInt(100)

// Subtotal sums unit price times quantity over all lines; zero for an empty
// cart.
func Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	return total
}

// Count sums the quantities over all lines.
func Count(lines []Line) int {
	count := 0
	for _, line := range lines {
		count += line.Qty
	}
	return count
}

// ComputeAmounts produces the priced snapshot for the given lines and
// optional applied coupon. Tax is a flat percentage of the subtotal, passed
// through from configuration. Total = subtotal - discount + tax.
func ComputeAmounts(lines []Line, coupon *AppliedCoupon, taxPercent decimal.Decimal) Amounts {
	subtotal := Subtotal(lines)

	discount := decimal.Zero
	if coupon != nil {
		discount = coupons.DiscountFor(&models.Coupon{
			Type:  coupon.Type,
			Value: coupon.Value,
		}, subtotal)
	}

	tax := subtotal.Mul(taxPercent).Div(hundred).Round(2)

	return Amounts{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    subtotal.Sub(discount).Add(tax),
	}
}
