package enums

import "fmt"

// StockStatus reflects product availability on the storefront.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "instock"
	StockStatusOutOfStock StockStatus = "outofstock"
)

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	return s == StockStatusInStock || s == StockStatusOutOfStock
}

// ParseStockStatus converts raw input into a StockStatus.
func ParseStockStatus(value string) (StockStatus, error) {
	status := StockStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid stock status %q", value)
	}
	return status, nil
}
