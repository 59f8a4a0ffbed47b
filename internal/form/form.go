// Package form validates a single order's fields before submission,
// independently of the server. The service re-validates and stays the final
// authority; this layer exists so a user sees per-field messages before a
// request is ever made.
package form

import (
	"strconv"
	"strings"

	"github.com/MBAmbhore007/Order-Tracker/internal/domain"
)

// Field keys used in the error map, matching the wire names.
const (
	FieldCustomerName = "customer_name"
	FieldOrderDate    = "order_date"
	FieldTotalAmount  = "total_amount"
	FieldStatus       = "status"
)

// Form holds raw user input as text. ID is zero for a new order.
type Form struct {
	ID           int64
	CustomerName string
	OrderDate    string
	TotalAmount  string
	Status       string
}

// New returns an empty form with the default status preselected.
func New() *Form {
	return &Form{Status: string(domain.OrderPending)}
}

// Prefill returns a form populated from an existing order for editing.
func Prefill(o domain.Order) *Form {
	return &Form{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		OrderDate:    o.OrderDate.String(),
		TotalAmount:  strconv.FormatFloat(o.TotalAmount, 'f', -1, 64),
		Status:       string(o.Status),
	}
}

// Validate returns one message per invalid field, keyed by field name.
// Submission must be blocked while the map is non-empty.
func (f *Form) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(f.CustomerName) == "" {
		errs[FieldCustomerName] = "Customer Name is required"
	}
	if f.OrderDate == "" {
		errs[FieldOrderDate] = "Order Date is required"
	} else if _, err := domain.ParseDate(f.OrderDate); err != nil {
		errs[FieldOrderDate] = "Order Date must be a valid date (YYYY-MM-DD)"
	}
	amount, err := strconv.ParseFloat(f.TotalAmount, 64)
	if f.TotalAmount == "" || err != nil || amount < 0 {
		errs[FieldTotalAmount] = "Total Amount must be a non-negative number"
	}
	if !domain.OrderStatus(f.Status).Valid() {
		errs[FieldStatus] = "Status is invalid"
	}

	return errs
}

// Order converts validated input into a domain order. Call Validate first;
// unparseable fields come back as an error here otherwise.
func (f *Form) Order() (domain.Order, error) {
	date, err := domain.ParseDate(f.OrderDate)
	if err != nil {
		return domain.Order{}, err
	}
	amount, err := strconv.ParseFloat(f.TotalAmount, 64)
	if err != nil {
		return domain.Order{}, err
	}
	return domain.Order{
		ID:           f.ID,
		CustomerName: strings.TrimSpace(f.CustomerName),
		OrderDate:    date,
		TotalAmount:  amount,
		Status:       domain.OrderStatus(f.Status),
	}, nil
}
