// Package grid holds the client-side snapshot of all orders and mediates
// every mutation through the orders API. The server's post-write state is
// authoritative: after any mutation, successful or not, the controller
// refetches the full list rather than patching locally, so the refetch itself
// is the rollback mechanism for failed edits.
package grid

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/MBAmbhore007/Order-Tracker/internal/client"
	"github.com/MBAmbhore007/Order-Tracker/internal/domain"
	"github.com/MBAmbhore007/Order-Tracker/internal/form"
)

// OrderAPI is the slice of the HTTP client the controller needs.
type OrderAPI interface {
	List(ctx context.Context) ([]domain.Order, error)
	Create(ctx context.Context, draft client.OrderDraft) (*domain.Order, error)
	Update(ctx context.Context, id int64, update client.OrderUpdate) (*domain.Order, error)
	BulkDelete(ctx context.Context, ids []int64) error
}

// Notifier surfaces blocking user notifications. Alert reports a failure or
// user error; Confirm asks before destructive actions.
type Notifier interface {
	Alert(message string)
	Confirm(message string) bool
}

type State int

const (
	StateIdle State = iota
	StateLoading
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateSubmitting:
		return "Submitting"
	default:
		return "Idle"
	}
}

// Editable grid columns.
type Field string

const (
	FieldTotalAmount Field = "total_amount"
	FieldStatus      Field = "status"
)

var (
	ErrBusy         = errors.New("a request is already in flight")
	ErrUnknownRow   = errors.New("row is not in the current snapshot")
	ErrBadSelection = errors.New("selection does not allow this action")
	ErrFormInvalid  = errors.New("form has invalid fields")
)

// Controller is not safe for concurrent use; the UI serializes interaction
// through its single grid/modal model, so calls arrive one at a time.
type Controller struct {
	api      OrderAPI
	notify   Notifier
	state    State
	rows     []domain.Order
	selected map[int64]struct{}
}

func NewController(api OrderAPI, notify Notifier) *Controller {
	return &Controller{
		api:      api,
		notify:   notify,
		selected: make(map[int64]struct{}),
	}
}

func (c *Controller) State() State {
	return c.state
}

// Rows returns a copy of the current snapshot, newest id first.
func (c *Controller) Rows() []domain.Order {
	rows := make([]domain.Order, len(c.rows))
	copy(rows, c.rows)
	return rows
}

func (c *Controller) Row(id int64) (domain.Order, bool) {
	for _, row := range c.rows {
		if row.ID == id {
			return row, true
		}
	}
	return domain.Order{}, false
}

// Refresh replaces the snapshot with the server's current state and clears
// the selection, since row identity may have changed.
func (c *Controller) Refresh(ctx context.Context) error {
	if c.state != StateIdle {
		return ErrBusy
	}
	c.state = StateLoading
	rows, err := c.api.List(ctx)
	c.state = StateIdle
	if err != nil {
		c.notify.Alert("Failed to fetch orders: " + err.Error())
		return err
	}
	c.rows = rows
	c.selected = make(map[int64]struct{})
	return nil
}

func (c *Controller) Select(id int64) error {
	if _, ok := c.Row(id); !ok {
		return ErrUnknownRow
	}
	c.selected[id] = struct{}{}
	return nil
}

func (c *Controller) Deselect(id int64) {
	delete(c.selected, id)
}

func (c *Controller) ClearSelection() {
	c.selected = make(map[int64]struct{})
}

// Selected returns the selected row ids in ascending order.
func (c *Controller) Selected() []int64 {
	ids := make([]int64, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CommitEdit applies an inline cell edit. An amount that is not a
// non-negative number is rejected locally: the user is alerted and the grid
// reverts via refetch without a service call. Otherwise both total_amount and
// status are sent together, using the row's current value for the untouched
// field. On any service failure the error is surfaced and the snapshot is
// refetched to restore the last-known-good state.
func (c *Controller) CommitEdit(ctx context.Context, id int64, field Field, value string) error {
	if c.state != StateIdle {
		return ErrBusy
	}
	row, ok := c.Row(id)
	if !ok {
		return ErrUnknownRow
	}

	amount := row.TotalAmount
	status := row.Status
	switch field {
	case FieldTotalAmount:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || parsed < 0 {
			c.notify.Alert("Amount must be a non-negative number.")
			return c.Refresh(ctx)
		}
		amount = parsed
	case FieldStatus:
		status = domain.OrderStatus(value)
	default:
		return fmt.Errorf("field %q is not editable", field)
	}

	c.state = StateSubmitting
	_, err := c.api.Update(ctx, id, client.OrderUpdate{
		TotalAmount: amount,
		Status:      status,
	})
	c.state = StateIdle
	if err != nil {
		c.notify.Alert("Server validation failed: " + err.Error())
	}
	if rerr := c.Refresh(ctx); err == nil {
		err = rerr
	}
	return err
}

// NewOrderForm opens an empty form for adding an order.
func (c *Controller) NewOrderForm() *form.Form {
	return form.New()
}

// EditSelected opens a form pre-populated with the one selected row.
// Zero or multiple selected rows is a user error, reported without a call.
func (c *Controller) EditSelected() (*form.Form, error) {
	ids := c.Selected()
	if len(ids) != 1 {
		c.notify.Alert("Please select exactly one row to edit.")
		return nil, ErrBadSelection
	}
	row, ok := c.Row(ids[0])
	if !ok {
		return nil, ErrUnknownRow
	}
	return form.Prefill(row), nil
}

// SaveForm routes a validated form to Create (no id) or Update (existing id)
// and refetches on completion. The edit path sends the full field set even
// though the update operation persists only total_amount and status.
func (c *Controller) SaveForm(ctx context.Context, f *form.Form) error {
	if c.state != StateIdle {
		return ErrBusy
	}
	if errs := f.Validate(); len(errs) > 0 {
		return ErrFormInvalid
	}
	order, err := f.Order()
	if err != nil {
		return ErrFormInvalid
	}

	c.state = StateSubmitting
	if order.ID == 0 {
		_, err = c.api.Create(ctx, client.OrderDraft{
			CustomerName: order.CustomerName,
			OrderDate:    order.OrderDate,
			TotalAmount:  order.TotalAmount,
			Status:       order.Status,
		})
	} else {
		date := order.OrderDate
		_, err = c.api.Update(ctx, order.ID, client.OrderUpdate{
			TotalAmount:  order.TotalAmount,
			Status:       order.Status,
			CustomerName: order.CustomerName,
			OrderDate:    &date,
		})
	}
	c.state = StateIdle
	if err != nil {
		c.notify.Alert("Error saving order: " + err.Error())
	}
	if rerr := c.Refresh(ctx); err == nil {
		err = rerr
	}
	return err
}

// DeleteSelected bulk-deletes the selected rows after explicit confirmation.
func (c *Controller) DeleteSelected(ctx context.Context) error {
	if c.state != StateIdle {
		return ErrBusy
	}
	ids := c.Selected()
	if len(ids) == 0 {
		c.notify.Alert("Please select at least one row to delete.")
		return ErrBadSelection
	}
	if !c.notify.Confirm(fmt.Sprintf("Delete %d order(s)? This cannot be undone.", len(ids))) {
		return nil
	}

	c.state = StateSubmitting
	err := c.api.BulkDelete(ctx, ids)
	c.state = StateIdle
	if err != nil {
		c.notify.Alert("Failed to delete orders: " + err.Error())
	}
	if rerr := c.Refresh(ctx); err == nil {
		err = rerr
	}
	return err
}

// ExportCSV writes the current snapshot as CSV.
func (c *Controller) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "customer_name", "order_date", "total_amount", "status"}); err != nil {
		return err
	}
	for _, row := range c.rows {
		record := []string{
			strconv.FormatInt(row.ID, 10),
			row.CustomerName,
			row.OrderDate.String(),
			strconv.FormatFloat(row.TotalAmount, 'f', -1, 64),
			string(row.Status),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
