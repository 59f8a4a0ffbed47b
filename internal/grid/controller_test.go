package grid

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MBAmbhore007/Order-Tracker/internal/client"
	"github.com/MBAmbhore007/Order-Tracker/internal/domain"
	"github.com/MBAmbhore007/Order-Tracker/internal/form"
)

// fakeAPI keeps a server-side order set so a refetch observes post-write
// state, the way the real service behaves.
type fakeAPI struct {
	store      []domain.Order
	nextID     int64
	listCalls  int
	updateErr  error
	createErr  error
	deleteErr  error
	lastUpdate *client.OrderUpdate
	lastID     int64
	deletedIDs []int64
}

func newFakeAPI(orders ...domain.Order) *fakeAPI {
	nextID := int64(1)
	for _, o := range orders {
		if o.ID >= nextID {
			nextID = o.ID + 1
		}
	}
	return &fakeAPI{store: orders, nextID: nextID}
}

func (f *fakeAPI) List(_ context.Context) ([]domain.Order, error) {
	f.listCalls++
	out := make([]domain.Order, len(f.store))
	copy(out, f.store)
	return out, nil
}

func (f *fakeAPI) Create(_ context.Context, draft client.OrderDraft) (*domain.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	order := domain.Order{
		ID:           f.nextID,
		CustomerName: draft.CustomerName,
		OrderDate:    draft.OrderDate,
		TotalAmount:  draft.TotalAmount,
		Status:       draft.Status,
	}
	f.nextID++
	f.store = append([]domain.Order{order}, f.store...)
	return &order, nil
}

func (f *fakeAPI) Update(_ context.Context, id int64, update client.OrderUpdate) (*domain.Order, error) {
	f.lastID = id
	f.lastUpdate = &update
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.store {
		if f.store[i].ID == id {
			f.store[i].TotalAmount = update.TotalAmount
			f.store[i].Status = update.Status
			updated := f.store[i]
			return &updated, nil
		}
	}
	return nil, nil
}

func (f *fakeAPI) BulkDelete(_ context.Context, ids []int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = ids
	keep := f.store[:0]
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	for _, o := range f.store {
		if _, gone := drop[o.ID]; !gone {
			keep = append(keep, o)
		}
	}
	f.store = keep
	return nil
}

type fakeNotifier struct {
	alerts        []string
	confirmAnswer bool
	confirmAsked  int
}

func (n *fakeNotifier) Alert(message string) {
	n.alerts = append(n.alerts, message)
}

func (n *fakeNotifier) Confirm(_ string) bool {
	n.confirmAsked++
	return n.confirmAnswer
}

func sampleOrders() []domain.Order {
	return []domain.Order{
		{ID: 2, CustomerName: "Beta", OrderDate: domain.NewDate(2024, time.February, 2), TotalAmount: 200, Status: domain.OrderShipped},
		{ID: 1, CustomerName: "Acme", OrderDate: domain.NewDate(2024, time.January, 1), TotalAmount: 100, Status: domain.OrderPending},
	}
}

func setupController(t *testing.T, orders ...domain.Order) (*Controller, *fakeAPI, *fakeNotifier) {
	t.Helper()
	api := newFakeAPI(orders...)
	notify := &fakeNotifier{confirmAnswer: true}
	ctrl := NewController(api, notify)
	require.NoError(t, ctrl.Refresh(context.Background()))
	return ctrl, api, notify
}

func TestRefresh_ReplacesSnapshotAndClearsSelection(t *testing.T) {
	ctrl, api, _ := setupController(t, sampleOrders()...)
	require.NoError(t, ctrl.Select(1))

	api.store = append([]domain.Order{
		{ID: 3, CustomerName: "Gamma", OrderDate: domain.NewDate(2024, time.March, 3), TotalAmount: 300, Status: domain.OrderDelivered},
	}, api.store...)

	require.NoError(t, ctrl.Refresh(context.Background()))
	assert.Len(t, ctrl.Rows(), 3)
	assert.Empty(t, ctrl.Selected())
	assert.Equal(t, StateIdle, ctrl.State())
}

func TestCommitEdit_SendsBothFieldsTogether(t *testing.T) {
	ctrl, api, _ := setupController(t, sampleOrders()...)

	// Only the status cell changed; the row's current amount rides along.
	require.NoError(t, ctrl.CommitEdit(context.Background(), 1, FieldStatus, "Shipped"))

	require.NotNil(t, api.lastUpdate)
	assert.Equal(t, int64(1), api.lastID)
	assert.Equal(t, float64(100), api.lastUpdate.TotalAmount)
	assert.Equal(t, domain.OrderShipped, api.lastUpdate.Status)

	row, ok := ctrl.Row(1)
	require.True(t, ok)
	assert.Equal(t, domain.OrderShipped, row.Status)
}

func TestCommitEdit_InvalidAmountNeverReachesService(t *testing.T) {
	ctrl, api, notify := setupController(t, sampleOrders()...)
	listCallsBefore := api.listCalls

	require.NoError(t, ctrl.CommitEdit(context.Background(), 1, FieldTotalAmount, "-5"))
	require.NoError(t, ctrl.CommitEdit(context.Background(), 1, FieldTotalAmount, "abc"))

	assert.Nil(t, api.lastUpdate, "no update call may be made")
	assert.Len(t, notify.alerts, 2)
	assert.Greater(t, api.listCalls, listCallsBefore, "grid must revert via refetch")

	row, _ := ctrl.Row(1)
	assert.Equal(t, float64(100), row.TotalAmount)
}

func TestCommitEdit_ServerRejectionRollsBackViaRefetch(t *testing.T) {
	ctrl, api, notify := setupController(t, sampleOrders()...)
	api.updateErr = &client.APIError{StatusCode: 400, Message: "total_amount must be non-negative"}

	err := ctrl.CommitEdit(context.Background(), 1, FieldStatus, "Shipped")
	assert.Error(t, err)
	require.NotEmpty(t, notify.alerts)
	assert.Contains(t, notify.alerts[0], "Server validation failed")

	// After reconciliation the grid shows the server's last-confirmed value,
	// not the user's input.
	row, ok := ctrl.Row(1)
	require.True(t, ok)
	assert.Equal(t, domain.OrderPending, row.Status)
	assert.Equal(t, StateIdle, ctrl.State())
}

func TestCommitEdit_UnknownRow(t *testing.T) {
	ctrl, _, _ := setupController(t, sampleOrders()...)

	err := ctrl.CommitEdit(context.Background(), 99, FieldStatus, "Shipped")
	assert.ErrorIs(t, err, ErrUnknownRow)
}

func TestEditSelected_RequiresExactlyOneRow(t *testing.T) {
	ctrl, _, notify := setupController(t, sampleOrders()...)

	_, err := ctrl.EditSelected()
	assert.ErrorIs(t, err, ErrBadSelection)

	require.NoError(t, ctrl.Select(1))
	require.NoError(t, ctrl.Select(2))
	_, err = ctrl.EditSelected()
	assert.ErrorIs(t, err, ErrBadSelection)
	assert.Len(t, notify.alerts, 2)
}

func TestEditSelected_PrefillsForm(t *testing.T) {
	ctrl, _, _ := setupController(t, sampleOrders()...)
	require.NoError(t, ctrl.Select(2))

	f, err := ctrl.EditSelected()
	require.NoError(t, err)
	assert.Equal(t, int64(2), f.ID)
	assert.Equal(t, "Beta", f.CustomerName)
	assert.Equal(t, "2024-02-02", f.OrderDate)
	assert.Equal(t, "200", f.TotalAmount)
	assert.Equal(t, "Shipped", f.Status)
}

func TestSaveForm_RoutesToCreateWithoutID(t *testing.T) {
	ctrl, api, _ := setupController(t)

	f := ctrl.NewOrderForm()
	f.CustomerName = "Acme"
	f.OrderDate = "2024-01-01"
	f.TotalAmount = "100"

	require.NoError(t, ctrl.SaveForm(context.Background(), f))

	rows := ctrl.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].CustomerName)
	assert.Equal(t, domain.OrderPending, rows[0].Status)
	assert.Nil(t, api.lastUpdate)
}

func TestSaveForm_RoutesToUpdateWithID(t *testing.T) {
	ctrl, api, _ := setupController(t, sampleOrders()...)

	f := form.Prefill(sampleOrders()[1])
	f.TotalAmount = "150"
	f.Status = "Delivered"

	require.NoError(t, ctrl.SaveForm(context.Background(), f))

	require.NotNil(t, api.lastUpdate)
	assert.Equal(t, int64(1), api.lastID)
	assert.Equal(t, float64(150), api.lastUpdate.TotalAmount)
	assert.Equal(t, domain.OrderDelivered, api.lastUpdate.Status)
	// The edit path sends the full field set even though the service only
	// persists amount and status.
	assert.Equal(t, "Acme", api.lastUpdate.CustomerName)
	require.NotNil(t, api.lastUpdate.OrderDate)
	assert.Equal(t, "2024-01-01", api.lastUpdate.OrderDate.String())
}

func TestSaveForm_InvalidFormBlocksSubmission(t *testing.T) {
	ctrl, api, _ := setupController(t)

	f := ctrl.NewOrderForm()
	f.CustomerName = "   "
	f.OrderDate = "2024-01-01"
	f.TotalAmount = "10"

	err := ctrl.SaveForm(context.Background(), f)
	assert.ErrorIs(t, err, ErrFormInvalid)
	assert.Empty(t, api.store)
}

func TestDeleteSelected_RequiresSelection(t *testing.T) {
	ctrl, api, notify := setupController(t, sampleOrders()...)

	err := ctrl.DeleteSelected(context.Background())
	assert.ErrorIs(t, err, ErrBadSelection)
	assert.Nil(t, api.deletedIDs)
	assert.Len(t, notify.alerts, 1)
}

func TestDeleteSelected_ConfirmDeclined(t *testing.T) {
	ctrl, api, notify := setupController(t, sampleOrders()...)
	notify.confirmAnswer = false
	require.NoError(t, ctrl.Select(1))

	require.NoError(t, ctrl.DeleteSelected(context.Background()))
	assert.Equal(t, 1, notify.confirmAsked)
	assert.Nil(t, api.deletedIDs, "declined confirmation must not issue a delete")
	assert.Len(t, ctrl.Rows(), 2)
}

func TestDeleteSelected_DeletesAndRefetches(t *testing.T) {
	ctrl, api, _ := setupController(t, sampleOrders()...)
	require.NoError(t, ctrl.Select(1))
	require.NoError(t, ctrl.Select(2))

	require.NoError(t, ctrl.DeleteSelected(context.Background()))
	assert.Equal(t, []int64{1, 2}, api.deletedIDs)
	assert.Empty(t, ctrl.Rows())
	assert.Empty(t, ctrl.Selected())
	assert.Equal(t, StateIdle, ctrl.State())
}

func TestDeleteSelected_FailureAlertsAndRefetches(t *testing.T) {
	ctrl, api, notify := setupController(t, sampleOrders()...)
	api.deleteErr = &client.APIError{StatusCode: 500, Message: "internal server error"}
	require.NoError(t, ctrl.Select(1))

	err := ctrl.DeleteSelected(context.Background())
	assert.Error(t, err)
	require.NotEmpty(t, notify.alerts)
	assert.Contains(t, notify.alerts[0], "Failed to delete orders")
	assert.Len(t, ctrl.Rows(), 2, "snapshot restored from the server")
}

func TestExportCSV(t *testing.T) {
	ctrl, _, _ := setupController(t, sampleOrders()...)

	var buf bytes.Buffer
	require.NoError(t, ctrl.ExportCSV(&buf))

	want := "id,customer_name,order_date,total_amount,status\n" +
		"2,Beta,2024-02-02,200,Shipped\n" +
		"1,Acme,2024-01-01,100,Pending\n"
	assert.Equal(t, want, buf.String())
}
