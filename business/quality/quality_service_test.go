package quality

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/business/analytics"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrdersRepo struct {
	orders []domain.Order
	start  *time.Time
	end    *time.Time
}

func (f *fakeOrdersRepo) GetOrders(start, end *time.Time, areas, modes []string) ([]domain.Order, error) {
	f.start, f.end = start, end
	return f.orders, nil
}

func TestReportScopedToArea(t *testing.T) {
	repo := &fakeOrdersRepo{orders: []domain.Order{
		{ID: "A", DeliveryArea: "Centrum", DeliveryDuration: fp(20)},
		{ID: "A", DeliveryArea: "Centrum", DeliveryDuration: fp(20)},
		{ID: "B", DeliveryArea: "Noord", DeliveryDuration: fp(25)},
	}}
	svc := NewService(repo)

	full, err := svc.Report(analytics.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, full.Stats.TotalRows)
	assert.Equal(t, 1, full.Stats.DuplicateRows)

	// the duplicate pair sits in Centrum, so a Noord scope is clean
	scoped, err := svc.Report(analytics.Filter{Areas: []string{"Noord"}})
	require.NoError(t, err)
	assert.Equal(t, 1, scoped.Stats.TotalRows)
	assert.Equal(t, 0, scoped.Stats.DuplicateRows)
}

func TestReportScopedToOrderMode(t *testing.T) {
	repo := &fakeOrdersRepo{orders: []domain.Order{
		{ID: "A", OrderMode: "online"},
		{ID: "B", OrderMode: "phone"},
		{ID: "C", OrderMode: "phone"},
	}}
	svc := NewService(repo)

	scoped, err := svc.Report(analytics.Filter{Modes: []string{"phone"}})
	require.NoError(t, err)

	assert.Equal(t, 2, scoped.Stats.TotalRows)
}

func TestReportPushesDateWindowToStorage(t *testing.T) {
	repo := &fakeOrdersRepo{}
	svc := NewService(repo)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	_, err := svc.Report(analytics.Filter{Start: &start, End: &end})
	require.NoError(t, err)

	require.NotNil(t, repo.start)
	assert.Equal(t, start, *repo.start)
	require.NotNil(t, repo.end)
	assert.Equal(t, end, *repo.end)
}

func TestPriorityMatrixScoped(t *testing.T) {
	// every Zuid row misses its oven temperature, every Centrum row has one
	rows := make([]domain.Order, 0, 20)
	for i := 0; i < 10; i++ {
		rows = append(rows, domain.Order{ID: fmt.Sprintf("C-%d", i), DeliveryArea: "Centrum", OvenTemperature: fp(260)})
		rows = append(rows, domain.Order{ID: fmt.Sprintf("Z-%d", i), DeliveryArea: "Zuid"})
	}
	repo := &fakeOrdersRepo{orders: rows}
	svc := NewService(repo)

	centrum, err := svc.PriorityMatrix(analytics.Filter{Areas: []string{"Centrum"}})
	require.NoError(t, err)
	assert.False(t, hasIssueFor(centrum, analytics.ColOvenTemperature))

	zuid, err := svc.PriorityMatrix(analytics.Filter{Areas: []string{"Zuid"}})
	require.NoError(t, err)
	assert.True(t, hasIssueFor(zuid, analytics.ColOvenTemperature))
}

func hasIssueFor(entries []domain.PriorityMatrixEntry, column string) bool {
	for _, e := range entries {
		if strings.HasSuffix(e.IssueName, column) {
			return true
		}
	}
	return false
}
