package quality

import (
	"fmt"
	"time"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/business/analytics"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/business/scenario"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
)

type OrdersRepository interface {
	GetOrders(start, end *time.Time, areas, modes []string) ([]domain.Order, error)
}

// Service profiles the stored order set and previews cleaning actions.
type Service struct {
	orders OrdersRepository
}

func NewService(orders OrdersRepository) *Service {
	return &Service{
		orders: orders,
	}
}

// loadTable fetches the date window from storage and scopes the table to
// the requested areas and order modes.
func (s *Service) loadTable(f analytics.Filter) (analytics.Table, error) {
	rows, err := s.orders.GetOrders(f.Start, f.End, nil, nil)
	if err != nil {
		return analytics.Table{}, fmt.Errorf("failed to load orders: %w", err)
	}

	t := analytics.NewTable(rows, analytics.AllRawColumns()...)
	t = analytics.FilterByArea(t, f.Areas)
	return analytics.FilterByOrderMode(t, f.Modes), nil
}

// Report profiles the scoped dataset.
func (s *Service) Report(f analytics.Filter) (domain.QualityReport, error) {
	t, err := s.loadTable(f)
	if err != nil {
		return domain.QualityReport{}, err
	}
	return Analyze(t), nil
}

// PreviewFixes projects the quality score after applying the selected
// fixes, without touching stored data.
func (s *Service) PreviewFixes(f analytics.Filter, fixes []domain.QualityFix) (domain.QualityFixProjection, error) {
	t, err := s.loadTable(f)
	if err != nil {
		return domain.QualityFixProjection{}, err
	}

	stats := ComputeStats(t)
	score := QualityScore(stats)
	return scenario.SimulateQualityFixImpact(score, stats, fixes), nil
}

// ApplyFixes runs the selected fixes against an in-memory copy and
// returns the actions taken plus the re-profiled report.
func (s *Service) ApplyFixes(f analytics.Filter, fixes []domain.QualityFix) (domain.QualityReport, []string, error) {
	t, err := s.loadTable(f)
	if err != nil {
		return domain.QualityReport{}, nil, err
	}

	clean, actions := ApplyFixes(t, fixes)
	return Analyze(clean), actions, nil
}

// PriorityMatrix scores the current issues on impact vs effort.
func (s *Service) PriorityMatrix(f analytics.Filter) ([]domain.PriorityMatrixEntry, error) {
	t, err := s.loadTable(f)
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(t)
	issues := IdentifyIssues(t, stats)
	return scenario.CalculateFixPriorityMatrix(issues, stats), nil
}
