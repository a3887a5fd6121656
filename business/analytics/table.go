package analytics

import (
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
)

// Column names. The ingestion layer decides which raw columns a table has;
// the transformer registers the derived ones it adds. Every computation
// checks presence before touching a column and degrades to an empty result
// when it is missing.
const (
	ColOrderID          = "order_id"
	ColOrderDate        = "order_date"
	ColOrderTime        = "order_time"
	ColDoughPrepTime    = "dough_prep_time"
	ColStylingTime      = "styling_time"
	ColOvenTime         = "oven_time"
	ColBoxingTime       = "boxing_time"
	ColDeliveryDuration = "delivery_duration"
	ColTotalProcessTime = "total_process_time"
	ColOvenTemperature  = "oven_temperature"
	ColDeliveryArea     = "delivery_area"
	ColOrderMode        = "order_mode"
	ColPizzaSize        = "pizza_size"
	ColOrderTaker       = "order_taker"
	ColDoughPrepStaff   = "dough_prep_staff"
	ColStylist          = "stylist"
	ColOvenOperator     = "oven_operator"
	ColBoxer            = "boxer"
	ColDeliveryDriver   = "delivery_driver"
	ColComplaint        = "complaint"
	ColComplaintReason  = "complaint_reason"

	// Derived columns
	ColHourOfDay         = "hour_of_day"
	ColDayOfWeek         = "day_of_week"
	ColDayOfWeekNum      = "day_of_week_num"
	ColIsWeekend         = "is_weekend"
	ColIsPeakLunch       = "is_peak_lunch"
	ColIsPeakDinner      = "is_peak_dinner"
	ColIsPeakHour        = "is_peak_hour"
	ColTotalPrepTime     = "total_prep_time"
	ColDeliveryTargetMet = "delivery_target_met"
	ColOvenTempZone      = "oven_temp_zone"
	ColOvenTempDeviation = "oven_temp_deviation"
	ColDelayCategory     = "delay_category"
	ColPctDoughPrep      = "pct_dough_prep"
	ColPctStyling        = "pct_styling"
	ColPctOven           = "pct_oven"
	ColPctBoxing         = "pct_boxing"
)

// Table is an immutable in-memory order table: rows plus an explicit
// column-presence set.
type Table struct {
	Rows []domain.Order
	cols map[string]struct{}
}

func NewTable(rows []domain.Order, cols ...string) Table {
	t := Table{
		Rows: rows,
		cols: make(map[string]struct{}, len(cols)),
	}
	for _, c := range cols {
		t.cols[c] = struct{}{}
	}
	return t
}

func (t Table) Len() int {
	return len(t.Rows)
}

func (t Table) Has(col string) bool {
	_, ok := t.cols[col]
	return ok
}

// clone deep-copies rows and the column set so transformations never
// mutate the caller's table.
func (t Table) clone() Table {
	rows := make([]domain.Order, len(t.Rows))
	for i := range t.Rows {
		rows[i] = cloneOrder(t.Rows[i])
	}

	cols := make(map[string]struct{}, len(t.cols))
	for c := range t.cols {
		cols[c] = struct{}{}
	}

	return Table{Rows: rows, cols: cols}
}

func (t *Table) addColumn(cols ...string) {
	for _, c := range cols {
		t.cols[c] = struct{}{}
	}
}

func cloneOrder(o domain.Order) domain.Order {
	c := o
	c.DoughPrepTime = cloneFloat(o.DoughPrepTime)
	c.StylingTime = cloneFloat(o.StylingTime)
	c.OvenTime = cloneFloat(o.OvenTime)
	c.BoxingTime = cloneFloat(o.BoxingTime)
	c.DeliveryDuration = cloneFloat(o.DeliveryDuration)
	c.TotalProcessTime = cloneFloat(o.TotalProcessTime)
	c.OvenTemperature = cloneFloat(o.OvenTemperature)
	c.HourOfDay = cloneInt(o.HourOfDay)
	c.DayOfWeekNum = cloneInt(o.DayOfWeekNum)
	c.TotalPrepTime = cloneFloat(o.TotalPrepTime)
	c.OvenTempDeviation = cloneFloat(o.OvenTempDeviation)
	c.PctDoughPrep = cloneFloat(o.PctDoughPrep)
	c.PctStyling = cloneFloat(o.PctStyling)
	c.PctOven = cloneFloat(o.PctOven)
	c.PctBoxing = cloneFloat(o.PctBoxing)
	return c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// floatVal extracts a numeric column from a row; nil means absent.
func floatVal(o *domain.Order, col string) *float64 {
	switch col {
	case ColDoughPrepTime:
		return o.DoughPrepTime
	case ColStylingTime:
		return o.StylingTime
	case ColOvenTime:
		return o.OvenTime
	case ColBoxingTime:
		return o.BoxingTime
	case ColDeliveryDuration:
		return o.DeliveryDuration
	case ColTotalProcessTime:
		return o.TotalProcessTime
	case ColOvenTemperature:
		return o.OvenTemperature
	case ColTotalPrepTime:
		return o.TotalPrepTime
	case ColOvenTempDeviation:
		return o.OvenTempDeviation
	case ColPctDoughPrep:
		return o.PctDoughPrep
	case ColPctStyling:
		return o.PctStyling
	case ColPctOven:
		return o.PctOven
	case ColPctBoxing:
		return o.PctBoxing
	default:
		return nil
	}
}

// stringVal extracts a categorical column from a row; "" means absent.
func stringVal(o *domain.Order, col string) string {
	switch col {
	case ColOrderID:
		return o.ID
	case ColDeliveryArea:
		return o.DeliveryArea
	case ColOrderMode:
		return o.OrderMode
	case ColPizzaSize:
		return o.PizzaSize
	case ColOrderTaker:
		return o.OrderTaker
	case ColDoughPrepStaff:
		return o.DoughPrepStaff
	case ColStylist:
		return o.Stylist
	case ColOvenOperator:
		return o.OvenOperator
	case ColBoxer:
		return o.Boxer
	case ColDeliveryDriver:
		return o.DeliveryDriver
	case ColComplaintReason:
		return o.ComplaintReason
	case ColDelayCategory:
		return o.DelayCategory
	case ColOvenTempZone:
		return o.OvenTempZone
	case ColDayOfWeek:
		return o.DayOfWeek
	default:
		return ""
	}
}

// Floats returns the present values of a numeric column (dropna).
func (t Table) Floats(col string) []float64 {
	if !t.Has(col) {
		return nil
	}

	out := make([]float64, 0, len(t.Rows))
	for i := range t.Rows {
		if v := floatVal(&t.Rows[i], col); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// rawNumericCols are the source numeric columns fix application may write.
var rawNumericCols = []string{
	ColDoughPrepTime, ColStylingTime, ColOvenTime, ColBoxingTime,
	ColDeliveryDuration, ColTotalProcessTime, ColOvenTemperature,
}

// rawStringCols are the source categorical columns.
var rawStringCols = []string{
	ColDeliveryArea, ColOrderMode, ColPizzaSize, ColOrderTaker,
	ColDoughPrepStaff, ColStylist, ColOvenOperator, ColBoxer,
	ColDeliveryDriver, ColComplaintReason,
}

// NumericColumns returns the raw numeric columns present, in a fixed order.
func (t Table) NumericColumns() []string {
	out := make([]string, 0, len(rawNumericCols))
	for _, c := range rawNumericCols {
		if t.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// StringColumns returns the raw categorical columns present, in a fixed order.
func (t Table) StringColumns() []string {
	out := make([]string, 0, len(rawStringCols))
	for _, c := range rawStringCols {
		if t.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// FloatAt reads one numeric cell; nil means missing.
func (t Table) FloatAt(i int, col string) *float64 {
	return floatVal(&t.Rows[i], col)
}

// StringAt reads one categorical cell; "" means missing.
func (t Table) StringAt(i int, col string) string {
	return stringVal(&t.Rows[i], col)
}

// SetFloat writes one numeric cell in place. Only raw source columns are
// writable; derived columns come from the transformer.
func (t Table) SetFloat(i int, col string, v float64) {
	o := &t.Rows[i]
	switch col {
	case ColDoughPrepTime:
		o.DoughPrepTime = &v
	case ColStylingTime:
		o.StylingTime = &v
	case ColOvenTime:
		o.OvenTime = &v
	case ColBoxingTime:
		o.BoxingTime = &v
	case ColDeliveryDuration:
		o.DeliveryDuration = &v
	case ColTotalProcessTime:
		o.TotalProcessTime = &v
	case ColOvenTemperature:
		o.OvenTemperature = &v
	}
}

// SetString writes one categorical cell in place.
func (t Table) SetString(i int, col, v string) {
	o := &t.Rows[i]
	switch col {
	case ColDeliveryArea:
		o.DeliveryArea = v
	case ColOrderMode:
		o.OrderMode = v
	case ColPizzaSize:
		o.PizzaSize = v
	case ColOrderTaker:
		o.OrderTaker = v
	case ColDoughPrepStaff:
		o.DoughPrepStaff = v
	case ColStylist:
		o.Stylist = v
	case ColOvenOperator:
		o.OvenOperator = v
	case ColBoxer:
		o.Boxer = v
	case ColDeliveryDriver:
		o.DeliveryDriver = v
	case ColComplaintReason:
		o.ComplaintReason = v
	}
}

// Clone deep-copies the table.
func (t Table) Clone() Table {
	return t.clone()
}

// WithRows returns a table with the same column set but different rows.
func (t Table) WithRows(rows []domain.Order) Table {
	out := t
	out.Rows = rows
	return out
}

// ColumnCount reports how many columns the table carries.
func (t Table) ColumnCount() int {
	return len(t.cols)
}

// AllRawColumns is the full source column set a database-backed table
// carries.
func AllRawColumns() []string {
	cols := []string{ColOrderID, ColOrderDate, ColOrderTime, ColComplaint}
	cols = append(cols, rawNumericCols...)
	cols = append(cols, rawStringCols...)
	return cols
}
