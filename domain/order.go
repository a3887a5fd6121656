package domain

import "time"

// Order is one delivery event. Optional numeric measurements are pointers
// (nil = the source never recorded the value); categorical and staff fields
// use "" for absent. Complaint is a plain bool and is never unknown: the
// ingestion layer defaults it to false.
type Order struct {
	ID        string    `json:"order_id" gorm:"column:order_id;primaryKey"`
	OrderDate time.Time `json:"order_date" gorm:"column:order_date"`
	OrderTime string    `json:"order_time" gorm:"column:order_time"`

	// Pipeline stage durations, minutes
	DoughPrepTime    *float64 `json:"dough_prep_time,omitempty" gorm:"column:dough_prep_time"`
	StylingTime      *float64 `json:"styling_time,omitempty" gorm:"column:styling_time"`
	OvenTime         *float64 `json:"oven_time,omitempty" gorm:"column:oven_time"`
	BoxingTime       *float64 `json:"boxing_time,omitempty" gorm:"column:boxing_time"`
	DeliveryDuration *float64 `json:"delivery_duration,omitempty" gorm:"column:delivery_duration"`

	// Source-provided end-to-end time, overrides the computed sum when present
	TotalProcessTime *float64 `json:"total_process_time,omitempty" gorm:"column:total_process_time"`

	OvenTemperature *float64 `json:"oven_temperature,omitempty" gorm:"column:oven_temperature"`

	DeliveryArea string `json:"delivery_area,omitempty" gorm:"column:delivery_area"`
	OrderMode    string `json:"order_mode,omitempty" gorm:"column:order_mode"`
	PizzaSize    string `json:"pizza_size,omitempty" gorm:"column:pizza_size"`

	OrderTaker     string `json:"order_taker,omitempty" gorm:"column:order_taker"`
	DoughPrepStaff string `json:"dough_prep_staff,omitempty" gorm:"column:dough_prep_staff"`
	Stylist        string `json:"stylist,omitempty" gorm:"column:stylist"`
	OvenOperator   string `json:"oven_operator,omitempty" gorm:"column:oven_operator"`
	Boxer          string `json:"boxer,omitempty" gorm:"column:boxer"`
	DeliveryDriver string `json:"delivery_driver,omitempty" gorm:"column:delivery_driver"`

	Complaint       bool   `json:"complaint" gorm:"column:complaint"`
	ComplaintReason string `json:"complaint_reason,omitempty" gorm:"column:complaint_reason"`

	// Derived fields, populated only by the feature transformer
	HourOfDay         *int     `json:"hour_of_day,omitempty" gorm:"-"`
	DayOfWeek         string   `json:"day_of_week,omitempty" gorm:"-"`
	DayOfWeekNum      *int     `json:"day_of_week_num,omitempty" gorm:"-"`
	IsWeekend         bool     `json:"is_weekend" gorm:"-"`
	IsPeakLunch       bool     `json:"is_peak_lunch" gorm:"-"`
	IsPeakDinner      bool     `json:"is_peak_dinner" gorm:"-"`
	IsPeakHour        bool     `json:"is_peak_hour" gorm:"-"`
	TotalPrepTime     *float64 `json:"total_prep_time,omitempty" gorm:"-"`
	DeliveryTargetMet bool     `json:"delivery_target_met" gorm:"-"`
	OvenTempZone      string   `json:"oven_temp_zone,omitempty" gorm:"-"`
	OvenTempDeviation *float64 `json:"oven_temp_deviation,omitempty" gorm:"-"`
	DelayCategory     string   `json:"delay_category,omitempty" gorm:"-"`
	PctDoughPrep      *float64 `json:"pct_dough_prep,omitempty" gorm:"-"`
	PctStyling        *float64 `json:"pct_styling,omitempty" gorm:"-"`
	PctOven           *float64 `json:"pct_oven,omitempty" gorm:"-"`
	PctBoxing         *float64 `json:"pct_boxing,omitempty" gorm:"-"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Order) TableName() string {
	return "orders"
}
