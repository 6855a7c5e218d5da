package model

import "time"

const (
	OrderAirtime     = "airtime"
	OrderData        = "data"
	OrderTV          = "tv"
	OrderElectricity = "electricity"
	OrderEducation   = "education"
	OrderFlight      = "flight"

	OrderSuccess = "SUCCESS"
	OrderFailed  = "FAILED"
)

// Order records one fulfilled service purchase. Recipient is the phone
// number, smart card, meter number or exam number the service was delivered
// to — an opaque string to this system.
type Order struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Category    string    `json:"category"`
	Provider    string    `json:"provider"`
	ItemCode    string    `json:"item_code,omitempty"`
	Recipient   string    `json:"recipient"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	Token       string    `json:"token,omitempty"`
	Reference   string    `json:"reference"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type AirtimeReq struct {
	Network string  `json:"network" validate:"required"`
	Phone   string  `json:"phone" validate:"required,min=7"`
	Amount  float64 `json:"amount" validate:"required,gte=50"`
}

type DataReq struct {
	Network string `json:"network" validate:"required"`
	PlanID  string `json:"plan_id" validate:"required"`
	Phone   string `json:"phone" validate:"required,min=7"`
}

type TVReq struct {
	Provider  string `json:"provider" validate:"required"`
	PlanID    string `json:"plan_id" validate:"required"`
	SmartCard string `json:"smart_card" validate:"required,min=6"`
}

type ElectricityReq struct {
	Disco       string  `json:"disco" validate:"required"`
	MeterType   string  `json:"meter_type" validate:"required,oneof=prepaid postpaid"`
	MeterNumber string  `json:"meter_number" validate:"required,min=6"`
	Amount      float64 `json:"amount" validate:"required,gte=500"`
}

type EducationReq struct {
	Service    string `json:"service" validate:"required"`
	ExamNumber string `json:"exam_number" validate:"required"`
	ExamYear   int    `json:"exam_year" validate:"required,gte=2000"`
}

type ValidateCustomerReq struct {
	Provider string `json:"provider" validate:"required"`
	Account  string `json:"account" validate:"required,min=6"`
}

type FlightSearchReq struct {
	TripType   string `json:"trip_type" validate:"required,oneof=one-way round-trip"`
	From       string `json:"from" validate:"required"`
	To         string `json:"to" validate:"required"`
	DepartDate string `json:"depart_date" validate:"required"`
	ReturnDate string `json:"return_date" validate:"required_if=TripType round-trip"`
	Passengers int    `json:"passengers" validate:"required,gte=1,lte=9"`
	Class      string `json:"class" validate:"omitempty,oneof=economy business first"`
}

type FlightBookReq struct {
	FlightID   int64 `json:"flight_id" validate:"required"`
	Passengers int   `json:"passengers" validate:"required,gte=1,lte=9"`
}
