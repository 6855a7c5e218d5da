package model

type Network struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DataPlan struct {
	ID        string  `json:"id"`
	NetworkID string  `json:"network_id"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Validity  string  `json:"validity"`
	Price     float64 `json:"price"`
}

type TVProvider struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TVPlan struct {
	ID         string  `json:"id"`
	ProviderID string  `json:"provider_id"`
	Name       string  `json:"name"`
	Duration   string  `json:"duration"`
	Price      float64 `json:"price"`
}

type Disco struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ExamService struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type City struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type Flight struct {
	ID          int64   `json:"id"`
	Airline     string  `json:"airline"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Departure   string  `json:"departure"`
	Arrival     string  `json:"arrival"`
	Duration    string  `json:"duration"`
	Stops       string  `json:"stops"`
	Aircraft    string  `json:"aircraft"`
	Price       float64 `json:"price"`
}
