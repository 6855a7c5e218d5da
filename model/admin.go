package model

type AdminStats struct {
	TotalUsers        int64   `json:"total_users"`
	ActiveUsers       int64   `json:"active_users"`
	TotalTransactions int64   `json:"total_transactions"`
	TotalRevenue      float64 `json:"total_revenue"`
}

type SetUserStatusReq struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE SUSPENDED"`
}
