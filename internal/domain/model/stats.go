package model

// GPUStats is telemetry passed through from the synthesis backend.
type GPUStats struct {
	Current     float64 `json:"current"`
	MemoryUsed  float64 `json:"memory_used"`
	MemoryTotal float64 `json:"memory_total"`
	Temperature float64 `json:"temperature"`
}

// AdminStats aggregates the read-only dashboard numbers.
type AdminStats struct {
	TotalUsers       int      `json:"total_users"`
	ActiveUsers      int      `json:"active_users"`
	TotalOrders      int      `json:"total_orders"`
	PendingOrders    int      `json:"pending_orders"`
	TotalCreditsSold int64    `json:"total_credits_sold"`
	TotalCreditsUsed int64    `json:"total_credits_used"`
	TotalGenerations int      `json:"total_generations"`
	RevenueCents     int64    `json:"total_revenue_cents"`
	GPU              GPUStats `json:"gpu_usage"`
}
