// Package ws holds WebSocket message types and the Hub implementation.
// messages.go defines all message structs pushed to connected dashboard
// clients. The server is push-only; clients never send application frames.
package ws

import (
	"time"

	"github.com/shadowlynx/monitor/internal/domain"
)

// MsgType identifies the kind of WS message so clients can switch on it.
type MsgType string

const (
	MsgTypeHealthUpdate   MsgType = "health_update"
	MsgTypeDashboardStats MsgType = "dashboard_stats"
	MsgTypeError          MsgType = "error"
)

// HealthUpdateMessage carries a full health snapshot after each probe cycle.
// The client's status badge has its own poll timer; these pushes are a
// separate, server-paced channel and the two intervals are never coupled.
type HealthUpdateMessage struct {
	Type      MsgType                               `json:"type"`
	Overall   domain.OverallHealth                  `json:"overall"`
	Services  map[string]domain.ServiceStatusRecord `json:"services"`
	Timestamp time.Time                             `json:"timestamp"`
}

// DashboardStatsMessage carries the headline aggregates pushed on the
// stats broadcast interval.
type DashboardStatsMessage struct {
	Type              MsgType   `json:"type"`
	TotalProfitUSD    string    `json:"total_profit_usd"`
	TotalTransactions int       `json:"total_transactions"`
	AvgProfitPerTrade string    `json:"avg_profit_per_trade"`
	SuccessRate       string    `json:"success_rate"`
	Timestamp         time.Time `json:"timestamp"`
}

// ErrorMessage is sent directly to one client (not broadcast).
type ErrorMessage struct {
	Type    MsgType `json:"type"`
	Code    string  `json:"code"`
	Message string  `json:"message"`
}
