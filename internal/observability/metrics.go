package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	storeActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homespace_store_actions_total",
			Help: "Total number of state transitions applied, per store and action.",
		},
		[]string{"store", "action"},
	)
	messagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homespace_messages_total",
			Help: "Total number of chat messages added, per message type.",
		},
		[]string{"type"},
	)
	onlineUsers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "homespace_online_users",
			Help: "Number of users currently in the online set.",
		},
	)
	unreadMessages = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "homespace_unread_messages",
			Help: "Total unread messages across all rooms.",
		},
	)
	snapshotOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homespace_snapshot_ops_total",
			Help: "Total number of snapshot persistence operations.",
		},
		[]string{"op", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		storeActionsTotal,
		messagesTotal,
		onlineUsers,
		unreadMessages,
		snapshotOpsTotal,
	)
}

func IncStoreAction(store, action string) {
	storeActionsTotal.WithLabelValues(store, action).Inc()
}

func IncMessage(msgType string) {
	messagesTotal.WithLabelValues(msgType).Inc()
}

func SetOnlineUsers(n int) {
	onlineUsers.Set(float64(n))
}

func SetUnreadMessages(n int) {
	unreadMessages.Set(float64(n))
}

func IncSnapshotOp(op, status string) {
	snapshotOpsTotal.WithLabelValues(op, status).Inc()
}
