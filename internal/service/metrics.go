package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// noteOperations 笔记写操作计数
	noteOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "note_graph",
		Name:      "note_operations_total",
		Help:      "Note write operations by operation and result.",
	}, []string{"operation", "result"})

	// linkActions 更新笔记时的入链调和动作计数
	linkActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "note_graph",
		Name:      "link_actions_total",
		Help:      "Incoming link changes applied on note update.",
	}, []string{"action"})

	// authAttempts 登录/注册/刷新结果计数
	authAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "note_graph",
		Name:      "auth_attempts_total",
		Help:      "Signup, login and refresh attempts by result.",
	}, []string{"operation", "result"})
)

func observe(vec *prometheus.CounterVec, operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	vec.WithLabelValues(operation, result).Inc()
}
