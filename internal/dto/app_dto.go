package dto

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status   string `json:"status"`   // ok / degraded
	Version  string `json:"version"`  // 服务版本
	Uptime   string `json:"uptime"`   // 运行时长
	Database string `json:"database"` // ok / error
	Instance string `json:"instance"` // 实例标识
}
