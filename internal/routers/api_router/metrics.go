package api_router

import (
	"expvar"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/note-graph-service/internal/app"
)

var (
	publishOnce sync.Once
	current     atomic.Pointer[app.App]
)

// PublishVars 注册服务自身的 expvar 指标
// expvar names can only be published once per process; a config reload swaps the app they read from.
func PublishVars(a *app.App) {
	current.Store(a)
	publishOnce.Do(func() {
		expvar.Publish("uptime", expvar.Func(func() interface{} { return current.Load().Uptime() }))
		expvar.Publish("goroutines", expvar.Func(func() interface{} { return runtime.NumGoroutine() }))
		expvar.Publish("write_queues", expvar.Func(func() interface{} {
			return current.Load().WriteQueueManager().QueueCount()
		}))
	})
}

// Expvar 导出系统运行时指标
// 将 expvar 导出的 JSON 数据写入响应
func Expvar(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	first := true
	report := func(key string, value interface{}) {
		if !first {
			fmt.Fprintf(c.Writer, ",\n")
		}
		first = false
		fmt.Fprintf(c.Writer, "%q: %v", key, value)
	}

	fmt.Fprintf(c.Writer, "{\n")
	expvar.Do(func(kv expvar.KeyValue) {
		report(kv.Key, kv.Value)
	})
	fmt.Fprintf(c.Writer, "\n}\n")
}
