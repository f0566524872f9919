package task

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/haierkeys/note-graph-service/internal/app"
	"github.com/haierkeys/note-graph-service/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const selfPingTimeout = 15 * time.Second

// SelfPingTask 定时请求自身健康检查地址，防止托管平台休眠实例
type SelfPingTask struct {
	url      string
	interval time.Duration
	client   *http.Client
	logger   *zap.Logger
}

func (t *SelfPingTask) Name() string {
	return "SelfPing"
}

func (t *SelfPingTask) LoopInterval() time.Duration {
	return t.interval
}

func (t *SelfPingTask) IsStartupRun() bool {
	return false
}

// Run 请求一次 SELF_URL，非 2xx 视为失败
func (t *SelfPingTask) Run(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.url, nil)
	if err != nil {
		return errors.Wrap(err, "build self-ping request")
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "self-ping")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("self-ping %s: status %d", t.url, resp.StatusCode)
	}
	t.logger.Info("self-ping ok",
		zap.String(logger.FieldTask, t.Name()),
		zap.String("url", t.url),
		zap.Int("status", resp.StatusCode))
	return nil
}

// NewSelfPingTask 创建自 ping 任务，url 为空或 interval <= 0 时返回 nil
func NewSelfPingTask(url string, interval time.Duration, client *http.Client, lg *zap.Logger) Task {
	url = strings.TrimSpace(url)
	if url == "" || interval <= 0 {
		return nil
	}
	if client == nil {
		client = &http.Client{Timeout: selfPingTimeout}
	}
	return &SelfPingTask{url: url, interval: interval, client: client, logger: lg}
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		cfg := appContainer.Config()
		t := NewSelfPingTask(cfg.Task.SelfURL, cfg.GetSelfPingInterval(), nil, appContainer.Logger())
		if t == nil {
			appContainer.Logger().Info("self-ping task is disabled (self-url not configured)")
			return nil, nil
		}
		return t, nil
	})
}
