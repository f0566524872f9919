package cmd

import (
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/haierkeys/note-graph-service/pkg/fileurl"

	"github.com/google/uuid"
	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultConfigPath 首次运行时生成的配置文件路径
const defaultConfigPath = "config/config.yaml"

// authTokenPlaceholder 内嵌配置中的密钥占位符，生成配置时替换为随机值
const authTokenPlaceholder = "note-graph-auth-token"

type runFlags struct {
	dir     string // Project root directory // 项目根目录
	port    string // Startup port // 启动端口
	runMode string // Startup mode // 启动模式
	config  string // Specified configuration file path // 指定要使用的配置文件路径
	envFile string // .env file path // .env 文件路径
}

// serverHolder 持有当前运行的 Server，配置热重载时替换
type serverHolder struct {
	mu sync.Mutex
	s  *Server
}

func (h *serverHolder) get() *Server {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.s
}

func (h *serverHolder) set(s *Server) {
	h.mu.Lock()
	h.s = s
	h.mu.Unlock()
}

// resolveConfigPath 查找配置文件，均不存在时写出内嵌默认配置
func resolveConfigPath(path string) (string, error) {
	if len(path) > 0 {
		return path, nil
	}
	for _, candidate := range []string{"config/config-dev.yaml", "config.yaml", defaultConfigPath} {
		if fileurl.IsExist(candidate) {
			return candidate, nil
		}
	}

	bootstrapLogger.Warn("config file not found, creating default config")
	content := strings.Replace(configDefault, authTokenPlaceholder, strings.ReplaceAll(uuid.NewString(), "-", ""), 1)
	if _, err := fileurl.WriteFileIfAbsent(defaultConfigPath, []byte(content), 0644); err != nil {
		return "", err
	}
	bootstrapLogger.Info("config file auto create successfully", zap.String("path", defaultConfigPath))
	return defaultConfigPath, nil
}

func init() {
	runEnv := new(runFlags)

	var runCommand = &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir] [-p port] [-m mode]",
		Short: "Run service",
		Run: func(cmd *cobra.Command, args []string) {
			if len(runEnv.dir) > 0 {
				if err := os.Chdir(runEnv.dir); err != nil {
					bootstrapLogger.Error("failed to change the current working directory", zap.Error(err))
					return
				}
				bootstrapLogger.Info("working directory changed", zap.String("dir", runEnv.dir))
			}

			configPath, err := resolveConfigPath(runEnv.config)
			if err != nil {
				bootstrapLogger.Error("config file auto create error", zap.Error(err))
				return
			}
			runEnv.config = configPath

			s, err := NewServer(runEnv)
			if err != nil {
				bootstrapLogger.Error("api service start err", zap.Error(err))
				return
			}
			holder := &serverHolder{s: s}

			w := watcher.New()

			// 每个监听周期至多接收 1 个事件
			w.SetMaxEvents(1)

			// 只通知写入事件
			w.FilterOps(watcher.Write)

			go func() {
				for {
					select {
					case event := <-w.Event:
						old := holder.get()
						old.logger.Info("config watcher change", zap.String("event", event.Op.String()), zap.String("file", event.Path))

						// 先释放端口与数据库，再按新配置重建
						old.sc.SendCloseSignal(nil)
						if err := old.sc.WaitClosed(); err != nil {
							old.logger.Error("shutdown before reload failed", zap.Error(err))
						}

						next, err := NewServer(runEnv)
						if err != nil {
							bootstrapLogger.Error("service restart err", zap.Error(err))
							continue
						}
						holder.set(next)

					case err := <-w.Error:
						holder.get().logger.Error("config watcher error", zap.Error(err))
					case <-w.Closed:
						bootstrapLogger.Info("config watcher closed")
						return
					}
				}
			}()

			if err := w.Add(runEnv.config); err != nil {
				s.logger.Error("config watcher file error", zap.Error(err))
			}

			go func() {
				if err := w.Start(time.Second * 5); err != nil {
					holder.get().logger.Error("config watcher start error", zap.Error(err))
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			w.Close()

			current := holder.get()
			current.logger.Info("Received shutdown signal, initiating graceful shutdown...")
			current.sc.SendCloseSignal(nil)

			// 等待所有关闭处理器完成（包括 App Container 的优雅关闭）
			if err := current.sc.WaitClosed(); err != nil {
				current.logger.Error("Shutdown completed with error", zap.Error(err))
			} else {
				current.logger.Info("Service has been shut down gracefully.")
			}
			_ = current.logger.Sync()
		},
	}

	rootCmd.AddCommand(runCommand)
	fs := runCommand.Flags()
	fs.StringVarP(&runEnv.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&runEnv.port, "port", "p", "", "run port")
	fs.StringVarP(&runEnv.runMode, "mode", "m", "", "run mode")
	fs.StringVarP(&runEnv.config, "config", "c", "", "config file")
	fs.StringVarP(&runEnv.envFile, "env", "e", ".env", "env file")
}
