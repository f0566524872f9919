// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/haierkeys/note-graph-service/internal/model"
	"github.com/haierkeys/note-graph-service/pkg/fileurl"
	"github.com/haierkeys/note-graph-service/pkg/util"
	"github.com/haierkeys/note-graph-service/pkg/writequeue"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type            string // sqlite / mysql / postgres
	Path            string // sqlite 文件路径
	UserName        string
	Password        string
	Host            string // host[:port]
	Name            string
	SSLMode         string // postgres sslmode
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
	Tracing         bool
}

// Dao 数据访问入口
type Dao struct {
	db         *gorm.DB
	logger     *zap.Logger
	writeQueue *writequeue.Manager
}

// New creates a Dao. writeQueue may be nil, in which case writes run directly.
func New(db *gorm.DB, writeQueue *writequeue.Manager, lg *zap.Logger) *Dao {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Dao{db: db, writeQueue: writeQueue, logger: lg}
}

func (d *Dao) DB() *gorm.DB {
	return d.db
}

// ExecuteWrite runs fn on the write queue of uid so writes of one user never interleave.
// ExecuteWrite 通过用户写队列执行写操作
func (d *Dao) ExecuteWrite(ctx context.Context, uid int64, fn func(ctx context.Context, db *gorm.DB) error) error {
	if d.writeQueue == nil {
		return fn(ctx, d.db.WithContext(ctx))
	}
	return d.writeQueue.Execute(ctx, uid, func(ctx context.Context) error {
		return fn(ctx, d.db.WithContext(ctx))
	})
}

// TableName resolves the table of a model including the configured prefix.
func (d *Dao) TableName(m interface{}) string {
	stmt := &gorm.Statement{DB: d.db}
	if err := stmt.Parse(m); err != nil {
		d.logger.Error("parse model schema", zap.Error(err))
		return ""
	}
	return stmt.Schema.Table
}

// Ping 检查数据库连通性
func (d *Dao) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}
	return sqlDB.PingContext(ctx)
}

// KeepAlive 执行一次 SELECT 1
func (d *Dao) KeepAlive(ctx context.Context) error {
	var one int
	return d.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
}

// Close 关闭数据库连接
func (d *Dao) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewDBEngineWithConfig opens the database, applies pool settings, installs
// the opentracing plugin and migrates the schema when configured.
// NewDBEngineWithConfig 创建数据库连接
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	if lg == nil {
		lg = zap.NewNop()
	}

	dialector, err := useDialector(c)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if c.RunMode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: c.TablePrefix, // 表名前缀，`Note` 的表名为 `{prefix}notes`
		},
		// unique index violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", c.Type)
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}

	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	sqlDB.SetConnMaxLifetime(util.ParseDurationOr(c.ConnMaxLifetime, 10*time.Minute))
	sqlDB.SetConnMaxIdleTime(util.ParseDurationOr(c.ConnMaxIdleTime, 5*time.Minute))

	if c.Tracing {
		if err := db.Use(&gormTracing.OpentracingPlugin{}); err != nil {
			lg.Warn("gorm tracing plugin", zap.Error(err))
		}
	}

	if c.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	lg.Info("database connected", zap.String("type", c.Type), zap.String("name", dbDisplayName(c)))
	return db, nil
}

func useDialector(c DatabaseConfig) (gorm.Dialector, error) {
	switch strings.ToLower(c.Type) {
	case "mysql":
		charset := c.Charset
		if charset == "" {
			charset = "utf8mb4"
		}
		// clientFoundRows: RowsAffected counts matched rows, so saving an
		// unchanged note is not mistaken for a missing one
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local&clientFoundRows=true",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			charset,
			c.ParseTime,
		)), nil
	case "postgres", "postgresql":
		host, port := c.Host, "5432"
		if i := strings.LastIndex(c.Host, ":"); i != -1 {
			host, port = c.Host[:i], c.Host[i+1:]
		}
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return postgres.Open(fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, c.UserName, c.Password, c.Name, sslMode)), nil
	case "sqlite", "":
		if c.Path == "" {
			return nil, errors.New("sqlite path is empty")
		}
		if !fileurl.IsExist(c.Path) {
			if err := fileurl.CreatePath(c.Path, os.ModePerm); err != nil {
				return nil, errors.Wrap(err, "create sqlite dir")
			}
		}
		return sqlite.Open(sqliteDSN(c.Path)), nil
	}
	return nil, errors.Errorf("unsupported database type %q", c.Type)
}

// sqliteDSN enables WAL and a busy timeout so concurrent writers of different users wait instead of failing.
func sqliteDSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	return path + "?" + q.Encode()
}

func dbDisplayName(c DatabaseConfig) string {
	if strings.ToLower(c.Type) == "sqlite" || c.Type == "" {
		return c.Path
	}
	return c.Host + "/" + c.Name
}
