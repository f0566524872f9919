// Package upgrade 记录并执行数据修复脚本，每个版本只执行一次
package upgrade

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/mod/semver"
	"gorm.io/gorm"
)

// SchemaVersion 数据库版本记录表
type SchemaVersion struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Version     string    `gorm:"not null;uniqueIndex;type:varchar(64)" json:"version"`
	Description string    `gorm:"type:text" json:"description"`
	AppliedAt   time.Time `gorm:"not null" json:"applied_at"`
}

// Migration 定义升级接口
type Migration interface {
	Version() string
	Description() string
	Up(ctx context.Context, tx *gorm.DB) error
}

// MigrationManager 升级管理器
type MigrationManager struct {
	db         *gorm.DB
	logger     *zap.Logger
	migrations []Migration
}

// NewMigrationManager 创建升级管理器，migrations 为空时使用内置脚本
func NewMigrationManager(db *gorm.DB, lg *zap.Logger, migrations ...Migration) *MigrationManager {
	if len(migrations) == 0 {
		migrations = []Migration{
			&LinkRepairMigrate{},
		}
	}
	return &MigrationManager{db: db, logger: lg, migrations: migrations}
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Run 按版本顺序执行未应用且不高于 runningVersion 的脚本，返回执行数量
func (m *MigrationManager) Run(ctx context.Context, runningVersion string) (int, error) {
	running := canonical(runningVersion)
	if !semver.IsValid(running) {
		return 0, errors.Errorf("running version %q is not a valid semver", runningVersion)
	}

	if err := m.db.WithContext(ctx).AutoMigrate(&SchemaVersion{}); err != nil {
		return 0, errors.Wrap(err, "create schema_version table")
	}

	var applied []SchemaVersion
	if err := m.db.WithContext(ctx).Find(&applied).Error; err != nil {
		return 0, errors.Wrap(err, "load applied versions")
	}
	done := make(map[string]bool, len(applied))
	for _, v := range applied {
		done[canonical(v.Version)] = true
	}

	pending := make([]Migration, 0, len(m.migrations))
	for _, mg := range m.migrations {
		v := canonical(mg.Version())
		if !semver.IsValid(v) {
			return 0, errors.Errorf("migration version %q is not a valid semver", mg.Version())
		}
		if done[v] {
			continue
		}
		// 脚本版本高于当前程序版本时留给后续版本执行
		if semver.Compare(v, running) > 0 {
			m.logger.Info("skip migration newer than running version",
				zap.String("scriptVersion", mg.Version()),
				zap.String("runningVersion", runningVersion))
			continue
		}
		pending = append(pending, mg)
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return semver.Compare(canonical(pending[i].Version()), canonical(pending[j].Version())) < 0
	})

	for _, mg := range pending {
		m.logger.Info("applying migration",
			zap.String("scriptVersion", mg.Version()),
			zap.String("desc", mg.Description()))

		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mg.Up(ctx, tx); err != nil {
				return err
			}
			return tx.Create(&SchemaVersion{
				Version:     mg.Version(),
				Description: mg.Description(),
				AppliedAt:   time.Now(),
			}).Error
		})
		if err != nil {
			return 0, errors.Wrapf(err, "apply migration %s", mg.Version())
		}
	}

	if len(pending) == 0 {
		m.logger.Info("database is already up to date")
	} else {
		m.logger.Info("upgrade completed", zap.Int("migrations_applied", len(pending)))
	}
	return len(pending), nil
}

// Execute 执行内置升级脚本
func Execute(ctx context.Context, db *gorm.DB, lg *zap.Logger, runningVersion string) error {
	if db == nil {
		return errors.New("database not initialized")
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	_, err := NewMigrationManager(db, lg).Run(ctx, runningVersion)
	return err
}
