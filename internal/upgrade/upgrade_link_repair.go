package upgrade

import (
	"context"

	"github.com/haierkeys/note-graph-service/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// LinkRepairMigrate 清理自环链接与指向已删除笔记的悬空链接
type LinkRepairMigrate struct{}

func (m *LinkRepairMigrate) Version() string {
	return "0.1.0"
}

func (m *LinkRepairMigrate) Description() string {
	return "Remove self links and links whose source or target note is gone"
}

func (m *LinkRepairMigrate) Up(ctx context.Context, tx *gorm.DB) error {
	tx = tx.WithContext(ctx)

	if err := tx.Where("source_note_id = target_note_id").Delete(&model.NoteLink{}).Error; err != nil {
		return errors.Wrap(err, "delete self links")
	}

	live := tx.Session(&gorm.Session{NewDB: true}).Model(&model.Note{}).Select("id")
	err := tx.Where("source_note_id NOT IN (?) OR target_note_id NOT IN (?)", live, live).
		Delete(&model.NoteLink{}).Error
	return errors.Wrap(err, "delete dangling links")
}
