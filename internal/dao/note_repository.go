package dao

import (
	"context"
	"time"

	"github.com/haierkeys/note-graph-service/internal/domain"
	"github.com/haierkeys/note-graph-service/internal/model"
	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
// With tx set every call runs inside that transaction and skips the write queue.
type noteRepository struct {
	dao *Dao
	tx  *gorm.DB
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// noteRow is a note joined with its incoming link.
type noteRow struct {
	model.Note
	ParentID *int64 `gorm:"column:parent_id"`
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note, parentID *int64) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:        m.ID,
		UID:       m.UID,
		Title:     m.Title,
		Content:   m.Content,
		ParentID:  parentID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *noteRepository) read(ctx context.Context) *gorm.DB {
	if r.tx != nil {
		return r.tx.WithContext(ctx)
	}
	return r.dao.DB().WithContext(ctx)
}

func (r *noteRepository) write(ctx context.Context, uid int64, fn func(db *gorm.DB) error) error {
	if r.tx != nil {
		return fn(r.tx.WithContext(ctx))
	}
	return r.dao.ExecuteWrite(ctx, uid, func(ctx context.Context, db *gorm.DB) error {
		return fn(db)
	})
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, note *domain.Note, uid int64) (*domain.Note, error) {
	m := &model.Note{
		UID:     uid,
		Title:   note.Title,
		Content: note.Content,
	}
	err := r.write(ctx, uid, func(db *gorm.DB) error {
		return db.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m, nil), nil
}

// UpdateContent 更新标题与内容
func (r *noteRepository) UpdateContent(ctx context.Context, id, uid int64, title, content string) (int64, error) {
	var affected int64
	err := r.write(ctx, uid, func(db *gorm.DB) error {
		result := db.Model(&model.Note{}).
			Where("id = ? AND uid = ?", id, uid).
			Updates(map[string]interface{}{
				"title":      title,
				"content":    content,
				"updated_at": time.Now(),
			})
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}

// GetByID left joins the note to its incoming link; parent_id is NULL for a root.
// GetByID 根据ID获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Note, error) {
	notes := r.dao.TableName(&model.Note{})
	links := r.dao.TableName(&model.NoteLink{})

	var row noteRow
	err := r.read(ctx).
		Table(notes+" AS n").
		Select("n.*, nl.source_note_id AS parent_id").
		Joins("LEFT JOIN "+links+" AS nl ON nl.target_note_id = n.id AND nl.uid = ?", uid).
		Where("n.id = ? AND n.uid = ?", id, uid).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&row.Note, row.ParentID), nil
}

// Exists 判断笔记是否存在
func (r *noteRepository) Exists(ctx context.Context, id, uid int64) (bool, error) {
	var count int64
	err := r.read(ctx).Model(&model.Note{}).
		Where("id = ? AND uid = ?", id, uid).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

// Delete 物理删除笔记
func (r *noteRepository) Delete(ctx context.Context, id, uid int64) (int64, error) {
	var affected int64
	err := r.write(ctx, uid, func(db *gorm.DB) error {
		result := db.Where("id = ? AND uid = ?", id, uid).Delete(&model.Note{})
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}

// List 获取用户全部笔记
func (r *noteRepository) List(ctx context.Context, uid int64) ([]*domain.Note, error) {
	var modelList []*model.Note
	err := r.read(ctx).
		Select("id", "uid", "title", "created_at", "updated_at").
		Where("uid = ?", uid).
		Order("id ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	results := make([]*domain.Note, 0, len(modelList))
	for _, m := range modelList {
		results = append(results, r.toDomain(m, nil))
	}
	return results, nil
}
