package dao

import (
	"context"

	"github.com/haierkeys/note-graph-service/internal/domain"
	"github.com/haierkeys/note-graph-service/internal/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// noteLinkRepository implements domain.NoteLinkRepository interface
type noteLinkRepository struct {
	dao *Dao
	tx  *gorm.DB
}

// NewNoteLinkRepository creates a NoteLinkRepository instance
func NewNoteLinkRepository(dao *Dao) domain.NoteLinkRepository {
	return &noteLinkRepository{dao: dao}
}

// toDomain converts database model to domain model
func (r *noteLinkRepository) toDomain(m *model.NoteLink) *domain.NoteLink {
	if m == nil {
		return nil
	}
	return &domain.NoteLink{
		ID:           m.ID,
		UID:          m.UID,
		SourceNoteID: m.SourceNoteID,
		TargetNoteID: m.TargetNoteID,
		CreatedAt:    m.CreatedAt,
	}
}

func (r *noteLinkRepository) read(ctx context.Context) *gorm.DB {
	if r.tx != nil {
		return r.tx.WithContext(ctx)
	}
	return r.dao.DB().WithContext(ctx)
}

func (r *noteLinkRepository) write(ctx context.Context, uid int64, fn func(db *gorm.DB) error) error {
	if r.tx != nil {
		return fn(r.tx.WithContext(ctx))
	}
	return r.dao.ExecuteWrite(ctx, uid, func(ctx context.Context, db *gorm.DB) error {
		return fn(db)
	})
}

// Create creates a link; a second incoming link for the same target fails with gorm.ErrDuplicatedKey
func (r *noteLinkRepository) Create(ctx context.Context, link *domain.NoteLink, uid int64) (*domain.NoteLink, error) {
	m := &model.NoteLink{
		UID:          uid,
		SourceNoteID: link.SourceNoteID,
		TargetNoteID: link.TargetNoteID,
	}
	err := r.write(ctx, uid, func(db *gorm.DB) error {
		return db.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// GetIncoming gets the link whose target is targetNoteID, nil when the note is a root
func (r *noteLinkRepository) GetIncoming(ctx context.Context, targetNoteID, uid int64) (*domain.NoteLink, error) {
	var m model.NoteLink
	err := r.read(ctx).
		Where("uid = ? AND target_note_id = ?", uid, targetNoteID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// UpdateSource re-parents an existing link in place
func (r *noteLinkRepository) UpdateSource(ctx context.Context, id, sourceNoteID, uid int64) error {
	return r.write(ctx, uid, func(db *gorm.DB) error {
		return db.Model(&model.NoteLink{}).
			Where("id = ? AND uid = ?", id, uid).
			Update("source_note_id", sourceNoteID).Error
	})
}

// Delete deletes one link
func (r *noteLinkRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.write(ctx, uid, func(db *gorm.DB) error {
		return db.Where("id = ? AND uid = ?", id, uid).Delete(&model.NoteLink{}).Error
	})
}

// DeleteByNoteID deletes every link where the note is parent or child
func (r *noteLinkRepository) DeleteByNoteID(ctx context.Context, noteID, uid int64) (int64, error) {
	var affected int64
	err := r.write(ctx, uid, func(db *gorm.DB) error {
		result := db.Where("uid = ? AND (source_note_id = ? OR target_note_id = ?)", uid, noteID, noteID).
			Delete(&model.NoteLink{})
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}

// List gets all links of the user
func (r *noteLinkRepository) List(ctx context.Context, uid int64) ([]*domain.NoteLink, error) {
	var modelList []*model.NoteLink
	err := r.read(ctx).
		Where("uid = ?", uid).
		Order("id ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	results := make([]*domain.NoteLink, 0, len(modelList))
	for _, m := range modelList {
		results = append(results, r.toDomain(m))
	}
	return results, nil
}
