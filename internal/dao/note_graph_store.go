package dao

import (
	"context"

	"github.com/haierkeys/note-graph-service/internal/domain"
	"gorm.io/gorm"
)

// noteGraphStore 实现 domain.NoteGraphStore
type noteGraphStore struct {
	dao *Dao
	tx  *gorm.DB
}

// NewNoteGraphStore 创建 NoteGraphStore 实例
func NewNoteGraphStore(dao *Dao) domain.NoteGraphStore {
	return &noteGraphStore{dao: dao}
}

func (s *noteGraphStore) Notes() domain.NoteRepository {
	return &noteRepository{dao: s.dao, tx: s.tx}
}

func (s *noteGraphStore) Links() domain.NoteLinkRepository {
	return &noteLinkRepository{dao: s.dao, tx: s.tx}
}

// Transaction 在用户写队列中开启事务执行 fn
// Inside an existing transaction it nests through a savepoint and does not
// enter the queue again, which would deadlock on the user's own lane.
func (s *noteGraphStore) Transaction(ctx context.Context, uid int64, fn func(tx domain.NoteGraphStore) error) error {
	if s.tx != nil {
		return s.tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&noteGraphStore{dao: s.dao, tx: tx})
		})
	}
	return s.dao.ExecuteWrite(ctx, uid, func(ctx context.Context, db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			return fn(&noteGraphStore{dao: s.dao, tx: tx})
		})
	})
}

// View 只读事务
func (s *noteGraphStore) View(ctx context.Context, fn func(tx domain.NoteGraphStore) error) error {
	if s.tx != nil {
		return fn(s)
	}
	return s.dao.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&noteGraphStore{dao: s.dao, tx: tx})
	})
}
