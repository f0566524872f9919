// Package domain 定义领域模型和接口
package domain

import "context"

// NoteRepository 笔记仓储接口
// Every method is scoped by uid; a note of another user behaves as absent.
type NoteRepository interface {
	// Create 创建笔记，返回带 ID 的笔记
	Create(ctx context.Context, note *Note, uid int64) (*Note, error)

	// UpdateContent 更新标题与内容，返回受影响行数
	UpdateContent(ctx context.Context, id, uid int64, title, content string) (int64, error)

	// GetByID 根据ID获取笔记（含 ParentID），不存在返回 gorm.ErrRecordNotFound
	GetByID(ctx context.Context, id, uid int64) (*Note, error)

	// Exists 判断笔记是否存在
	Exists(ctx context.Context, id, uid int64) (bool, error)

	// Delete 物理删除笔记，返回受影响行数
	Delete(ctx context.Context, id, uid int64) (int64, error)

	// List 获取用户全部笔记，按 ID 升序
	List(ctx context.Context, uid int64) ([]*Note, error)
}

// NoteLinkRepository 笔记链接仓储接口
type NoteLinkRepository interface {
	// Create 创建链接
	Create(ctx context.Context, link *NoteLink, uid int64) (*NoteLink, error)

	// GetIncoming 获取笔记的入链，没有时返回 nil, nil
	GetIncoming(ctx context.Context, targetNoteID, uid int64) (*NoteLink, error)

	// UpdateSource 将链接的父节点改为 sourceNoteID
	UpdateSource(ctx context.Context, id, sourceNoteID, uid int64) error

	// Delete 删除链接
	Delete(ctx context.Context, id, uid int64) error

	// DeleteByNoteID 删除笔记作为父或子的全部链接，返回删除行数
	DeleteByNoteID(ctx context.Context, noteID, uid int64) (int64, error)

	// List 获取用户全部链接，按 ID 升序
	List(ctx context.Context, uid int64) ([]*NoteLink, error)
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create 创建用户，邮箱重复返回 gorm.ErrDuplicatedKey
	Create(ctx context.Context, user *User) (*User, error)
}

// NoteGraphStore gives the note graph core its repositories plus
// transaction control. Repositories obtained from the tx argument of
// Transaction/View run inside that transaction.
// NoteGraphStore 笔记图存储能力
type NoteGraphStore interface {
	Notes() NoteRepository
	Links() NoteLinkRepository

	// Transaction runs fn in one write transaction, serialized with the other
	// writes of uid. An error from fn rolls everything back.
	Transaction(ctx context.Context, uid int64, fn func(tx NoteGraphStore) error) error

	// View runs fn in one read transaction so that it sees a consistent snapshot.
	View(ctx context.Context, fn func(tx NoteGraphStore) error) error
}
