// Package domain 定义领域模型和接口
package domain

import "time"

// Note 笔记领域模型
// ParentID is derived from the incoming link, nil for a root note.
type Note struct {
	ID        int64
	UID       int64
	Title     string
	Content   string
	ParentID  *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasParent 判断笔记是否有父节点
func (n *Note) HasParent() bool {
	return n.ParentID != nil
}

// NoteLink 父 -> 子 链接
type NoteLink struct {
	ID           int64
	UID          int64
	SourceNoteID int64 // parent
	TargetNoteID int64 // child
	CreatedAt    time.Time
}

// LinkAction 更新笔记时对入链的调和动作
type LinkAction string

const (
	LinkActionNone     LinkAction = "none"
	LinkActionAttach   LinkAction = "attach"
	LinkActionReparent LinkAction = "reparent"
	LinkActionDetach   LinkAction = "detach"
)

// PlanLink decides how the incoming link of a note must change so that its
// parent becomes parentID. current is the existing incoming link or nil.
//
//	current nil,  parent set   -> attach
//	current set,  parent other -> reparent (same row)
//	current set,  parent nil   -> detach
//	otherwise                  -> none
func PlanLink(current *NoteLink, parentID *int64) LinkAction {
	switch {
	case current == nil && parentID != nil:
		return LinkActionAttach
	case current != nil && parentID == nil:
		return LinkActionDetach
	case current != nil && current.SourceNoteID != *parentID:
		return LinkActionReparent
	default:
		return LinkActionNone
	}
}

// MaxTitleLength 标题最大字符数，与 notes.title 列宽一致
const MaxTitleLength = 255

// NormalizeParentID maps the "no parent" encodings (nil, 0) to nil.
// Any other id, negative included, must name an existing note.
func NormalizeParentID(parentID *int64) *int64 {
	if parentID == nil || *parentID == 0 {
		return nil
	}
	id := *parentID
	return &id
}
