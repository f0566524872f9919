package model

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// User mapped from table <users>
type User struct {
	UID       int64     `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Email     string    `gorm:"column:email;size:255;not null;uniqueIndex:idx_user_email" json:"email"`
	Password  string    `gorm:"column:password;size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// Note mapped from table <notes>
type Note struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID       int64     `gorm:"column:uid;not null;index:idx_note_uid" json:"uid"`
	Title     string    `gorm:"column:title;size:255;not null" json:"title"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// NoteLink mapped from table <note_links>
// One row per child: (uid, target_note_id) is unique, so a note has at most one parent.
type NoteLink struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID          int64     `gorm:"column:uid;not null;uniqueIndex:idx_note_link_target,priority:1" json:"uid"`
	SourceNoteID int64     `gorm:"column:source_note_id;not null;index:idx_note_link_source" json:"sourceNoteId"`
	TargetNoteID int64     `gorm:"column:target_note_id;not null;uniqueIndex:idx_note_link_target,priority:2" json:"targetNoteId"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// AutoMigrate 创建或更新全部表结构
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &Note{}, &NoteLink{}); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}
