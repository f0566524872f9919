package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/haierkeys/note-graph-service/internal/domain"
	"github.com/haierkeys/note-graph-service/internal/dto"
	"github.com/haierkeys/note-graph-service/pkg/code"
	"github.com/haierkeys/note-graph-service/pkg/logger"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

// NoteService 定义笔记业务服务接口
type NoteService interface {
	// Create 创建笔记，可选挂到父笔记下
	Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteSummaryDTO, error)

	// Update 更新标题、内容与父笔记，链接调整与内容更新在同一事务内完成
	Update(ctx context.Context, uid, id int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error)

	// Delete 删除笔记及其全部出入链接
	Delete(ctx context.Context, uid, id int64) error

	// Get 获取笔记详情
	Get(ctx context.Context, uid, id int64) (*dto.NoteDTO, error)
}

// noteService 实现 NoteService 接口
type noteService struct {
	store  domain.NoteGraphStore
	logger *zap.Logger
}

var _ NoteService = (*noteService)(nil)

// NewNoteService 创建 NoteService 实例
func NewNoteService(store domain.NoteGraphStore, lg *zap.Logger) NoteService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &noteService{store: store, logger: lg}
}

// domainToDTO 将领域模型转换为 DTO
func (s *noteService) domainToDTO(note *domain.Note) *dto.NoteDTO {
	if note == nil {
		return nil
	}
	out := &dto.NoteDTO{}
	_ = copier.Copy(out, note)
	return out
}

// validTitle 去除首尾空白后校验标题
func validTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", code.ErrorNoteTitleRequired
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return "", code.ErrorNoteTitleTooLong
	}
	return title, nil
}

// Create 创建笔记
func (s *noteService) Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteSummaryDTO, error) {
	title, err := validTitle(params.Title)
	if err != nil {
		return nil, err
	}
	parentID := domain.NormalizeParentID(params.ParentID)

	var created *domain.Note
	err = s.store.Transaction(ctx, uid, func(tx domain.NoteGraphStore) error {
		// insert first so the transaction holds the write lock from its first statement
		note, err := tx.Notes().Create(ctx, &domain.Note{Title: title}, uid)
		if err != nil {
			return err
		}

		if parentID != nil {
			ok, err := tx.Notes().Exists(ctx, *parentID, uid)
			if err != nil {
				return err
			}
			if !ok {
				return code.ErrorParentNoteNotFound
			}
			if _, err := tx.Links().Create(ctx, &domain.NoteLink{SourceNoteID: *parentID, TargetNoteID: note.ID}, uid); err != nil {
				return err
			}
			note.ParentID = parentID
		}
		created = note
		return nil
	})
	observe(noteOperations, "create", err)
	if err != nil {
		return nil, s.fail("create", uid, 0, err)
	}

	s.logger.Debug("note created",
		zap.Int64(logger.FieldUID, uid),
		zap.Int64(logger.FieldNoteID, created.ID))

	return &dto.NoteSummaryDTO{ID: created.ID, Title: created.Title, ParentID: created.ParentID}, nil
}

// Update 更新笔记
func (s *noteService) Update(ctx context.Context, uid, id int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	parentID := domain.NormalizeParentID(params.ParentID)
	if parentID != nil && *parentID == id {
		return nil, code.ErrorNoteSelfParent
	}
	title, err := validTitle(params.Title)
	if err != nil {
		return nil, err
	}

	var (
		updated *domain.Note
		action  = domain.LinkActionNone
	)
	err = s.store.Transaction(ctx, uid, func(tx domain.NoteGraphStore) error {
		n, err := tx.Notes().UpdateContent(ctx, id, uid, title, params.Content)
		if err != nil {
			return err
		}
		if n == 0 {
			return code.ErrorNoteNotFound
		}

		if parentID != nil {
			ok, err := tx.Notes().Exists(ctx, *parentID, uid)
			if err != nil {
				return err
			}
			if !ok {
				return code.ErrorParentNoteNotFound
			}
		}

		current, err := tx.Links().GetIncoming(ctx, id, uid)
		if err != nil {
			return err
		}

		action = domain.PlanLink(current, parentID)
		switch action {
		case domain.LinkActionAttach:
			_, err = tx.Links().Create(ctx, &domain.NoteLink{SourceNoteID: *parentID, TargetNoteID: id}, uid)
		case domain.LinkActionReparent:
			err = tx.Links().UpdateSource(ctx, current.ID, *parentID, uid)
		case domain.LinkActionDetach:
			err = tx.Links().Delete(ctx, current.ID, uid)
		}
		if err != nil {
			return err
		}

		updated, err = tx.Notes().GetByID(ctx, id, uid)
		return err
	})
	observe(noteOperations, "update", err)
	if err != nil {
		return nil, s.fail("update", uid, id, err)
	}
	linkActions.WithLabelValues(string(action)).Inc()

	s.logger.Debug("note updated",
		zap.Int64(logger.FieldUID, uid),
		zap.Int64(logger.FieldNoteID, id),
		zap.String(logger.FieldAction, string(action)))

	return s.domainToDTO(updated), nil
}

// Delete 删除笔记
func (s *noteService) Delete(ctx context.Context, uid, id int64) error {
	err := s.store.Transaction(ctx, uid, func(tx domain.NoteGraphStore) error {
		n, err := tx.Notes().Delete(ctx, id, uid)
		if err != nil {
			return err
		}
		if n == 0 {
			return code.ErrorNoteNotFound
		}
		_, err = tx.Links().DeleteByNoteID(ctx, id, uid)
		return err
	})
	observe(noteOperations, "delete", err)
	if err != nil {
		return s.fail("delete", uid, id, err)
	}
	return nil
}

// Get 获取笔记详情
func (s *noteService) Get(ctx context.Context, uid, id int64) (*dto.NoteDTO, error) {
	note, err := s.store.Notes().GetByID(ctx, id, uid)
	if err != nil {
		return nil, s.fail("get", uid, id, err)
	}
	return s.domainToDTO(note), nil
}

// fail 转换错误码，非预期错误记录日志
func (s *noteService) fail(action string, uid, id int64, err error) error {
	err = toCodeError(err, code.ErrorNoteNotFound, code.ErrorNoteLinkConflict)
	if !isExpected(err) {
		s.logger.Error("note operation failed",
			zap.String(logger.FieldAction, action),
			zap.Int64(logger.FieldUID, uid),
			zap.Int64(logger.FieldNoteID, id),
			zap.Error(err))
	}
	return err
}
