package service

import (
	"context"

	"github.com/haierkeys/note-graph-service/internal/domain"
	"github.com/haierkeys/note-graph-service/internal/dto"
	"github.com/haierkeys/note-graph-service/pkg/logger"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

// GraphService 笔记图投影服务
type GraphService interface {
	// Get 返回用户的全部笔记节点与父子链接
	Get(ctx context.Context, uid int64) (*dto.GraphDTO, error)
}

type graphService struct {
	store  domain.NoteGraphStore
	logger *zap.Logger
}

// NewGraphService 创建 GraphService 实例
func NewGraphService(store domain.NoteGraphStore, lg *zap.Logger) GraphService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &graphService{store: store, logger: lg}
}

// Get 获取笔记图，节点与链接读取自同一快照
func (s *graphService) Get(ctx context.Context, uid int64) (*dto.GraphDTO, error) {
	var (
		notes []*domain.Note
		links []*domain.NoteLink
	)
	err := s.store.View(ctx, func(tx domain.NoteGraphStore) error {
		var err error
		if notes, err = tx.Notes().List(ctx, uid); err != nil {
			return err
		}
		links, err = tx.Links().List(ctx, uid)
		return err
	})
	if err != nil {
		err = toCodeError(err, nil, nil)
		s.logger.Error("graph load failed", zap.Int64(logger.FieldUID, uid), zap.Error(err))
		return nil, err
	}

	graph := domain.BuildGraph(notes, links)
	out := &dto.GraphDTO{
		Nodes: make([]*dto.GraphNodeDTO, 0, len(graph.Nodes)),
		Links: make([]*dto.GraphLinkDTO, 0, len(graph.Links)),
	}
	if err := copier.Copy(&out.Nodes, &graph.Nodes); err != nil {
		return nil, toCodeError(err, nil, nil)
	}
	if err := copier.Copy(&out.Links, &graph.Links); err != nil {
		return nil, toCodeError(err, nil, nil)
	}
	// empty graph renders as [] rather than null
	if out.Nodes == nil {
		out.Nodes = []*dto.GraphNodeDTO{}
	}
	if out.Links == nil {
		out.Links = []*dto.GraphLinkDTO{}
	}
	return out, nil
}
