package dto

// GraphNodeDTO 图节点
type GraphNodeDTO struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	IsRoot bool   `json:"isRoot"`
}

// GraphLinkDTO 图的边
type GraphLinkDTO struct {
	Source int64 `json:"source"`
	Target int64 `json:"target"`
}

// GraphDTO 笔记图
type GraphDTO struct {
	Nodes []*GraphNodeDTO `json:"nodes"`
	Links []*GraphLinkDTO `json:"links"`
}
