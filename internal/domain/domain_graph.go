package domain

// GraphNode 图节点
type GraphNode struct {
	ID     int64
	Title  string
	IsRoot bool
}

// GraphLink 图的边，Source 为父，Target 为子
type GraphLink struct {
	Source int64
	Target int64
}

// Graph 用户笔记图投影
type Graph struct {
	Nodes []*GraphNode
	Links []*GraphLink
}

// BuildGraph projects notes and links into the graph view.
// A node is a root iff its id never appears as a link target. Order of
// notes and links is preserved.
// BuildGraph 根据笔记与链接构建图投影
func BuildGraph(notes []*Note, links []*NoteLink) *Graph {
	targets := make(map[int64]struct{}, len(links))
	g := &Graph{
		Nodes: make([]*GraphNode, 0, len(notes)),
		Links: make([]*GraphLink, 0, len(links)),
	}

	for _, l := range links {
		targets[l.TargetNoteID] = struct{}{}
		g.Links = append(g.Links, &GraphLink{Source: l.SourceNoteID, Target: l.TargetNoteID})
	}

	for _, n := range notes {
		_, isChild := targets[n.ID]
		g.Nodes = append(g.Nodes, &GraphNode{ID: n.ID, Title: n.Title, IsRoot: !isChild})
	}
	return g
}
