package dto

// NoteCreateRequest 创建笔记请求
// ParentID 0 or null means no parent.
type NoteCreateRequest struct {
	Title    string `json:"title" form:"title" binding:"max=255"`
	ParentID *int64 `json:"parentId" form:"parentId"`
}

// NoteUpdateRequest 更新笔记请求
type NoteUpdateRequest struct {
	Title    string `json:"title" form:"title" binding:"max=255"`
	Content  string `json:"content" form:"content"`
	ParentID *int64 `json:"parentId" form:"parentId"`
}

// NoteSummaryDTO 创建笔记返回
type NoteSummaryDTO struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ParentID *int64 `json:"parentId"`
}

// NoteDTO 笔记详情
type NoteDTO struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	ParentID *int64 `json:"parentId"`
}

// NoteUpdateResponse 更新笔记响应
type NoteUpdateResponse struct {
	Message string   `json:"message"`
	Note    *NoteDTO `json:"note"`
}
