package code

import "net/http"

// Success codes // 成功码
var (
	Success           = NewSuss(1, http.StatusOK, lang{en: "Success", zh_cn: "成功"})
	SuccessCreate     = NewSuss(2, http.StatusCreated, lang{en: "Created", zh_cn: "创建成功"})
	SuccessSignup     = NewSuss(3, http.StatusCreated, lang{en: "Signup successful", zh_cn: "注册成功"})
	SuccessNoteUpdate = NewSuss(4, http.StatusOK, lang{en: "Note updated", zh_cn: "笔记已更新"})
	SuccessNoteDelete = NewSuss(5, http.StatusOK, lang{en: "Note deleted", zh_cn: "笔记已删除"})
)

// Common errors // 通用错误
var (
	ErrorServerInternal  = NewError(500, http.StatusInternalServerError, lang{en: "Internal server error", zh_cn: "服务器内部错误"})
	ErrorInvalidParams   = NewError(400, http.StatusBadRequest, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorNotFoundAPI     = NewError(404, http.StatusNotFound, lang{en: "API not found", zh_cn: "接口不存在"})
	ErrorTooManyRequests = NewError(429, http.StatusTooManyRequests, lang{en: "Too many requests", zh_cn: "请求过于频繁"})
	ErrorDBQuery         = NewError(501, http.StatusInternalServerError, lang{en: "Database error", zh_cn: "数据库错误"})
	ErrorServerBusy      = NewError(502, http.StatusServiceUnavailable, lang{en: "Server busy, try again later", zh_cn: "服务器繁忙，请稍后重试"})
)

// Auth errors // 认证错误
var (
	ErrorNotUserAuthToken        = NewError(1001, http.StatusUnauthorized, lang{en: "Access token required", zh_cn: "缺少访问令牌"})
	ErrorInvalidUserAuthToken    = NewError(1002, http.StatusForbidden, lang{en: "Invalid access token", zh_cn: "访问令牌无效"})
	ErrorRefreshTokenRequired    = NewError(1003, http.StatusUnauthorized, lang{en: "Refresh token required", zh_cn: "缺少刷新令牌"})
	ErrorInvalidRefreshToken     = NewError(1004, http.StatusForbidden, lang{en: "Invalid refresh token", zh_cn: "刷新令牌无效"})
	ErrorTokenGenerate           = NewError(1005, http.StatusInternalServerError, lang{en: "Failed to generate token", zh_cn: "令牌生成失败"})
	ErrorUserLoginPasswordFailed = NewError(1006, http.StatusUnauthorized, lang{en: "Invalid credentials", zh_cn: "邮箱或密码错误"})
	ErrorUserEmailAlreadyExists  = NewError(1007, http.StatusConflict, lang{en: "Email already exists", zh_cn: "邮箱已存在"})
	ErrorUserRegisterIsDisable   = NewError(1008, http.StatusForbidden, lang{en: "Registration is disabled", zh_cn: "注册已关闭"})
	ErrorUserRegister            = NewError(1009, http.StatusInternalServerError, lang{en: "Signup failed", zh_cn: "注册失败"})
	ErrorPasswordNotValid        = NewError(1010, http.StatusBadRequest, lang{en: "Password is not valid", zh_cn: "密码不合法"})
)

// Note graph errors // 笔记图错误
var (
	ErrorNoteTitleRequired  = NewError(2001, http.StatusBadRequest, lang{en: "Title is required", zh_cn: "标题不能为空"})
	ErrorNoteSelfParent     = NewError(2002, http.StatusBadRequest, lang{en: "Note cannot be its own parent", zh_cn: "笔记不能成为自己的父节点"})
	ErrorNoteNotFound       = NewError(2003, http.StatusNotFound, lang{en: "Note not found", zh_cn: "笔记不存在"})
	ErrorParentNoteNotFound = NewError(2004, http.StatusNotFound, lang{en: "Parent note not found", zh_cn: "父笔记不存在"})
	ErrorNoteLinkConflict   = NewError(2005, http.StatusConflict, lang{en: "Note already has a parent", zh_cn: "笔记已存在父节点"})
	ErrorNoteTitleTooLong   = NewError(2006, http.StatusBadRequest, lang{en: "Title must be at most 255 characters", zh_cn: "标题不能超过 255 个字符"})
)
