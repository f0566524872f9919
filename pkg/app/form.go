package app

import (
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

// ContextTransKey gin.Context 中保存翻译器的键
const ContextTransKey = "trans"

type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString 以 "; " 拼接所有校验错误
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), "; ")
}

// MapsToString 按字段排序后输出 "field: message"
func (v ValidErrors) MapsToString() string {
	items := make([]string, 0, len(v))
	for _, err := range v {
		items = append(items, err.Key+": "+err.Message)
	}
	sort.Strings(items)
	return strings.Join(items, "; ")
}

// BindAndValid binds the request into v and validates it.
// Returns false with translated errors when binding or validation fails.
// BindAndValid 绑定并校验参数
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors
	err := c.ShouldBind(v)
	if err == nil {
		return true, nil
	}

	verrs, ok := err.(val.ValidationErrors)
	if !ok {
		// 非校验错误（如 JSON 格式错误）
		errs = append(errs, &ValidError{Key: "body", Message: err.Error()})
		return false, errs
	}

	var trans ut.Translator
	if v, exists := c.Get(ContextTransKey); exists {
		trans, _ = v.(ut.Translator)
	}

	for _, fe := range verrs {
		msg := fe.Error()
		if trans != nil {
			msg = fe.Translate(trans)
		}
		errs = append(errs, &ValidError{Key: fe.Field(), Message: msg})
	}
	return false, errs
}
