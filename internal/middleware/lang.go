package middleware

import (
	"github.com/haierkeys/note-graph-service/pkg/app"
	"github.com/haierkeys/note-graph-service/pkg/code"
	"github.com/haierkeys/note-graph-service/pkg/errors"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// LangWithTranslator 创建带翻译器的语言中间件（支持依赖注入）
// The language comes from the lang query, the lang header, then Accept-Language.
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {

	return func(c *gin.Context) {

		var lang string

		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			lang = s
		} else if s = c.GetHeader("Accept-Language"); len(s) >= 2 {
			lang = s[:2]
		}

		lang = code.NormalizeLang(lang)
		c.Set(errors.LangKey, lang)

		if uni != nil {
			// validator translations are registered under "zh"
			transLang := lang
			if lang == "zh_cn" {
				transLang = "zh"
			}
			trans, found := uni.GetTranslator(transLang)
			if !found {
				trans, _ = uni.GetTranslator("en")
			}
			c.Set(app.ContextTransKey, trans)
		}

		c.Next()
	}
}
