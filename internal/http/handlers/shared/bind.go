package shared

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ErrEmptyBody 请求体为空
var ErrEmptyBody = errors.New("request body is empty")

// ErrTrailingData 请求体包含多余内容
var ErrTrailingData = errors.New("request body must contain a single JSON object")

// BindJSONStrict 严格解析 JSON 请求体：拒绝未知字段与多余内容，再执行 binding 校验。
func BindJSONStrict(c *gin.Context, obj interface{}) error {
	if c.Request == nil || c.Request.Body == nil {
		return ErrEmptyBody
	}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	if decoder.More() {
		return ErrTrailingData
	}
	if binding.Validator == nil {
		return nil
	}
	return binding.Validator.ValidateStruct(obj)
}
