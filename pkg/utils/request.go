package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes 请求体上限
const maxBodyBytes = 1 << 20

var validate = validator.New()

// DecodeJSON 解码请求体并按 validate 标签校验。
// 非字符串字段、空体与校验失败都返回错误，由调用方映射为 400。
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return Validate(dst)
}

// Validate 校验结构体
func Validate(v any) error {
	return validate.Struct(v)
}
