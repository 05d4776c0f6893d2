package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var errEmptyBody = errors.New("request body is empty")

// BindNestedOrFlat decodes {"<key>": {...}} or a flat {...} into obj and
// runs the binding validators. The raw body stays readable for later binds.
func BindNestedOrFlat(c *gin.Context, key string, obj any) error {
	raw, err := c.GetRawData()
	if err != nil {
		return err
	}
	c.Set(gin.BodyBytesKey, raw)
	if len(raw) == 0 {
		return errEmptyBody
	}

	payload := raw
	var envelope map[string]json.RawMessage
	if json.Unmarshal(raw, &envelope) == nil {
		if inner, ok := envelope[key]; ok {
			payload = inner
		}
	}
	if err := json.Unmarshal(payload, obj); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(obj)
}
