package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
)

// ==================== TranslationSet ====================

// TranslationSet 六语种文案，整体存一个 jsonb 列
// 六个变体要么全翻译要么保留空串，读取时按 Resolve 的回退链取值
type TranslationSet struct {
	CN string `json:"CN"`
	EN string `json:"EN"`
	VN string `json:"VN"`
	TH string `json:"TH"`
	PH string `json:"PH"`
	MY string `json:"MY"`
}

func (t TranslationSet) Value() (driver.Value, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *TranslationSet) Scan(src interface{}) error {
	if src == nil {
		*t = TranslationSet{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("translation set: unsupported scan source")
	}
	if len(data) == 0 {
		*t = TranslationSet{}
		return nil
	}
	return json.Unmarshal(data, t)
}

// Get 按语言代码取值（大小写不敏感），未知语言返回空
func (t TranslationSet) Get(lang string) string {
	switch strings.ToUpper(lang) {
	case "CN", "ZH":
		return t.CN
	case "EN", "US":
		return t.EN
	case "VN", "VI":
		return t.VN
	case "TH":
		return t.TH
	case "PH", "TL":
		return t.PH
	case "MY", "MS":
		return t.MY
	}
	return ""
}

// Resolve 读取展示文案：目标语言 -> CN -> EN -> 任意非空变体
func (t TranslationSet) Resolve(lang string) string {
	if v := t.Get(lang); v != "" {
		return v
	}
	if t.CN != "" {
		return t.CN
	}
	if t.EN != "" {
		return t.EN
	}
	for _, v := range []string{t.VN, t.TH, t.PH, t.MY} {
		if v != "" {
			return v
		}
	}
	return ""
}

// IsComplete 六个变体是否都已填充
func (t TranslationSet) IsComplete() bool {
	return t.CN != "" && t.EN != "" && t.VN != "" && t.TH != "" && t.PH != "" && t.MY != ""
}

// ==================== StringList ====================

// StringList 字符串数组，JSON 编码后存单列，兼容 sqlite 测试环境
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("string list: unsupported scan source")
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}
