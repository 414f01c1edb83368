package model

import (
	"encoding/json"
	"time"
)

// FlexTime 历史文档中时间字段有三种落盘形态：
// RFC3339 字符串、毫秒时间戳数字、{seconds,nanoseconds} 结构（含导出工具写的 _seconds 变体）。
// 规范化时一次性解析，后续代码只看 Time/Valid，不再碰原始形态。
type FlexTime struct {
	Time  time.Time
	Valid bool
}

type secondsStruct struct {
	Seconds      *int64 `json:"seconds"`
	Nanoseconds  int64  `json:"nanoseconds"`
	USeconds     *int64 `json:"_seconds"`
	UNanoseconds int64  `json:"_nanoseconds"`
}

func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{Time: t, Valid: !t.IsZero()}
}

// UnmarshalJSON 永不报错：解析不出来就退化为无效值，由上层按缺省处理
func (t *FlexTime) UnmarshalJSON(b []byte) error {
	*t = FlexTime{}
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	// 字符串形态
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, s); err == nil {
				*t = FlexTime{Time: parsed.UTC(), Valid: true}
				return nil
			}
		}
		return nil
	}

	// 毫秒时间戳形态
	var ms int64
	if err := json.Unmarshal(b, &ms); err == nil {
		if ms > 0 {
			*t = FlexTime{Time: time.UnixMilli(ms).UTC(), Valid: true}
		}
		return nil
	}

	// {seconds,nanoseconds} 结构形态
	var sec secondsStruct
	if err := json.Unmarshal(b, &sec); err == nil {
		switch {
		case sec.Seconds != nil:
			*t = FlexTime{Time: time.Unix(*sec.Seconds, sec.Nanoseconds).UTC(), Valid: true}
		case sec.USeconds != nil:
			*t = FlexTime{Time: time.Unix(*sec.USeconds, sec.UNanoseconds).UTC(), Valid: true}
		}
	}
	return nil
}

// MarshalJSON 统一输出 RFC3339，保证规范化后的文档再次解析是无损的
func (t FlexTime) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}
