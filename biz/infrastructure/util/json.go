package util

import (
	"classroom/biz/infrastructure/util/log"

	"github.com/bytedance/sonic"
)

// JSONF 将对象序列化为日志友好的字符串
func JSONF(v any) string {
	data, err := sonic.Marshal(v)
	if err != nil {
		log.Error("JSONF fail, v=%v, err=%v", v, err)
	}
	return string(data)
}
