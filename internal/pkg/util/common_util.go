package util

import (
	"strconv"
)

// StrSliceToUInt64Slice 把字符串切片转成 uint64 切片，遇到非法项直接报错
func StrSliceToUInt64Slice(in []string) ([]uint64, error) {
	out := make([]uint64, 0, len(in))
	for _, s := range in {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// PtrStr 用于将 string 转换为 *string
func PtrStr(s string) *string {
	return &s
}
