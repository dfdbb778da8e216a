package utils

import "github.com/google/uuid"

// ParseID 格式不对的 id 当作不存在处理
func ParseID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
