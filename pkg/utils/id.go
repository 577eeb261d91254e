package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID 系统内部主键（不可变，对外无语义）
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
