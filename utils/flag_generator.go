// file: utils/flag_generator.go
package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateFlag 为未指定 Flag 的新题目生成一个随机 Flag，
// 明文只在创建响应里回显一次，之后仅保留摘要
func GenerateFlag() string {
	part1 := strings.Replace(uuid.New().String(), "-", "", -1)[:12]
	part2 := strings.Replace(uuid.New().String(), "-", "", -1)[:12]
	return fmt.Sprintf("forge{%s-%s}", part1, part2)
}
