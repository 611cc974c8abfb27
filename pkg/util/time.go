package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration 解析时长字符串
// 支持 7d（天）、24h（小时）、30m（分钟）、60s（秒）格式
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	// d 单位不被 time.ParseDuration 支持，单独处理
	if strings.HasSuffix(s, "d") {
		days, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		return time.Duration(days * 24 * float64(time.Hour)), nil
	}

	return time.ParseDuration(s)
}
