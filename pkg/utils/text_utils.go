package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Initials 返回用户名的首字母（大写），用于头像占位图
// 空用户名返回 "?"
func Initials(username string) string {
	name := strings.TrimSpace(username)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}
