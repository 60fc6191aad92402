package domain

import "strings"

// 土耳其语变音字符转写表
// （先统一小写，所以只需要小写形式）
var slugTransliterations = map[rune]rune{
	'ğ': 'g',
	'ü': 'u',
	'ş': 's',
	'ı': 'i',
	'ö': 'o',
	'ç': 'c',
}

// Slugify 从展示名派生 URL 安全的唯一标识（slug）
// 规则：小写、转写已知变音字符、去掉其它非字母数字字符、
// 空白与连字符折叠为单个连字符、去掉首尾连字符。
// 纯函数：同一输入永远得到同一输出。
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	for _, r := range strings.ToLower(name) {
		if t, ok := slugTransliterations[r]; ok {
			r = t
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '-':
			b.WriteRune('-')
		default:
			// 其余字符丢弃
		}
	}

	// 连字符折叠
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}
