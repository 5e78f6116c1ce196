package utils

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// 分享链接里的 base64 五花八门: 有的用 url安全字母表, 有的用标准字母表, 有的带padding有的不带.
// 这里统一先换成标准字母表, 再补齐padding, 然后用标准解码.
var urlSafeToStd = strings.NewReplacer("-", "+", "_", "/")
var stdToURLSafe = strings.NewReplacer("+", "-", "/", "_")

// URLSafeBase64Decode 解码 url安全的base64 (也兼容标准base64), 结果按 utf8 文本解释,
// 非法的 utf8 序列被替换为 U+FFFD.
func URLSafeBase64Decode(text string) (string, error) {
	s := urlSafeToStd.Replace(text)
	s = padRight(s, len(s)+(4-len(s)%4)%4)

	bs, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", ErrInErr{ErrDesc: "URLSafeBase64Decode failed", ErrDetail: ErrInvalidBase64, Data: err.Error()}
	}
	return strings.ToValidUTF8(string(bs), "\uFFFD"), nil
}

// URLSafeBase64Encode 用标准base64编码, 然后替换为url安全字母表.
//
// padding 的目标长度是 编码前 文本长度向上取整到4的倍数, 而不是编码后的长度;
// 标准编码的输出本身已经补齐, 所以这一步实际上不会再添加任何字符, 保留它只为与已有的链接生成器逐字节一致.
func URLSafeBase64Encode(text string) string {
	s := stdToURLSafe.Replace(base64.StdEncoding.EncodeToString([]byte(text)))
	n := utf8.RuneCountInString(text)
	return padRight(s, n+(4-n%4)%4)
}

func padRight(s string, total int) string {
	if len(s) >= total {
		return s
	}
	return s + strings.Repeat("=", total-len(s))
}
