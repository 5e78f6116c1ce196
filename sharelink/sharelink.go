/*
Package sharelink converts between server.Server and the share link formats used by proxy clients.

支持的格式:

	tg://socks?server=..&port=..  https://t.me/socks?...     (telegram socks5)
	ss://                                                   (shadowsocks, SIP002 与旧的整段base64格式)
	ssd://                                                  (SSD 批量订阅)
	ssr://                                                  (shadowsocksR)
	vmess://                                                (v2rayN 的 base64(json) 格式)
	Netch://                                                (base64(json) 的 server.Record)

以及整段文本是 json 数组的旧式 shadowsocks 导出格式.

解码是尽量宽容的: 网上流传的链接 padding 不统一, 百分号编码不统一, 还有各种历史遗留的字段形态.
单行失败只丢弃该行, 原因写入 Sink; 只有整个输入一个可用节点都没有时, Parse 才返回错误.
*/
package sharelink

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/e1732a364fed/sharelink/server"
	"github.com/e1732a364fed/sharelink/utils"
)

var (
	ErrMalformed     = errors.New("malformed share link")
	ErrUnsupported   = errors.New("unsupported capability")
	ErrNoServers     = errors.New("no valid server found")
	ErrInputTooLarge = errors.New("input too large")
)

func malformed(desc string, data any) error {
	return utils.ErrInErr{ErrDesc: desc, ErrDetail: ErrMalformed, Data: data}
}

func unsupported(what, value string) error {
	return utils.ErrInErr{ErrDesc: fmt.Sprintf("unsupported %s: %s", what, value), ErrDetail: ErrUnsupported}
}

// decodeBase64 先按原样解码, 失败时若含有百分号编码, 则先 unescape 再试一次.
// 有些订阅会把 base64 的 = 写成 %3D
func decodeBase64(s string) (string, error) {
	s = strings.TrimSpace(s)
	r, err := utils.URLSafeBase64Decode(s)
	if err == nil {
		return r, nil
	}
	if strings.Contains(s, "%") {
		if us, e2 := url.PathUnescape(s); e2 == nil {
			if r, e3 := utils.URLSafeBase64Decode(us); e3 == nil {
				return r, nil
			}
		}
	}
	return "", err
}

// urlDecode 与 HttpUtility.UrlDecode 的行为类似: + 变空格, 非法的 % 序列保持原样.
func urlDecode(s string) string {
	if r, err := url.QueryUnescape(s); err == nil {
		return r
	}
	return s
}

func parsePort(s string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, malformed("invalid port", s)
	}
	if !server.ValidPort(p) {
		return 0, malformed("port out of range", p)
	}
	return p, nil
}

// 用于日志, 防止超长的行把日志刷屏
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
