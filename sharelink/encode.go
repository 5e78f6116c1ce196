package sharelink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/e1732a364fed/sharelink/registry"
	"github.com/e1732a364fed/sharelink/server"
	"github.com/e1732a364fed/sharelink/utils"
)

// v2rayN 分享格式, 各字段都用字符串, 除了 port 和 aid
type vmessShareJSON struct {
	V    string `json:"v"`
	PS   string `json:"ps"`
	Add  string `json:"add"`
	Port int    `json:"port"`
	ID   string `json:"id"`
	AID  int    `json:"aid"`
	Net  string `json:"net"`
	Type string `json:"type"`
	Host string `json:"host"`
	Path string `json:"path"`
	TLS  string `json:"tls"`
}

// Encode produces the canonical share link of s, or "" if s has no settings.
//
// socks5 链接不带用户名密码, 需要完整保留时用 EncodeNetch.
func Encode(s server.Server) string {
	switch st := s.Settings.(type) {
	case server.Socks5:
		return fmt.Sprintf("https://t.me/socks?server=%s&port=%d", s.Hostname, s.Port)

	case server.Shadowsocks:
		var sb strings.Builder
		sb.WriteString(ssPrefix)
		sb.WriteString(utils.URLSafeBase64Encode(fmt.Sprintf("%s:%s@%s:%d", st.EncryptMethod, st.Password, s.Hostname, s.Port)))
		if st.Plugin != "" {
			p := st.Plugin
			if st.PluginOption != "" {
				p += ";" + st.PluginOption
			}
			sb.WriteString("?plugin=")
			sb.WriteString(url.QueryEscape(p))
		}
		sb.WriteByte('#')
		sb.WriteString(url.QueryEscape(s.Remark))
		return sb.String()

	case server.ShadowsocksR:
		params := fmt.Sprintf("/?obfsparam=%s&protoparam=%s&remarks=%s",
			utils.URLSafeBase64Encode(st.OBFSParam),
			utils.URLSafeBase64Encode(st.ProtocolParam),
			utils.URLSafeBase64Encode(s.Remark),
		)
		data := fmt.Sprintf("%s:%d:%s:%s:%s:%s%s",
			s.Hostname, s.Port, st.Protocol, st.EncryptMethod, st.OBFS,
			utils.URLSafeBase64Encode(st.Password), params,
		)
		return ssrPrefix + utils.URLSafeBase64Encode(data)

	case server.VMess:
		vj := vmessShareJSON{
			V:    "2",
			PS:   s.Remark,
			Add:  s.Hostname,
			Port: s.Port,
			ID:   st.UserID,
			AID:  st.AlterID,
			Net:  st.TransferProtocol,
			Type: st.FakeType,
		}
		if st.TransferProtocol == registry.VMessQUIC {
			vj.Host, vj.Path = st.QUIC()
		} else {
			vj.Host, vj.Path = st.Stream()
		}
		if st.TLSSecure {
			vj.TLS = "tls"
		}

		bs, err := marshalNoEscape(vj)
		if err != nil {
			return ""
		}
		return vmessPrefix + utils.URLSafeBase64Encode(string(bs))
	}
	return ""
}

// EncodeNetch produces a Netch:// link that keeps every field of s.
func EncodeNetch(s server.Server) (string, error) {
	if s.Settings == nil {
		return "", utils.ErrInErr{ErrDesc: "EncodeNetch failed", ErrDetail: server.ErrUnknownType}
	}
	bs, err := marshalNoEscape(s.Record())
	if err != nil {
		return "", err
	}
	return netchPrefix + utils.URLSafeBase64Encode(string(bs)), nil
}

// EncodeAll 每行一个链接, 编码不出的节点被跳过
func EncodeAll(list []server.Server) string {
	var sb strings.Builder
	for _, s := range list {
		if l := Encode(s); l != "" {
			sb.WriteString(l)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// json.Marshal 会把 & < > 转义成 \u0026 之类, 其它客户端生成的链接里没有这种转义
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
