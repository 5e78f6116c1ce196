/*
Package server defines the normalized proxy server descriptor.

一个 Server 由所有协议共有的 Remark, Hostname, Port 以及一个 Settings 组成;
Settings 只能是 Socks5, Shadowsocks, ShadowsocksR, VMess 四者之一, 每一种只带有自己协议需要的字段,
这样就不会出现 "ss 节点带了 vmess 的 path" 这种无意义的组合.
*/
package server

import (
	"net"
	"strconv"
)

type Type string

const (
	TypeSocks5 Type = "Socks5"
	TypeSS     Type = "SS"
	TypeSSR    Type = "SSR"
	TypeVMess  Type = "VMess"
)

const MaxPort = 65535

// Server 在解码/编码时新建, 不持有任何外部资源.
type Server struct {
	Remark   string
	Hostname string
	Port     int

	Settings Settings
}

// Type returns "" if s has no settings.
func (s Server) Type() Type {
	if s.Settings == nil {
		return ""
	}
	return s.Settings.Type()
}

func (s Server) AddrStr() string {
	return net.JoinHostPort(s.Hostname, strconv.Itoa(s.Port))
}

// Name 返回 Remark, 若为空则返回地址
func (s Server) Name() string {
	if s.Remark != "" {
		return s.Remark
	}
	return s.AddrStr()
}

func ValidPort(p int) bool {
	return p >= 0 && p <= MaxPort
}

// Settings is implemented only by the variant types of this package.
type Settings interface {
	Type() Type
	isSettings()
}

type Socks5 struct {
	Username string
	Password string
}

type Shadowsocks struct {
	EncryptMethod string
	Password      string
	Plugin        string
	PluginOption  string
}

type ShadowsocksR struct {
	EncryptMethod string
	Password      string
	Protocol      string
	ProtocolParam string
	OBFS          string
	OBFSParam     string
}

type VMess struct {
	UserID           string
	AlterID          int
	EncryptMethod    string
	TransferProtocol string
	FakeType         string
	TLSSecure        bool
	UseMux           bool

	//TransferProtocol 为 quic 时是 VMessQUIC, 否则是 VMessStream
	Transport VMessTransport
}

func (Socks5) Type() Type       { return TypeSocks5 }
func (Shadowsocks) Type() Type  { return TypeSS }
func (ShadowsocksR) Type() Type { return TypeSSR }
func (VMess) Type() Type        { return TypeVMess }

func (Socks5) isSettings()       {}
func (Shadowsocks) isSettings()  {}
func (ShadowsocksR) isSettings() {}
func (VMess) isSettings()        {}

// VMessTransport is implemented by VMessStream and VMessQUIC.
type VMessTransport interface {
	isVMessTransport()
}

// VMessStream 用于 tcp, kcp, ws, h2
type VMessStream struct {
	Host string
	Path string
}

type VMessQUIC struct {
	Security string
	Key      string
}

func (VMessStream) isVMessTransport() {}
func (VMessQUIC) isVMessTransport()   {}

// Stream returns the host and path of a non-quic transport, or empty strings.
func (v VMess) Stream() (host, path string) {
	if st, ok := v.Transport.(VMessStream); ok {
		return st.Host, st.Path
	}
	return
}

// QUIC returns the quic security and key, or empty strings.
func (v VMess) QUIC() (security, key string) {
	if q, ok := v.Transport.(VMessQUIC); ok {
		return q.Security, q.Key
	}
	return
}
