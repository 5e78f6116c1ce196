/*
Package registry holds the fixed capability tables that decoded share links are validated against.

所有的表都在包初始化时构建一次, 之后只读, 可以被任意多个 goroutine 同时使用.
*/
package registry

import "github.com/e1732a364fed/sharelink/utils"

// Set is an immutable set of names.
type Set struct {
	m map[string]struct{}
}

func NewSet(names ...string) Set {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return Set{m: m}
}

func (s Set) Has(name string) bool {
	_, ok := s.m[name]
	return ok
}

func (s Set) Len() int {
	return len(s.m)
}

// Names 返回排好序的副本, 修改它不会影响 Set 本身
func (s Set) Names() []string {
	return utils.GetMapSortedKeySlice(s.m)
}

const (
	SSRProtocolOrigin = "origin"
	SSROBFSPlain      = "plain"

	SSROBFSTicketAuth     = "tls1.2_ticket_auth"
	SSROBFSTicketFastAuth = "tls1.2_ticket_fastauth" //tls1.2_ticket_auth 的别名

	VMessQUIC = "quic"
	VMessAuto = "auto"
)

var (
	SSCiphers = NewSet(
		"rc4-md5",
		"aes-128-gcm", "aes-192-gcm", "aes-256-gcm",
		"aes-128-cfb", "aes-192-cfb", "aes-256-cfb",
		"aes-128-ctr", "aes-192-ctr", "aes-256-ctr",
		"camellia-128-cfb", "camellia-192-cfb", "camellia-256-cfb",
		"bf-cfb",
		"chacha20-ietf-poly1305", "xchacha20-ietf-poly1305",
		"salsa20", "chacha20", "chacha20-ietf",
	)

	SSRCiphers = NewSet(
		"none", "table",
		"rc4", "rc4-md5", "rc4-md5-6",
		"aes-128-cfb", "aes-192-cfb", "aes-256-cfb",
		"aes-128-ctr", "aes-192-ctr", "aes-256-ctr",
		"bf-cfb",
		"camellia-128-cfb", "camellia-192-cfb", "camellia-256-cfb",
		"salsa20", "chacha20", "chacha20-ietf",
	)

	SSRProtocols = NewSet(
		SSRProtocolOrigin,
		"verify_sha1",
		"auth_sha1_v2", "auth_sha1_v4",
		"auth_aes128_md5", "auth_aes128_sha1",
		"auth_chain_a",
	)

	SSROBFSs = NewSet(
		SSROBFSPlain,
		"http_simple", "http_post",
		"tls_simple", SSROBFSTicketAuth,
	)

	VMessTransferProtocols = NewSet("tcp", "kcp", "ws", "h2", VMessQUIC)

	VMessFakeTypes = NewSet("none", "http", "srtp", "utp", "wechat-video", "dtls", "wireguard")

	VMessCiphers = NewSet(VMessAuto, "none", "aes-128-gcm", "chacha20-poly1305")

	VMessQUICCiphers = NewSet("none", "aes-128-gcm", "chacha20-poly1305")
)

// NormalizeSSROBFS 把已知的混淆别名换成正式名称
func NormalizeSSROBFS(obfs string) string {
	if obfs == SSROBFSTicketFastAuth {
		return SSROBFSTicketAuth
	}
	return obfs
}

// Table 是一张带名字的表, 用于打印
type Table struct {
	Name string
	Set  Set
}

// All 按固定顺序列出所有表
func All() []Table {
	return []Table{
		{"ss_ciphers", SSCiphers},
		{"ssr_ciphers", SSRCiphers},
		{"ssr_protocols", SSRProtocols},
		{"ssr_obfs", SSROBFSs},
		{"vmess_transfer_protocols", VMessTransferProtocols},
		{"vmess_fake_types", VMessFakeTypes},
		{"vmess_ciphers", VMessCiphers},
		{"vmess_quic_ciphers", VMessQUICCiphers},
	}
}
