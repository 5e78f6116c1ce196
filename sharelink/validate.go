package sharelink

import (
	"github.com/e1732a364fed/sharelink/registry"
	"github.com/e1732a364fed/sharelink/server"
)

// Validate checks s against the capability registries and returns the normalized server.
//
// 对 ssr, 混淆别名 tls1.2_ticket_fastauth 会被换成 tls1.2_ticket_auth;
// 而 加密方式ss也支持 + origin + plain 的 ssr 其实就是一个 ss 节点, 会被降级为 server.Shadowsocks.
func Validate(s server.Server) (server.Server, error) {
	if !server.ValidPort(s.Port) {
		return s, malformed("port out of range", s.Port)
	}

	switch st := s.Settings.(type) {
	case server.Socks5:

	case server.Shadowsocks:
		if !registry.SSCiphers.Has(st.EncryptMethod) {
			return s, unsupported("SS encrypt method", st.EncryptMethod)
		}

	case server.ShadowsocksR:
		if !registry.SSRCiphers.Has(st.EncryptMethod) {
			return s, unsupported("SSR encrypt method", st.EncryptMethod)
		}
		if !registry.SSRProtocols.Has(st.Protocol) {
			return s, unsupported("SSR protocol", st.Protocol)
		}
		st.OBFS = registry.NormalizeSSROBFS(st.OBFS)
		if !registry.SSROBFSs.Has(st.OBFS) {
			return s, unsupported("SSR obfs", st.OBFS)
		}

		if registry.SSCiphers.Has(st.EncryptMethod) && st.Protocol == registry.SSRProtocolOrigin && st.OBFS == registry.SSROBFSPlain {
			s.Settings = server.Shadowsocks{
				EncryptMethod: st.EncryptMethod,
				Password:      st.Password,
			}
		} else {
			s.Settings = st
		}

	case server.VMess:
		if !registry.VMessTransferProtocols.Has(st.TransferProtocol) {
			return s, unsupported("VMess transfer protocol", st.TransferProtocol)
		}
		if !registry.VMessFakeTypes.Has(st.FakeType) {
			return s, unsupported("VMess fake type", st.FakeType)
		}
		if st.TransferProtocol == registry.VMessQUIC {
			sec, _ := st.QUIC()
			if !registry.VMessQUICCiphers.Has(sec) {
				return s, unsupported("VMess QUIC encrypt method", sec)
			}
		}

	default:
		return s, malformed("server has no settings", nil)
	}

	return s, nil
}
