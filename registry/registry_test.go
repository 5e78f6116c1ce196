package registry_test

import (
	"testing"

	"github.com/e1732a364fed/sharelink/registry"
	"github.com/stretchr/testify/require"
)

func TestSetHas(t *testing.T) {
	require.True(t, registry.SSCiphers.Has("aes-256-gcm"))
	require.True(t, registry.SSCiphers.Has("chacha20-ietf-poly1305"))
	require.False(t, registry.SSCiphers.Has("none"))
	require.False(t, registry.SSCiphers.Has("AES-256-GCM"))

	require.True(t, registry.SSRCiphers.Has("none"))
	require.False(t, registry.SSRCiphers.Has("aes-256-gcm"))

	require.True(t, registry.SSRProtocols.Has("auth_chain_a"))
	require.True(t, registry.SSROBFSs.Has("tls1.2_ticket_auth"))
	require.False(t, registry.SSROBFSs.Has("tls1.2_ticket_fastauth"))

	require.True(t, registry.VMessTransferProtocols.Has("quic"))
	require.False(t, registry.VMessTransferProtocols.Has("grpc"))
	require.True(t, registry.VMessFakeTypes.Has("wechat-video"))
	require.False(t, registry.VMessQUICCiphers.Has("auto"))
}

func TestNamesSortedCopy(t *testing.T) {
	names := registry.VMessTransferProtocols.Names()
	require.Equal(t, []string{"h2", "kcp", "quic", "tcp", "ws"}, names)

	names[0] = "grpc"
	require.False(t, registry.VMessTransferProtocols.Has("grpc"))
	require.Equal(t, 5, registry.VMessTransferProtocols.Len())
}

func TestNormalizeSSROBFS(t *testing.T) {
	require.Equal(t, "tls1.2_ticket_auth", registry.NormalizeSSROBFS("tls1.2_ticket_fastauth"))
	require.Equal(t, "http_simple", registry.NormalizeSSROBFS("http_simple"))
}

func TestAllTables(t *testing.T) {
	for _, tb := range registry.All() {
		if tb.Set.Len() == 0 {
			t.Fatalf("table %s is empty", tb.Name)
		}
	}
}
