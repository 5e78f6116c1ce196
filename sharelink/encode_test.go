package sharelink_test

import (
	"strings"
	"testing"

	"github.com/e1732a364fed/sharelink/server"
	"github.com/e1732a364fed/sharelink/sharelink"
	"github.com/e1732a364fed/sharelink/utils"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var roundTripSamples = []server.Server{
	{
		Hostname: "1.2.3.4", Port: 1080,
		Settings: server.Socks5{},
	},
	{
		Remark: "ss", Hostname: "a.com", Port: 8388,
		Settings: server.Shadowsocks{EncryptMethod: "aes-256-gcm", Password: "pa:ss@word"},
	},
	{
		Remark: "节点 #1 & more", Hostname: "a.com", Port: 443,
		Settings: server.Shadowsocks{EncryptMethod: "chacha20-ietf-poly1305", Password: "p", Plugin: "simple-obfs", PluginOption: "obfs=http;obfs-host=b.com"},
	},
	{
		Remark: "plugin without options", Hostname: "::1", Port: 443,
		Settings: server.Shadowsocks{EncryptMethod: "aes-128-gcm", Password: "p", Plugin: "v2ray-plugin"},
	},
	{
		Remark: "ssr", Hostname: "a.com", Port: 443,
		Settings: server.ShadowsocksR{EncryptMethod: "aes-256-cfb", Password: "pass/+=", Protocol: "auth_aes128_md5", ProtocolParam: "1:abc", OBFS: "tls1.2_ticket_auth", OBFSParam: "c.com"},
	},
	{
		Remark: "vmess ws", Hostname: "a.com", Port: 443,
		Settings: server.VMess{
			UserID: "a684455c-b14f-11ea-bf0d-42010aaa0003", AlterID: 2, EncryptMethod: "auto",
			TransferProtocol: "ws", FakeType: "none", TLSSecure: true,
			Transport: server.VMessStream{Host: "b.com", Path: "/ws?ed=2048&x=<y>"},
		},
	},
	{
		Remark: "vmess quic", Hostname: "a.com", Port: 443,
		Settings: server.VMess{
			UserID: "a684455c-b14f-11ea-bf0d-42010aaa0003", EncryptMethod: "auto",
			TransferProtocol: "quic", FakeType: "srtp",
			Transport: server.VMessQUIC{Security: "chacha20-poly1305", Key: "k"},
		},
	},
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, s := range roundTripSamples {
		t.Run(s.Name(), func(t *testing.T) {
			link := sharelink.Encode(s)
			require.NotEmpty(t, link)
			require.Equal(t, s, parseOne(t, link))
		})
	}
}

func TestEncodeNetchRoundTrip(t *testing.T) {
	samples := append(utils.CloneSlice(roundTripSamples), server.Server{
		Remark: "socks with auth", Hostname: "a.com", Port: 1080,
		Settings: server.Socks5{Username: "u", Password: "p"},
	}, server.Server{
		Remark: "mux", Hostname: "a.com", Port: 443,
		Settings: server.VMess{
			UserID: "x", EncryptMethod: "aes-128-gcm", TransferProtocol: "h2", FakeType: "none", UseMux: true,
			Transport: server.VMessStream{Host: "b.com", Path: "/h2"},
		},
	})
	for _, s := range samples {
		t.Run(s.Name(), func(t *testing.T) {
			link, err := sharelink.EncodeNetch(s)
			require.NoError(t, err)
			require.Equal(t, s, parseOne(t, link))
		})
	}
}

func TestEncodeSocks5(t *testing.T) {
	s := server.Server{Remark: "dropped", Hostname: "1.2.3.4", Port: 1080, Settings: server.Socks5{Username: "u", Password: "p"}}
	require.Equal(t, "https://t.me/socks?server=1.2.3.4&port=1080", sharelink.Encode(s))
}

func TestEncodeSS(t *testing.T) {
	s := server.Server{Remark: "my remark", Hostname: "a.com", Port: 8388, Settings: server.Shadowsocks{EncryptMethod: "aes-256-gcm", Password: "pass"}}
	require.Equal(t, "ss://"+utils.URLSafeBase64Encode("aes-256-gcm:pass@a.com:8388")+"#my+remark", sharelink.Encode(s))

	s.Settings = server.Shadowsocks{EncryptMethod: "aes-256-gcm", Password: "pass", Plugin: "simple-obfs", PluginOption: "obfs=http;obfs-host=b.com"}
	require.Contains(t, sharelink.Encode(s), "?plugin=simple-obfs%3Bobfs%3Dhttp%3Bobfs-host%3Db.com#my+remark")
}

func TestEncodeSSR(t *testing.T) {
	s := roundTripSamples[4]
	link := sharelink.Encode(s)
	require.True(t, strings.HasPrefix(link, "ssr://"))

	body, err := utils.URLSafeBase64Decode(strings.TrimPrefix(link, "ssr://"))
	require.NoError(t, err)
	require.Equal(t, "a.com:443:auth_aes128_md5:aes-256-cfb:tls1.2_ticket_auth:"+utils.URLSafeBase64Encode("pass/+=")+
		"/?obfsparam="+utils.URLSafeBase64Encode("c.com")+
		"&protoparam="+utils.URLSafeBase64Encode("1:abc")+
		"&remarks="+utils.URLSafeBase64Encode("ssr"), body)
}

func TestEncodeVMess(t *testing.T) {
	link := sharelink.Encode(roundTripSamples[6])
	body, err := utils.URLSafeBase64Decode(strings.TrimPrefix(link, "vmess://"))
	require.NoError(t, err)

	j := gjson.Parse(body)
	require.Equal(t, "2", j.Get("v").String())
	require.Equal(t, "quic", j.Get("net").String())
	require.Equal(t, "chacha20-poly1305", j.Get("host").String())
	require.Equal(t, "k", j.Get("path").String())
	require.Equal(t, "", j.Get("tls").String())
	require.Equal(t, gjson.Number, j.Get("port").Type)

	link = sharelink.Encode(roundTripSamples[5])
	body, err = utils.URLSafeBase64Decode(strings.TrimPrefix(link, "vmess://"))
	require.NoError(t, err)
	require.Contains(t, body, `"path":"/ws?ed=2048&x=<y>"`)
	require.Contains(t, body, `"tls":"tls"`)
}

func TestEncodeEmpty(t *testing.T) {
	require.Equal(t, "", sharelink.Encode(server.Server{Hostname: "a.com", Port: 1}))

	_, err := sharelink.EncodeNetch(server.Server{Hostname: "a.com", Port: 1})
	require.Error(t, err)

	all := sharelink.EncodeAll([]server.Server{{}, roundTripSamples[0], {}})
	require.Equal(t, "https://t.me/socks?server=1.2.3.4&port=1080\n", all)
}
