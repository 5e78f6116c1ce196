package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/e1732a364fed/sharelink/server"
	"github.com/e1732a364fed/sharelink/sharelink"
	"github.com/stretchr/testify/require"
)

const testSocksLine = "tg://socks?server=1.2.3.4&port=1080"

func doRequest(t *testing.T, h http.Handler, method, path, body string, auth ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if len(auth) == 2 {
		req.SetBasicAuth(auth[0], auth[1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestApiCapabilities(t *testing.T) {
	h := newApiServer("admin", "", sharelink.Parser{}).routes("/api")

	rec := doRequest(t, h, http.MethodGet, "/api/capabilities", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp capabilitiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Schemes, "vmess://")
	require.Contains(t, resp.Tables["ss_ciphers"], "aes-256-gcm")
	require.Contains(t, resp.Tables["ssr_obfs"], "tls1.2_ticket_auth")
}

func TestApiParse(t *testing.T) {
	h := newApiServer("admin", "", sharelink.Parser{}).routes("/api")

	rec := doRequest(t, h, http.MethodPost, "/api/parse", testSocksLine+"\nss://bad")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp parseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Servers, 1)
	require.Equal(t, server.TypeSocks5, resp.Servers[0].Type)
	require.Equal(t, 1080, resp.Servers[0].Port)
	require.Len(t, resp.Diagnostics, 1)
	require.Empty(t, resp.Error)

	rec = doRequest(t, h, http.MethodPost, "/api/parse", "nothing")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestApiParseTooLarge(t *testing.T) {
	h := newApiServer("admin", "", sharelink.Parser{MaxInputSize: 8}).routes("/api")

	rec := doRequest(t, h, http.MethodPost, "/api/parse", testSocksLine)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestApiEncode(t *testing.T) {
	h := newApiServer("admin", "", sharelink.Parser{}).routes("/api")

	records := []server.Record{
		{Type: server.TypeSocks5, Hostname: "1.2.3.4", Port: 1080},
		{Type: server.TypeSS, Hostname: "a.com", Port: 1, EncryptMethod: "nope"},
		{Type: "Trojan", Hostname: "a.com", Port: 1},
	}
	bs, err := json.Marshal(records)
	require.NoError(t, err)

	rec := doRequest(t, h, http.MethodPost, "/api/encode", string(bs))
	require.Equal(t, http.StatusOK, rec.Code)

	var results []encodeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 3)
	require.Equal(t, "https://t.me/socks?server=1.2.3.4&port=1080", results[0].Link)
	require.True(t, strings.HasPrefix(results[0].Netch, "Netch://"))
	require.Empty(t, results[0].Error)
	require.Contains(t, results[1].Error, "unsupported SS encrypt method: nope")
	require.NotEmpty(t, results[2].Error)

	rec = doRequest(t, h, http.MethodPost, "/api/encode", "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApiBasicAuth(t *testing.T) {
	h := newApiServer("admin", "secret", sharelink.Parser{}).routes("/api")

	rec := doRequest(t, h, http.MethodGet, "/api/capabilities", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/capabilities", "", "admin", "wrong")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/capabilities", "", "admin", "secret")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestApiServerShutdown(t *testing.T) {
	require.NoError(t, (&apiServer{}).shutdown(context.Background()))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	ser := &apiServer{srv: &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	})}}
	go ser.srv.Serve(ln)

	go func() {
		resp, err := http.Get("http://" + ln.Addr().String())
		if err == nil {
			resp.Body.Close()
		}
	}()
	<-started

	//有未完成的请求时, 已取消的 ctx 让 shutdown 返回错误
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, ser.shutdown(ctx), context.Canceled)

	close(release)
	require.NoError(t, ser.shutdown(context.Background()))
}
