package sharelink

import (
	"math"
	"strconv"
	"strings"

	"github.com/e1732a364fed/sharelink/registry"
	"github.com/e1732a364fed/sharelink/server"
	"github.com/tidwall/gjson"
)

const vmessPrefix = "vmess://"

/*
vmess://base64(json), json 是 v2rayN 的分享格式:

	{"v":"2","ps":"remark","add":"host","port":"443","id":"uuid","aid":"0","net":"ws","type":"none","host":"a.com","path":"/ws","tls":"tls"}

各家生成器的字段类型并不统一, port/aid 可能是数字也可能是字符串, mux.enabled 可能是 bool 也可能是字符串 (只有 "true" 算开启),
所以用 gjson 直接按路径取值, 而不是 Unmarshal 到固定的结构体.

v 缺失, 为 null 或为 "1" 时是旧格式, host 字段里是 "host;path".
net 为 quic 时, host 是 quic 的加密方式, path 是 quic 的 key.
*/
func decodeVMess(line string, _ func(error)) ([]server.Server, error) {
	body, err := decodeBase64(strings.TrimPrefix(line, vmessPrefix))
	if err != nil {
		return nil, err
	}
	if !gjson.Valid(body) {
		return nil, malformed("vmess body is not json", truncate(body, 64))
	}
	j := gjson.Parse(body)
	if !j.IsObject() {
		return nil, malformed("vmess body is not a json object", truncate(body, 64))
	}

	port, ok := jsonInt(j.Get("port"))
	if !ok {
		return nil, malformed("invalid vmess port", j.Get("port").Raw)
	}
	aid, ok := jsonInt(j.Get("aid"))
	if !ok {
		return nil, malformed("invalid vmess alterId", j.Get("aid").Raw)
	}

	// net/type 缺失时为空串, 交给 Validate 按不支持处理
	net := j.Get("net").String()
	fake := j.Get("type").String()

	host := j.Get("host").String()
	path := j.Get("path").String()

	if v := j.Get("v"); !v.Exists() || v.Type == gjson.Null || v.String() == "1" {
		if h, p, ok := strings.Cut(host, ";"); ok {
			host, path = h, p
		}
	}

	vm := server.VMess{
		UserID:           j.Get("id").String(),
		AlterID:          aid,
		EncryptMethod:    registry.VMessAuto,
		TransferProtocol: net,
		FakeType:         fake,
		TLSSecure:        j.Get("tls").String() == "tls",
		UseMux:           jsonBool(j.Get("mux.enabled")),
	}
	if net == registry.VMessQUIC {
		vm.Transport = server.VMessQUIC{Security: host, Key: path}
	} else {
		vm.Transport = server.VMessStream{Host: host, Path: path}
	}

	s, err := Validate(server.Server{
		Remark:   j.Get("ps").String(),
		Hostname: j.Get("add").String(),
		Port:     port,
		Settings: vm,
	})
	if err != nil {
		return nil, err
	}
	return []server.Server{s}, nil
}

// jsonInt 接受 数字, 数字字符串, 空字符串 和 缺失/null (后两者为0)
func jsonInt(r gjson.Result) (int, bool) {
	switch r.Type {
	case gjson.Null:
		return 0, true
	case gjson.Number:
		if r.Num != math.Trunc(r.Num) {
			return 0, false
		}
		return int(r.Int()), true
	case gjson.String:
		s := strings.TrimSpace(r.Str)
		if s == "" {
			return 0, true
		}
		n, err := strconv.Atoi(s)
		return n, err == nil
	}
	return 0, false
}

func jsonBool(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.String:
		return r.Str == "true"
	}
	return false
}
