package sharelink

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/e1732a364fed/sharelink/server"
)

const ssrPrefix = "ssr://"

// ssr://base64(host:port:protocol:method:obfs:base64(password)/?obfsparam=base64&protoparam=base64&remarks=base64)
//
// 有的生成器会省略 /? 后面的部分
var ssrDetail = regexp.MustCompile(`^(?P<server>.+):(?P<port>-?\d+?):(?P<protocol>.+?):(?P<method>.+?):(?P<obfs>.+?):(?P<password>.+?)(?:/\?(?P<info>.*))?$`)

func decodeSSR(line string, _ func(error)) ([]server.Server, error) {
	data, err := decodeBase64(strings.TrimPrefix(line, ssrPrefix))
	if err != nil {
		return nil, err
	}

	m := ssrDetail.FindStringSubmatch(data)
	if m == nil {
		return nil, malformed("ssr link mismatch", truncate(data, 64))
	}

	port, err := strconv.Atoi(m[ssrDetail.SubexpIndex("port")])
	if err != nil {
		return nil, malformed("invalid ssr port", m[ssrDetail.SubexpIndex("port")])
	}
	//一些老的生成器把端口按 int16 输出
	if port < 0 {
		port += 65536
	}
	if !server.ValidPort(port) {
		return nil, malformed("port out of range", port)
	}

	password, err := decodeBase64(m[ssrDetail.SubexpIndex("password")])
	if err != nil {
		return nil, err
	}

	info, err := ssrInfo(m[ssrDetail.SubexpIndex("info")])
	if err != nil {
		return nil, err
	}

	s, err := Validate(server.Server{
		Remark:   info["remarks"],
		Hostname: m[ssrDetail.SubexpIndex("server")],
		Port:     port,
		Settings: server.ShadowsocksR{
			EncryptMethod: m[ssrDetail.SubexpIndex("method")],
			Password:      password,
			Protocol:      m[ssrDetail.SubexpIndex("protocol")],
			ProtocolParam: info["protoparam"],
			OBFS:          m[ssrDetail.SubexpIndex("obfs")],
			OBFSParam:     info["obfsparam"],
		},
	})
	if err != nil {
		return nil, err
	}
	return []server.Server{s}, nil
}

var ssrInfoKeys = map[string]bool{"remarks": true, "protoparam": true, "obfsparam": true}

// 只解码认识的三个参数; 空段 和 没有 = 的段 直接忽略, 重复的参数以第一个为准.
func ssrInfo(s string) (map[string]string, error) {
	info := make(map[string]string, 3)
	if s == "" {
		return info, nil
	}
	for _, seg := range strings.Split(s, "&") {
		k, v, ok := strings.Cut(seg, "=")
		if !ok || !ssrInfoKeys[k] {
			continue
		}
		if _, has := info[k]; has {
			continue
		}
		d, err := decodeBase64(v)
		if err != nil {
			return nil, err
		}
		info[k] = d
	}
	return info, nil
}
