package sharelink

import (
	"strings"

	"github.com/e1732a364fed/sharelink/server"
)

const (
	socks5TgPrefix    = "tg://socks?"
	socks5HTTPSPrefix = "https://t.me/socks?"
)

// tg://socks?server=1.1.1.1&port=1080&user=u&pass=p
//
// 参数值会做百分号解码; 没有 = 的参数 或 重复的参数 都视为格式错误.
func decodeSocks5(line string, _ func(error)) ([]server.Server, error) {
	var query string
	switch {
	case strings.HasPrefix(line, socks5TgPrefix):
		query = line[len(socks5TgPrefix):]
	case strings.HasPrefix(line, socks5HTTPSPrefix):
		query = line[len(socks5HTTPSPrefix):]
	default:
		return nil, malformed("not a socks5 link", truncate(line, 64))
	}

	dict := make(map[string]string)
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, malformed("socks5 parameter without value", pair)
		}
		if _, has := dict[k]; has {
			return nil, malformed("duplicate socks5 parameter", k)
		}
		dict[k] = urlDecode(v)
	}

	host := dict["server"]
	if host == "" {
		return nil, malformed("socks5 link has no server", nil)
	}
	p, has := dict["port"]
	if !has {
		return nil, malformed("socks5 link has no port", nil)
	}
	port, err := parsePort(p)
	if err != nil {
		return nil, err
	}

	var st server.Socks5
	if v := dict["user"]; strings.TrimSpace(v) != "" {
		st.Username = v
	}
	if v := dict["pass"]; strings.TrimSpace(v) != "" {
		st.Password = v
	}

	s, err := Validate(server.Server{Hostname: host, Port: port, Settings: st})
	if err != nil {
		return nil, err
	}
	return []server.Server{s}, nil
}
