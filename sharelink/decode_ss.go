package sharelink

import (
	"regexp"
	"strings"

	"github.com/e1732a364fed/sharelink/server"
)

const ssPrefix = "ss://"

var (
	// ss://base64(method:password)@host:port
	ssSIP002Finder = regexp.MustCompile(`^ss://(?P<base64>.+?)@(?P<server>.+):(?P<port>\d+)`)
	ssUserInfo     = regexp.MustCompile(`^(?P<method>.+?):(?P<password>.+)$`)

	// ss://base64(method:password@host:port)
	ssLegacyDetail = regexp.MustCompile(`^(?P<method>.+?):(?P<password>.+)@(?P<server>.+):(?P<port>\d+)`)

	ssQueryFinder = regexp.MustCompile(`^(?P<data>.+?)\?(?P<query>.+)$`)
)

// simple-obfs 的几种写法, 值是 plugin_opts 里缺少 obfs= 时要补上的前缀
var ssPluginAliases = map[string]string{
	"obfs-local":      "obfs=http;obfs-host=",
	"simple-obfs":     "obfs=http;obfs-host=",
	"simple-obfs-tls": "obfs=tls;obfs-host=",
}

func decodeSS(line string, _ func(error)) ([]server.Server, error) {
	text := strings.ReplaceAll(line, "/?", "?")

	var remark string
	if strings.Contains(text, "#") {
		segs := strings.Split(text, "#")
		remark = urlDecode(segs[1])
		text = segs[0]
	}

	var plugin, pluginOpt string
	if strings.Contains(text, "?") {
		m := ssQueryFinder.FindStringSubmatch(text)
		if m == nil {
			return nil, malformed("ss query mismatch", truncate(line, 64))
		}
		text = m[ssQueryFinder.SubexpIndex("data")]
		if v, ok := ssPluginParam(m[ssQueryFinder.SubexpIndex("query")]); ok {
			plugin, pluginOpt = ssPlugin(v)
		}
	}

	var method, password, host, portStr string

	if strings.Contains(text, "@") {
		m := ssSIP002Finder.FindStringSubmatch(text)
		if m == nil {
			return nil, malformed("ss link mismatch", truncate(line, 64))
		}
		userinfo := m[ssSIP002Finder.SubexpIndex("base64")]
		decoded, err := decodeBase64(userinfo)
		if err != nil {
			//SIP002 允许 aead 加密的 userinfo 不做 base64
			decoded = urlDecode(userinfo)
			if !strings.Contains(decoded, ":") {
				return nil, err
			}
		}
		um := ssUserInfo.FindStringSubmatch(decoded)
		if um == nil {
			return nil, malformed("ss userinfo mismatch", decoded)
		}
		method = um[ssUserInfo.SubexpIndex("method")]
		password = um[ssUserInfo.SubexpIndex("password")]
		host = m[ssSIP002Finder.SubexpIndex("server")]
		portStr = m[ssSIP002Finder.SubexpIndex("port")]
	} else {
		decoded, err := decodeBase64(strings.TrimPrefix(text, ssPrefix))
		if err != nil {
			return nil, err
		}
		m := ssLegacyDetail.FindStringSubmatch(decoded)
		if m == nil {
			return nil, malformed("ss link mismatch", truncate(decoded, 64))
		}
		method = m[ssLegacyDetail.SubexpIndex("method")]
		password = m[ssLegacyDetail.SubexpIndex("password")]
		host = m[ssLegacyDetail.SubexpIndex("server")]
		portStr = m[ssLegacyDetail.SubexpIndex("port")]
	}

	port, err := parsePort(portStr)
	if err != nil {
		return nil, err
	}

	s, err := Validate(server.Server{
		Remark:   remark,
		Hostname: host,
		Port:     port,
		Settings: server.Shadowsocks{
			EncryptMethod: method,
			Password:      password,
			Plugin:        plugin,
			PluginOption:  pluginOpt,
		},
	})
	if err != nil {
		return nil, err
	}
	return []server.Server{s}, nil
}

// ssPluginParam 手动切分 query, 因为插件参数里常常带着没编码的 ';' 和 '=',
// url.ParseQuery 会把 ';' 当作非法字符拒掉. 多个 plugin 时取第一个.
func ssPluginParam(query string) (string, bool) {
	for _, pair := range strings.Split(query, "&") {
		k, v, _ := strings.Cut(pair, "=")
		if k == "plugin" {
			return urlDecode(v), true
		}
	}
	return "", false
}

func ssPlugin(v string) (plugin, opt string) {
	plugin, opt, _ = strings.Cut(v, ";")

	if prefix, ok := ssPluginAliases[plugin]; ok {
		if !strings.Contains(opt, "obfs=") {
			opt = prefix + opt
		}
		plugin = "simple-obfs"
	}
	return
}
