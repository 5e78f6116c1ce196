package sharelink

import (
	"encoding/json"
	"fmt"

	"github.com/e1732a364fed/sharelink/server"
)

// 旧版 shadowsocks 客户端 "导出全部服务器" 得到的 json 数组
type legacyShadowsocks struct {
	Server     string `json:"server"`
	ServerPort int    `json:"server_port"`
	Password   string `json:"password"`
	Method     string `json:"method"`
	Remarks    string `json:"remarks"`
	Plugin     string `json:"plugin"`
	PluginOpts string `json:"plugin_opts"`
}

// decodeLegacyArray 只有整段文本能被解析为这种数组时 ok 才为 true
func decodeLegacyArray(text string) (list []legacyShadowsocks, ok bool) {
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, false
	}
	return list, true
}

func (p *Parser) fromLegacy(arr []legacyShadowsocks) (list []server.Server) {
	for i, e := range arr {
		s, err := Validate(server.Server{
			Remark:   e.Remarks,
			Hostname: e.Server,
			Port:     e.ServerPort,
			Settings: server.Shadowsocks{
				EncryptMethod: e.Method,
				Password:      e.Password,
				Plugin:        e.Plugin,
				PluginOption:  e.PluginOpts,
			},
		})
		if err != nil {
			p.record(fmt.Sprintf("legacy json element #%d (%s) dropped: %s", i, e.Server, err))
			continue
		}
		list = append(list, s)
	}
	return
}
