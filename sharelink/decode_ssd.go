package sharelink

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/e1732a364fed/sharelink/server"
	"github.com/samber/lo"
)

const ssdPrefix = "ssd://"

// ssd://base64(json). 顶层的 port/encryption/password/plugin/plugin_options 是默认值,
// 每个 server 自己的非空字段优先.
type ssdSubscription struct {
	Airport       string      `json:"airport"`
	Port          int         `json:"port"`
	Encryption    string      `json:"encryption"`
	Password      string      `json:"password"`
	Plugin        string      `json:"plugin"`
	PluginOptions string      `json:"plugin_options"`
	Servers       []ssdServer `json:"servers"`
}

type ssdServer struct {
	Server        string `json:"server"`
	Port          int    `json:"port"`
	Encryption    string `json:"encryption"`
	Password      string `json:"password"`
	Plugin        string `json:"plugin"`
	PluginOptions string `json:"plugin_options"`
	Remarks       string `json:"remarks"`
}

// 单个 server 不合法时只丢弃它, 通过 report 记录原因.
func decodeSSD(line string, report func(error)) ([]server.Server, error) {
	body, err := decodeBase64(strings.TrimPrefix(line, ssdPrefix))
	if err != nil {
		return nil, err
	}

	var sub ssdSubscription
	if err := json.Unmarshal([]byte(body), &sub); err != nil {
		return nil, malformed("invalid ssd json", err.Error())
	}

	var list []server.Server
	for i, e := range sub.Servers {
		s, err := Validate(server.Server{
			Remark:   e.Remarks,
			Hostname: e.Server,
			Port:     lo.CoalesceOrEmpty(e.Port, sub.Port),
			Settings: server.Shadowsocks{
				EncryptMethod: lo.CoalesceOrEmpty(e.Encryption, sub.Encryption),
				Password:      lo.CoalesceOrEmpty(e.Password, sub.Password),
				Plugin:        lo.CoalesceOrEmpty(e.Plugin, sub.Plugin),
				PluginOption:  lo.CoalesceOrEmpty(e.PluginOptions, sub.PluginOptions),
			},
		})
		if err != nil {
			report(fmt.Errorf("ssd %q server #%d (%s) dropped: %w", sub.Airport, i, e.Server, err))
			continue
		}
		list = append(list, s)
	}
	return list, nil
}
