package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/gofrs/uuid/v5"
	"github.com/manifoldco/promptui"

	"github.com/e1732a364fed/sharelink/registry"
	"github.com/e1732a364fed/sharelink/server"
	"github.com/e1732a364fed/sharelink/sharelink"
	"github.com/e1732a364fed/sharelink/utils"
)

var cliCmdList = []CliCmd{
	{
		"解码一条分享链接", func() {
			interactively_decode()
		},
	},
	{
		"交互生成分享链接", func() {
			interactively_generate()
		},
	},
	{
		"调节日志等级", func() {
			interactively_adjust_loglevel()
		},
	},
}

type CliCmd struct {
	Name string
	F    func()
}

func (cc CliCmd) String() string {
	return cc.Name
}

// 交互式命令行用户界面
//
// 阻塞，可按ctrl+C退出或回退到上一级
func runCli() {
	defer func() {
		fmt.Printf("Interactive Mode exited. \n")
		utils.Info("Interactive Mode exited")
	}()

	for {
		Select := promptui.Select{
			Label: "请选择想执行的功能",
			Items: cliCmdList,
		}

		i, result, err := Select.Run()
		if err != nil {
			fmt.Printf("Prompt failed %v\n", err)
			return
		}

		fmt.Printf("你选择了 %s\n", result)

		if f := cliCmdList[i].F; f != nil {
			f()
		}
	}
}

func interactively_decode() {
	prompt := promptui.Prompt{
		Label: "链接",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return utils.ErrInvalidData
			}
			return nil
		},
	}

	result, err := prompt.Run()
	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return
	}

	c := &sharelink.Collector{}
	p := *sharelink.DefaultParser
	p.Sink = c

	list, err := p.Parse(result)
	for _, m := range c.Messages() {
		fmt.Printf("dropped: %s\n", m)
	}
	if err != nil {
		fmt.Printf("解码失败, %s\n", err)
		return
	}

	str, err := utils.GetPurgedTomlStr(SharelinkConf{Servers: server.Records(list)})
	if err != nil {
		fmt.Printf("转换为toml失败, %s\n", err)
		return
	}
	fmt.Println(delimiter + str + delimiter)
}

// 各 prompt 共用的小工具, 出错时返回 false
func promptString(label string, validate func(string) bool, def string) (string, bool) {
	p := promptui.Prompt{
		Label:   label,
		Default: def,
	}
	if validate != nil {
		p.Validate = utils.WrapFuncForPromptUI(validate)
	}

	result, err := p.Run()
	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return "", false
	}
	return result, true
}

func promptSelect(label string, items []string) (string, bool) {
	Select := promptui.Select{
		Label: label,
		Items: items,
	}
	_, result, err := Select.Run()
	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return "", false
	}
	return result, true
}

func isHost(s string) bool {
	return govalidator.IsHost(s)
}

func isPort(s string) bool {
	return govalidator.IsPort(s)
}

func isNonNegInt(s string) bool {
	if !govalidator.IsInt(s) {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0
}

func interactively_generate() {
	typeList := []string{string(server.TypeSocks5), string(server.TypeSS), string(server.TypeSSR), string(server.TypeVMess)}

	t, ok := promptSelect("请选择节点类型", typeList)
	if !ok {
		return
	}

	var s server.Server

	if s.Hostname, ok = promptString("Host", isHost, ""); !ok {
		return
	}
	portStr, ok := promptString("Port", isPort, "")
	if !ok {
		return
	}
	s.Port, _ = strconv.Atoi(portStr)

	if s.Remark, ok = promptString("Remark", nil, ""); !ok {
		return
	}
	s.Remark = utils.StandardizeSpaces(s.Remark)

	switch server.Type(t) {
	case server.TypeSocks5:
		var st server.Socks5
		if st.Username, ok = promptString("Username", nil, ""); !ok {
			return
		}
		if st.Password, ok = promptString("Password", nil, ""); !ok {
			return
		}
		s.Settings = st

	case server.TypeSS:
		var st server.Shadowsocks
		if st.EncryptMethod, ok = promptSelect("Encrypt Method", registry.SSCiphers.Names()); !ok {
			return
		}
		if st.Password, ok = promptString("Password", nil, ""); !ok {
			return
		}
		if st.Plugin, ok = promptString("Plugin (可留空)", nil, ""); !ok {
			return
		}
		if st.Plugin != "" {
			if st.PluginOption, ok = promptString("Plugin Option", nil, ""); !ok {
				return
			}
		}
		s.Settings = st

	case server.TypeSSR:
		var st server.ShadowsocksR
		if st.EncryptMethod, ok = promptSelect("Encrypt Method", registry.SSRCiphers.Names()); !ok {
			return
		}
		if st.Password, ok = promptString("Password", nil, ""); !ok {
			return
		}
		if st.Protocol, ok = promptSelect("Protocol", registry.SSRProtocols.Names()); !ok {
			return
		}
		if st.ProtocolParam, ok = promptString("Protocol Param", nil, ""); !ok {
			return
		}
		if st.OBFS, ok = promptSelect("OBFS", registry.SSROBFSs.Names()); !ok {
			return
		}
		if st.OBFSParam, ok = promptString("OBFS Param", nil, ""); !ok {
			return
		}
		s.Settings = st

	case server.TypeVMess:
		if !interactively_fillVMess(&s) {
			return
		}
	}

	s, err := sharelink.Validate(s)
	if err != nil {
		fmt.Printf("节点不合法, %s\n", err)
		return
	}

	fmt.Printf("分享链接:\n%s\n", sharelink.Encode(s))
	if nl, err := sharelink.EncodeNetch(s); err == nil {
		fmt.Printf("Netch链接:\n%s\n", nl)
	}
}

func interactively_fillVMess(s *server.Server) bool {
	var def string
	if u, err := uuid.NewV4(); err == nil {
		def = u.String()
	}

	st := server.VMess{EncryptMethod: registry.VMessAuto}
	var ok bool

	if st.UserID, ok = promptString("UUID", govalidator.IsUUID, def); !ok {
		return false
	}
	aid, ok := promptString("AlterID", isNonNegInt, "0")
	if !ok {
		return false
	}
	st.AlterID, _ = strconv.Atoi(aid)

	if st.TransferProtocol, ok = promptSelect("Transfer Protocol", registry.VMessTransferProtocols.Names()); !ok {
		return false
	}
	if st.FakeType, ok = promptSelect("Fake Type", registry.VMessFakeTypes.Names()); !ok {
		return false
	}

	if st.TransferProtocol == registry.VMessQUIC {
		var q server.VMessQUIC
		if q.Security, ok = promptSelect("QUIC Security", registry.VMessQUICCiphers.Names()); !ok {
			return false
		}
		if q.Key, ok = promptString("QUIC Key", nil, ""); !ok {
			return false
		}
		st.Transport = q
	} else {
		var sm server.VMessStream
		if sm.Host, ok = promptString("Host (可留空)", nil, ""); !ok {
			return false
		}
		if sm.Path, ok = promptString("Path (可留空)", nil, ""); !ok {
			return false
		}
		st.Transport = sm
	}

	tls, ok := promptSelect("TLS", []string{"false", "true"})
	if !ok {
		return false
	}
	st.TLSSecure = tls == "true"

	s.Settings = st
	return true
}

func interactively_adjust_loglevel() {
	fmt.Println("当前日志等级为：", utils.LogLevelStr(utils.LogLevel))

	list := utils.LogLevelStrList()
	Select := promptui.Select{
		Label: "请选择你调节为点loglevel",
		Items: list,
	}

	i, result, err := Select.Run()
	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return
	}

	fmt.Printf("你选择了 %s\n", result)

	if i < len(list) && i >= 0 {
		utils.LogLevel = i
		utils.InitLog("")
		if ce := utils.CanLogLevel(i, "log level adjusted"); ce != nil {
			ce.Write()
		}

		fmt.Printf("调节 日志等级完毕. 现在等级为 %s\n", list[i])
	}
}
