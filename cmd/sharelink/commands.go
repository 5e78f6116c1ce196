package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/e1732a364fed/sharelink/registry"
	"github.com/e1732a364fed/sharelink/server"
	"github.com/e1732a364fed/sharelink/sharelink"
	"github.com/e1732a364fed/sharelink/utils"
	"github.com/gofrs/uuid/v5"
	"gopkg.in/yaml.v3"
)

//本文件下所有命令的输出统一使用 fmt 而不是 log

const (
	formatToml  = "toml"
	formatJson  = "json"
	formatYaml  = "yaml"
	formatLink  = "link"
	formatNetch = "netch"
)

var (
	cmdPrintSupported bool
	interactive_mode  bool
	cmdPrintVer       bool
)

func init() {
	flag.BoolVar(&cmdPrintSupported, "sp", false, "print supported schemes, ciphers, protocols and obfs")
	flag.BoolVar(&interactive_mode, "interactive", false, "enable interactive commandline mode")
	flag.BoolVar(&cmdPrintVer, "v", false, "print the version string then exit")

	//本文件 中定义的 CliCmd都是直接返回运行结果的、无需进一步交互的命令

	cliCmdList = append(cliCmdList, CliCmd{
		"生成一个随机的uuid供你参考", func() {
			generateAndPrintUUID()
		},
	})

	cliCmdList = append(cliCmdList, CliCmd{
		"打印所支持的链接格式 加密方式 协议 混淆", func() {
			printSupported(os.Stdout)
		},
	})
}

// 运行一些 执行后立即退出程序的 命令
func runExitCommands() (atLeastOneCalled bool) {
	if cmdPrintVer {
		atLeastOneCalled = true
		printVersion_simple(os.Stdout)
	}

	if cmdPrintSupported {
		atLeastOneCalled = true
		printSupported(os.Stdout)
	}

	return
}

func generateAndPrintUUID() {
	u, err := uuid.NewV4()
	if err != nil {
		fmt.Printf("generate uuid failed, %s\n", err)
		return
	}
	fmt.Printf("New random uuid : %s\n", u)
}

func printSupported(w io.Writer) {
	fmt.Fprintf(w, "schemes: %s\n", strings.Join(sharelink.Schemes(), " "))
	for _, t := range registry.All() {
		fmt.Fprintf(w, "%s: %s\n", t.Name, strings.Join(t.Set.Names(), " "))
	}
}

// decodeInput 读取 fn 中的订阅文本, 解码后按 format 写到 w
func decodeInput(w io.Writer, fn string, format string) error {
	bs, err := utils.ReadLimited(fn, maxInputSize)
	if err != nil {
		return err
	}

	list, err := sharelink.Parse(string(bs))
	if err != nil {
		return err
	}

	return writeServers(w, list, format)
}

func writeServers(w io.Writer, list []server.Server, format string) error {
	var str string

	switch format {
	case formatToml:
		var err error
		str, err = utils.GetPurgedTomlStr(SharelinkConf{Servers: server.Records(list)})
		if err != nil {
			return err
		}

	case formatJson:
		bs, err := json.MarshalIndent(server.Records(list), "", "  ")
		if err != nil {
			return err
		}
		str = string(bs) + "\n"

	case formatYaml:
		bs, err := yaml.Marshal(SharelinkConf{Servers: server.Records(list)})
		if err != nil {
			return err
		}
		str = string(bs)

	case formatLink:
		str = sharelink.EncodeAll(list)

	case formatNetch:
		var sb strings.Builder
		for _, s := range list {
			l, err := sharelink.EncodeNetch(s)
			if err != nil {
				return err
			}
			sb.WriteString(l)
			sb.WriteByte('\n')
		}
		str = sb.String()

	default:
		return utils.ErrInErr{ErrDesc: "unknown output format", ErrDetail: utils.ErrWrongParameter, Data: format}
	}

	_, err := io.WriteString(w, str)
	return err
}

var errNoServerInConf = errors.New("no valid [[server]] in file")

// encodeFile 读取 toml 中的 [[server]], 每个节点输出一行分享链接
func encodeFile(w io.Writer, fn string) error {
	conf, err := LoadConfig(fn)
	if err != nil {
		return err
	}

	list := serversFromConf(conf)
	if len(list) == 0 {
		return utils.ErrInErr{ErrDesc: "encodeFile failed", ErrDetail: errNoServerInConf, Data: fn}
	}

	_, err = io.WriteString(w, sharelink.EncodeAll(list))
	return err
}
