/*
Package main 是分享链接转换工具的命令行程序.

它可以把一段订阅文本 解码为 toml/json/链接, 也可以把 toml 中的节点 编码为分享链接,
并可选择性运行 交互模式 和 apiServer.

命令行参数请使用 --help / -h 查看详情.
*/
package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/e1732a364fed/sharelink/sharelink"
)

const (
	desc      = "Share link converter for socks5, ss, ssr, vmess, ssd and Netch links\n"
	delimiter = "===============================\n"
)

var Version string = "[version_undefined]" //版本号可由 -ldflags "-X 'main.Version=v1.x.x'" 指定

func versionStr() string {
	return fmt.Sprintf("sharelink %s, %s %s %s\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func printVersion_simple(w io.StringWriter) {
	w.WriteString(versionStr())
}

func printVersion(w io.StringWriter) {
	w.WriteString(delimiter)
	printVersion_simple(w)
	w.WriteString(delimiter)
	w.WriteString(desc)
	w.WriteString(fmt.Sprintf("schemes: %v\n", sharelink.Schemes()))
	w.WriteString(delimiter)
}
