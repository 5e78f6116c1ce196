package main

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/e1732a364fed/sharelink/server"
	"github.com/e1732a364fed/sharelink/sharelink"
	"github.com/e1732a364fed/sharelink/utils"
	"go.uber.org/zap"
)

// SharelinkConf 是配置文件的格式, 也是 -of toml 的输出格式;
// 所以解码的输出可以直接作为 -e 的输入. -of yaml 用同样的结构, 便于其它工具读取.
type SharelinkConf struct {
	App     *AppConf        `toml:"app" yaml:"app,omitempty"`
	Servers []server.Record `toml:"server" yaml:"server"`
}

// AppConf 配置App级别的配置
type AppConf struct {
	LogLevel *int    `toml:"loglevel"` //需要为指针, 否则无法判断0到底是未给出的默认值还是 显式声明的0
	LogFile  *string `toml:"logfile"`

	MaxInputSize *int `toml:"max_input_size"`
	Workers      *int `toml:"workers"`

	AdminPass string `toml:"admin_pass"` //用于apiServer
	ApiAddr   string `toml:"api_addr"`
}

func LoadConfFromBs(bs []byte) (c SharelinkConf, err error) {
	err = toml.Unmarshal(bs, &c)
	return
}

func LoadConfig(fn string) (c SharelinkConf, err error) {
	bs, err := os.ReadFile(fn)
	if err != nil {
		return
	}
	return LoadConfFromBs(bs)
}

// setupByAppConf 把配置文件中的值 应用到全局变量上; 命令行中明确给出的参数优先.
func setupByAppConf(ac *AppConf) {
	if ac == nil {
		return
	}

	if ac.LogFile != nil && utils.GivenFlags["lf"] == nil {
		utils.LogOutFileName = *ac.LogFile
	}

	if ac.LogLevel != nil && utils.GivenFlags["ll"] == nil {
		utils.LogLevel = *ac.LogLevel
	}

	if ac.Workers != nil && utils.GivenFlags["w"] == nil {
		workers = *ac.Workers
	}

	if ac.MaxInputSize != nil && *ac.MaxInputSize > 0 {
		maxInputSize = *ac.MaxInputSize
	}

	if ac.ApiAddr != "" && utils.GivenFlags["addr"] == nil {
		apiServerAddr = ac.ApiAddr
	}
}

// serversFromConf 把 toml 中的 [[server]] 转为 server.Server; 不合法的项被跳过并记录.
func serversFromConf(c SharelinkConf) (list []server.Server) {
	for i, r := range c.Servers {
		s, err := server.FromRecord(r)
		if err == nil {
			s, err = sharelink.Validate(s)
		}
		if err != nil {
			if ce := utils.CanLogWarn("skip invalid server in config"); ce != nil {
				ce.Write(zap.Int("index", i), zap.String("remark", r.Remark), zap.Error(err))
			}
			continue
		}
		list = append(list, s)
	}
	return
}
