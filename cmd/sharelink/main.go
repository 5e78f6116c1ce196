package main

import (
	"flag"
	"log"
	"os"
	"runtime/debug"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/e1732a364fed/sharelink/sharelink"
	"github.com/e1732a364fed/sharelink/utils"
)

var (
	configFileName string
	inputFileName  string
	encodeFileName string
	outputFormat   string
	workers        int
	maxInputSize   = sharelink.DefaultMaxInputSize
	startMProf     bool

	appConf *AppConf
)

const (
	defaultConfFn = "sharelink.toml"

	willExitStr = "Nothing to do: no -i, -e, -interactive or -ea given. Exit now.\n"
)

func init() {
	flag.StringVar(&configFileName, "c", defaultConfFn, "config file name")
	flag.StringVar(&inputFileName, "i", "", "decode share links in this file, '-' means stdin")
	flag.StringVar(&encodeFileName, "e", "", "encode the [[server]] entries of this toml file to share links")
	flag.StringVar(&outputFormat, "of", formatToml, "output format of decoded servers: toml, json, yaml, link, netch")
	flag.IntVar(&workers, "w", 1, "number of lines decoded in parallel")
	flag.BoolVar(&startMProf, "mp", false, "memory pprof")

	//other packages

	flag.IntVar(&utils.LogLevel, "ll", utils.DefaultLL, "log level,0=debug, 1=info, 2=warning, 3=error, 4=fatal")
	flag.StringVar(&utils.LogOutFileName, "lf", "", "output file for log; If empty, no log file will be used.")
}

func main() {
	os.Exit(mainFunc())
}

func mainFunc() (result int) {
	defer func() {
		if r := recover(); r != nil {
			if ce := utils.CanLogErr("Captured panic!"); ce != nil {
				stack := debug.Stack()
				ce.Write(
					zap.Any("err:", r),
					zap.String("stacktrace", string(stack)),
				)
				log.Println(string(stack))
			} else {
				log.Println("panic captured!", r, "\n", string(debug.Stack()))
			}

			result = -3
		}
	}()

	utils.ParseFlags()

	if runExitCommands() {
		return
	} else {
		printVersion(os.Stderr)
	}

	if startMProf {
		//若不使用 NoShutdownHook, 则 我们ctrl+c退出时不会产生 pprof文件
		p := profile.Start(profile.MemProfile, profile.MemProfileRate(1), profile.NoShutdownHook)
		defer p.Stop()
	}

	if fpath := utils.GetFilePath(configFileName); fpath != "" {
		conf, err := LoadConfig(fpath)
		if err != nil {
			log.Printf("can not load config file %q: %v\n", fpath, err)
			return -1
		}
		appConf = conf.App
		setupByAppConf(appConf)
	} else if utils.GivenFlags["c"] != nil {
		log.Printf("-c provided but %q doesn't exist\n", configFileName)
		return -1
	}

	utils.InitLog("Program started")
	defer utils.Info("Program exited")

	if ce := utils.CanLogDebug("flags"); ce != nil {
		ce.Write(zap.Any("given", utils.GivenFlagKVs()))
	}

	sharelink.DefaultParser = &sharelink.Parser{
		MaxInputSize: maxInputSize,
		Workers:      workers,
	}

	didSomething := false

	if inputFileName != "" {
		didSomething = true
		if inputFileName != "-" && !utils.FileExist(inputFileName) {
			utils.Error("input file not found: " + inputFileName)
			result = -1
		} else if err := decodeInput(os.Stdout, inputFileName, outputFormat); err != nil {
			if ce := utils.CanLogErr("decode failed"); ce != nil {
				ce.Write(zap.Error(err))
			}
			result = -1
		}
	}

	if encodeFileName != "" {
		didSomething = true
		if err := encodeFile(os.Stdout, encodeFileName); err != nil {
			if ce := utils.CanLogErr("encode failed"); ce != nil {
				ce.Write(zap.Error(err))
			}
			result = -1
		}
	}

	var apiSer *apiServer
	if enableApiServer {
		didSomething = true
		apiSer = tryRunApiServer()
	}

	if interactive_mode {
		didSomething = true
		runCli()
	}

	if !didSomething {
		utils.PrintStr(willExitStr)
		flag.Usage()
		return -1
	}

	if apiSer != nil && !interactive_mode {
		<-utils.GetSystemKillChan()
		utils.Info("Program got close signal.")
	}
	if apiSer != nil {
		apiSer.close()
	}
	return
}
