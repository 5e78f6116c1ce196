package sharelink

import (
	"fmt"
	"strings"

	"github.com/e1732a364fed/sharelink/server"
	"github.com/e1732a364fed/sharelink/utils"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultMaxInputSize = 4 << 20

// report 用于一行里有多个节点(如ssd)时单独记录被丢弃的那些; 返回的 error 表示整行被丢弃.
type decodeFunc func(line string, report func(error)) ([]server.Server, error)

type decoder struct {
	name     string
	prefixes []string
	decode   decodeFunc
}

// 前缀是大小写敏感的
var decoders = []decoder{
	{"socks5", []string{socks5TgPrefix, socks5HTTPSPrefix}, decodeSocks5},
	{"ss", []string{ssPrefix}, decodeSS},
	{"ssd", []string{ssdPrefix}, decodeSSD},
	{"ssr", []string{ssrPrefix}, decodeSSR},
	{"vmess", []string{vmessPrefix}, decodeVMess},
	{"netch", []string{netchPrefix}, decodeNetch},
}

func findDecoder(line string) (decoder, bool) {
	for _, d := range decoders {
		for _, p := range d.prefixes {
			if strings.HasPrefix(line, p) {
				return d, true
			}
		}
	}
	return decoder{}, false
}

// Schemes lists the prefixes Parse recognizes, in dispatch order.
func Schemes() (r []string) {
	for _, d := range decoders {
		r = append(r, d.prefixes...)
	}
	return
}

// Parser turns share link text into servers.
// The zero value is ready to use and logs dropped lines through ZapSink.
type Parser struct {
	Sink Sink

	// <=0 时使用 DefaultMaxInputSize
	MaxInputSize int

	// >1 时各行并发解码, 结果顺序仍与输入一致
	Workers int
}

var DefaultParser = &Parser{}

// Parse 使用 DefaultParser
func Parse(text string) ([]server.Server, error) {
	return DefaultParser.Parse(text)
}

// Parse decodes every recognizable line of text, or the whole text when it is a legacy
// shadowsocks json array. Lines that fail are dropped and reported to p.Sink.
//
// It returns an error wrapping ErrNoServers when nothing valid is found,
// or ErrInputTooLarge when text exceeds the size limit.
func (p *Parser) Parse(text string) (list []server.Server, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.record(fmt.Sprintf("parse panic: %v", r))
			list = nil
			err = utils.ErrInErr{ErrDesc: "parse panic", ErrDetail: ErrNoServers, Data: r}
		}
	}()

	if limit := p.maxInputSize(); len(text) > limit {
		e := utils.ErrInErr{ErrDesc: fmt.Sprintf("input is %d bytes, limit is %d", len(text), limit), ErrDetail: ErrInputTooLarge}
		p.record(e.Error())
		return nil, e
	}

	text = utils.StripBOM(text)

	if arr, ok := decodeLegacyArray(text); ok {
		list = p.fromLegacy(arr)
	} else {
		list = p.parseLines(utils.SplitLines(text))
	}

	if len(list) == 0 {
		return nil, utils.ErrInErr{ErrDesc: "Parse failed", ErrDetail: ErrNoServers}
	}

	if ce := utils.CanLogDebug("Parse done"); ce != nil {
		ce.Write(zap.Int("servers", len(list)))
	}
	return list, nil
}

func (p *Parser) maxInputSize() int {
	if p.MaxInputSize <= 0 {
		return DefaultMaxInputSize
	}
	return p.MaxInputSize
}

func (p *Parser) parseLines(lines []string) []server.Server {
	results := make([][]server.Server, len(lines))

	if p.Workers > 1 && len(lines) > 1 {
		var g errgroup.Group
		g.SetLimit(p.Workers)
		for i, line := range lines {
			i, line := i, line
			g.Go(func() error {
				results[i] = p.parseLine(line)
				return nil
			})
		}
		g.Wait()
	} else {
		for i, line := range lines {
			results[i] = p.parseLine(line)
		}
	}

	return lo.Flatten(results)
}

func (p *Parser) parseLine(line string) (list []server.Server) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	d, ok := findDecoder(line)
	if !ok {
		if ce := utils.CanLogDebug("skip unrecognized line"); ce != nil {
			ce.Write(zap.String("line", truncate(line, 64)))
		}
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			p.record(fmt.Sprintf("%s: panic while decoding: %v", d.name, r))
			list = nil
		}
	}()

	var err error
	list, err = d.decode(line, func(e error) {
		p.record(d.name + ": " + e.Error())
	})
	if err != nil {
		p.record(d.name + ": " + err.Error())
		return nil
	}
	return list
}

// record 不会让 Sink 的 panic 影响解析
func (p *Parser) record(msg string) {
	defer func() {
		_ = recover()
	}()

	var sink Sink = ZapSink{}
	if p.Sink != nil {
		sink = p.Sink
	}
	sink.Record(msg)
}
