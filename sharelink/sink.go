package sharelink

import (
	"sync"

	"github.com/e1732a364fed/sharelink/utils"
)

// Sink receives a human readable reason for every dropped line.
// When Parser.Workers > 1 Record may be called concurrently.
type Sink interface {
	Record(msg string)
}

type SinkFunc func(msg string)

func (f SinkFunc) Record(msg string) { f(msg) }

// ZapSink 是默认的 Sink, 直接打到 utils.ZapLogger 的 info 级别
type ZapSink struct{}

func (ZapSink) Record(msg string) {
	if ce := utils.CanLogInfo(msg); ce != nil {
		ce.Write()
	}
}

// Collector 把收到的消息都存起来, 并同时转发给 Next (可为nil)
type Collector struct {
	Next Sink

	mu       sync.Mutex
	messages []string
}

func (c *Collector) Record(msg string) {
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()

	if c.Next != nil {
		c.Next.Record(msg)
	}
}

// Messages returns a copy of everything recorded so far.
func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return utils.CloneSlice(c.messages)
}
