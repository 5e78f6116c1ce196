package utils_test

import (
	"strings"
	"testing"

	"github.com/e1732a364fed/sharelink/utils"
)

func TestGetPurgedTomlStr(t *testing.T) {
	type rec struct {
		Remark   string `toml:"remark"`
		Port     int    `toml:"port"`
		Password string `toml:"password"`
		TLS      bool   `toml:"tls"`
	}
	type doc struct {
		Servers []rec `toml:"server"`
	}

	s, err := utils.GetPurgedTomlStr(doc{Servers: []rec{{Remark: "a", Port: 1}, {Remark: "b", TLS: true}}})
	if err != nil {
		t.FailNow()
	}
	t.Log(s)

	if strings.Contains(s, `password = ""`) || strings.Contains(s, "port = 0") || strings.Contains(s, "tls = false") {
		t.FailNow()
	}
	if !strings.Contains(s, `remark = "a"`) || !strings.Contains(s, "port = 1") || !strings.Contains(s, "tls = true") {
		t.FailNow()
	}
}

func TestWrapFuncForPromptUI(t *testing.T) {
	f := utils.WrapFuncForPromptUI(func(s string) bool { return s == "ok" })
	if f("ok") != nil || f("no") == nil {
		t.FailNow()
	}
}

func TestStandardizeSpaces(t *testing.T) {
	if utils.StandardizeSpaces("  a \t b\n c ") != "a b c" {
		t.FailNow()
	}
}
