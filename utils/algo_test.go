package utils_test

import (
	"testing"

	"github.com/e1732a364fed/sharelink/utils"
)

func TestSplitLines(t *testing.T) {
	lines := utils.SplitLines("a\r\nb\nc\rd")
	if len(lines) != 4 || lines[0] != "a" || lines[1] != "b" || lines[2] != "c" || lines[3] != "d" {
		t.Log("wrong split", lines)
		t.FailNow()
	}

	if r := utils.SplitLines(""); len(r) != 1 || r[0] != "" {
		t.Log(r)
		t.FailNow()
	}
}

func TestStripBOM(t *testing.T) {
	if utils.StripBOM("\uFEFFss://") != "ss://" {
		t.FailNow()
	}
	if utils.StripBOM("ss://\uFEFF") != "ss://\uFEFF" {
		t.FailNow()
	}
}

func TestGetMapSortedKeySlice(t *testing.T) {
	m := map[string]int{"c": 1, "a": 2, "b": 3}
	r := utils.GetMapSortedKeySlice(m)
	t.Log(r)
	if len(r) != 3 || r[0] != "a" || r[1] != "b" || r[2] != "c" {
		t.FailNow()
	}

	c := utils.CloneSlice(r)
	c[0] = "z"
	if r[0] != "a" {
		t.FailNow()
	}
}
