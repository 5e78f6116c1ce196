package utils_test

import (
	"errors"
	"testing"

	"github.com/e1732a364fed/sharelink/utils"
)

func TestURLSafeBase64Decode(t *testing.T) {
	var cases = []struct {
		in, out string
	}{
		{"YWVzLTI1Ni1nY206cGFzcw==", "aes-256-gcm:pass"},
		{"YWVzLTI1Ni1nY206cGFzcw", "aes-256-gcm:pass"},
		{"YWVzLTI1Ni1nY206cGFzcw=", "aes-256-gcm:pass"},
		{"Pz8-Pw", "??>?"},
		{"Pz8+Pw==", "??>?"},
		{"Pz8_", "???"},
		{"", ""},
	}
	for _, c := range cases {
		r, err := utils.URLSafeBase64Decode(c.in)
		if err != nil {
			t.Log(c.in, err)
			t.FailNow()
		}
		if r != c.out {
			t.Logf("%q: got %q, want %q", c.in, r, c.out)
			t.FailNow()
		}
	}
}

func TestURLSafeBase64DecodeInvalid(t *testing.T) {
	for _, s := range []string{"a", "!!!!", "ab:c"} {
		_, err := utils.URLSafeBase64Decode(s)
		if err == nil || !errors.Is(err, utils.ErrInvalidBase64) {
			t.Log(s, err)
			t.FailNow()
		}
	}
}

func TestURLSafeBase64InvalidUTF8(t *testing.T) {
	//0xff 不是合法的utf8
	r, err := utils.URLSafeBase64Decode("_w")
	if err != nil {
		t.FailNow()
	}
	if r != "\uFFFD" {
		t.Logf("%q", r)
		t.FailNow()
	}
}

func TestURLSafeBase64Encode(t *testing.T) {
	for _, s := range []string{"", "a", "ab", "abc", "??>?", "节点 #1", "aes-256-gcm:pass@a.com:8388"} {
		e := utils.URLSafeBase64Encode(s)
		if len(e)%4 != 0 {
			t.Log("not padded", e)
			t.FailNow()
		}
		for _, b := range []byte(e) {
			if b == '+' || b == '/' {
				t.Log("not url safe", e)
				t.FailNow()
			}
		}
		d, err := utils.URLSafeBase64Decode(e)
		if err != nil || d != s {
			t.Log(s, d, err)
			t.FailNow()
		}
	}

	if utils.URLSafeBase64Encode("??>?") != "Pz8-Pw==" {
		t.FailNow()
	}
}
