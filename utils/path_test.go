package utils_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/e1732a364fed/sharelink/utils"
)

func TestReadLimited(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "links.txt")
	if err := os.WriteFile(fn, []byte(strings.Repeat("a", 100)), 0644); err != nil {
		t.FailNow()
	}

	bs, err := utils.ReadLimited(fn, 10)
	if err != nil || len(bs) != 11 {
		t.Log(len(bs), err)
		t.FailNow()
	}

	bs, err = utils.ReadLimited(fn, 1000)
	if err != nil || len(bs) != 100 {
		t.FailNow()
	}

	if !utils.FileExist(fn) || utils.FileExist(fn+".nope") {
		t.FailNow()
	}
	if utils.GetFilePath(fn) != fn || utils.GetFilePath("") != "" {
		t.FailNow()
	}
}
