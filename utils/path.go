package utils

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
)

func FileExist(path string) bool {
	_, err := os.Lstat(path)
	return !os.IsNotExist(err)
}

// Function that search the specified file in the following directories:
//  0. if absolute, return directly
//	1. Same folder with exec file
//  2. Same folder of the source file, 应该是用于 go test等情况
//  3. Same folder of working folder
func GetFilePath(fileName string) string {
	if fileName == "" {
		return ""
	}

	if filepath.IsAbs(fileName) {
		return fileName
	}

	if execFile, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(execFile), fileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if _, srcFile, _, ok := runtime.Caller(0); ok {
		p := filepath.Join(filepath.Dir(srcFile), fileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if workingDir, err := os.Getwd(); err == nil {
		p := filepath.Join(workingDir, fileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// ReadLimited 最多读取 limit+1 字节, 调用者可以据此判断是否超限而不必把整个大文件读进内存.
// name 为 "-" 时读 stdin.
func ReadLimited(name string, limit int) ([]byte, error) {
	var r io.Reader
	if name == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return io.ReadAll(io.LimitReader(r, int64(limit)+1))
}
