package util

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/constraints"
)

// GatherFiles accepts multiple explicit paths or, when a single argument is
// given, expands it as a glob pattern. A pattern matching nothing yields no
// files, so callers can report the empty batch.
func GatherFiles(args []string) []string {
	if len(args) == 1 {
		matches, err := filepath.Glob(args[0])
		if err == nil {
			return matches
		}
	}
	return args
}

// IsMidiPath reports whether a path looks like a MIDI file we should touch.
func IsMidiPath(path string) bool {
	return strings.HasSuffix(path, ".mid") || strings.HasSuffix(path, ".midi")
}

// MakeFilePath builds the output path for a generated file: the input's base
// name, an optional suffix and a new extension inside the target folder.
func MakeFilePath(inputPath, targetFolder, ext, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := base
	if suffix != "" {
		name += "-" + suffix
	}
	return filepath.Join(targetFolder, name+"."+ext)
}

// EnsureTargetDir creates the target folder when it does not exist yet.
func EnsureTargetDir(path string) error {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return nil
	}
	return os.MkdirAll(path, 0777)
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func CreateBinary(filename string, data any) {
	buf := new(bytes.Buffer)
	encoder := gob.NewEncoder(buf)

	err := encoder.Encode(data)
	if err != nil {
		panic(err)
	}
	f, err := os.Create(filename)
	if err != nil {
		fmt.Println("Couldn't open file: "+filename, err)
	}
	defer f.Close()

	_, err = f.Write(buf.Bytes())
	if err != nil {
		fmt.Println("Write failed for file: "+filename, err)
	}
}

func OpenFileOrPanic(path string) *os.File {
	f, err := os.Open(path)
	if err != nil {
		panic("Couldn't read file: " + err.Error())
	}
	return f
}

func ReadBinaryOrPanic[A any](path string) A {
	f, err := os.Open(path)
	if err != nil {
		panic("Could not load binary file: " + err.Error())
	}
	defer f.Close()

	var data A
	decoder := gob.NewDecoder(f)
	err = decoder.Decode(&data)
	if err != nil {
		panic("Could not decode binary file: " + err.Error())
	}

	return data
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Sum[A constraints.Integer](nums []A) uint64 {
	var total uint64
	for _, v := range nums {
		total += uint64(v)
	}
	return total
}
