package memkv

import (
	"errors"
	"strconv"
)

var errMismatchedLengths = errors.New("memkv: keys and rows have different lengths")

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
