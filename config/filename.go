package config

import (
	"os"
	"strings"
)

const badFileName = "_bad_file_name_"

// CleanFileName removes characters not allowed in file names on this
// platform. Result is never empty.
func CleanFileName(in string) string {
	forbidden := forbiddenChars + string(os.PathSeparator) + string(os.PathListSeparator)
	out := strings.Map(func(sym rune) rune {
		if sym == 0 || strings.ContainsRune(forbidden, sym) {
			return -1
		}
		return sym
	}, in)
	out = trimFileName(out)
	if len(out) == 0 {
		out = badFileName
	}
	return out
}
