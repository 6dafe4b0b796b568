package random

import (
	"strings"
)

func GenStringOnAscii(maxBytes uint32) string {
	nByte := int(FastRandN(maxBytes))
	var sb strings.Builder
	sb.Grow(nByte)
	for i := 0; i < nByte; i++ {
		sb.WriteByte(byte(FastRandN(26)) + 65)
	}
	return sb.String()
}

func GenStringsOnAscii(maxNStr, maxBytes uint32) []string {
	nStr := int(FastRandN(maxNStr))
	strs := make([]string, nStr)
	for i := 0; i < nStr; i++ {
		strs[i] = GenStringOnAscii(maxBytes)
	}
	return strs
}
