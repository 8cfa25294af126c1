package sieg

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/frzanini/downloadSiegHub/internal/common"
)

// DecodeBlob turns one base64-encoded transport blob into the raw XML text
// it carries. It fails when the input is not valid standard-alphabet base64
// or the decoded bytes are not valid UTF-8.
func DecodeBlob(blob string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(blob))
	if err != nil {
		return "", common.NewAppError("DECODE_ERROR", "blob is not valid base64", err)
	}
	if !utf8.Valid(raw) {
		return "", common.NewAppError("DECODE_ERROR", "decoded blob is not valid UTF-8", common.ErrDecode)
	}
	return string(raw), nil
}

// EncodeBlob is the inverse of DecodeBlob.
func EncodeBlob(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}
