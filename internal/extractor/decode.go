package extractor

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errNotText = errors.New("file is not valid text")

// decodeText accepts UTF-8, UTF-16 (with or without BOM) and Windows-1252.
func decodeText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if utf8.Valid(data) {
		return strings.TrimPrefix(string(data), "\ufeff"), nil
	}

	if order, ok := sniffUTF16(data); ok {
		decoded, _, err := transform.Bytes(xunicode.UTF16(order, xunicode.UseBOM).NewDecoder(), data)
		if err == nil {
			return strings.TrimPrefix(string(decoded), "\ufeff"), nil
		}
	}

	decoded, _, err := transform.Bytes(xunicode.BOMOverride(charmap.Windows1252.NewDecoder()), data)
	if err != nil {
		return "", errNotText
	}
	text := string(decoded)
	if !mostlyPrintable(text) {
		return "", errNotText
	}
	return text, nil
}

func sniffUTF16(data []byte) (xunicode.Endianness, bool) {
	if len(data) < 2 {
		return xunicode.LittleEndian, false
	}
	switch {
	case data[0] == 0xff && data[1] == 0xfe:
		return xunicode.LittleEndian, true
	case data[0] == 0xfe && data[1] == 0xff:
		return xunicode.BigEndian, true
	}

	sample := data
	if len(sample) > 2048 {
		sample = sample[:2048]
	}
	zeroEven, zeroOdd := 0, 0
	for i, b := range sample {
		if b != 0 {
			continue
		}
		if i%2 == 0 {
			zeroEven++
		} else {
			zeroOdd++
		}
	}
	if float64(zeroEven+zeroOdd)/float64(len(sample)) <= 0.2 {
		return xunicode.LittleEndian, false
	}
	if zeroOdd >= zeroEven {
		return xunicode.LittleEndian, true
	}
	return xunicode.BigEndian, true
}

func mostlyPrintable(text string) bool {
	total, printable := 0, 0
	for _, r := range text {
		total++
		if r == utf8.RuneError {
			continue
		}
		if r == '\n' || r == '\r' || r == '\t' || unicode.IsPrint(r) {
			printable++
		}
	}
	if total == 0 {
		return false
	}
	return float64(printable)/float64(total) >= 0.7
}
