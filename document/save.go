// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package document

import (
	"bufio"
	"io"
	"os"
	"unicode/utf16"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/fileinfo"
)

// utf8BOM is the three-byte UTF-8 byte-order mark written at the start of
// every saved file.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SaveVisible writes every currently visible line's text (prefix excluded)
// to w, UTF-8 with a leading BOM, one '\n'-terminated line per visible
// source line.
func (d *Document) SaveVisible(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(utf8BOM); err != nil {
		return errors.Log(err)
	}

	d.mu.RLock()
	lines := make([]string, 0, len(d.visible))
	for _, v := range d.visible {
		if v.SourceIndex < len(d.lines) {
			lines = append(lines, string(d.lines[v.SourceIndex].Text))
		}
	}
	d.mu.RUnlock()

	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return errors.Log(err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return errors.Log(err)
		}
	}
	return errors.Log(bw.Flush())
}

// OpenFile loads path as the document's entire content, replacing whatever
// was there. The file's type is sniffed with fileinfo first; folders and
// executables are rejected rather than loaded as garbage text. Byte-order
// marks (UTF-8, UTF-16LE, UTF-16BE) are stripped and UTF-16 content is
// transcoded; otherwise the bytes are assumed to already be UTF-8. Any
// existing color spans are cleared.
func (d *Document) OpenFile(path string) error {
	fi, err := fileinfo.NewFileInfo(path)
	if err != nil {
		return errors.Log(err)
	}
	if fi.Cat == fileinfo.Folder || fi.Cat == fileinfo.Exe {
		return errors.Log(errors.New("document: cannot open as text: " + path + " (" + fi.Kind + ")"))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Log(err)
	}
	text := decodeFileText(raw)

	d.ClearColoring()
	d.SetText(text)
	return nil
}

// decodeFileText strips a leading BOM and transcodes UTF-16 content to the
// UTF-8 string SetText expects.
func decodeFileText(raw []byte) string {
	switch {
	case len(raw) >= 2 && raw[0] == 0xFF && raw[1] == 0xFE:
		return utf16ToString(raw[2:], false)
	case len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF:
		return utf16ToString(raw[2:], true)
	case len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF:
		return string(raw[3:])
	default:
		return string(raw)
	}
}

func utf16ToString(b []byte, bigEndian bool) string {
	if len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		if bigEndian {
			units[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
		} else {
			units[i] = uint16(b[2*i+1])<<8 | uint16(b[2*i])
		}
	}
	return string(utf16.Decode(units))
}
