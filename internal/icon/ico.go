// Package icon parses .ico files and commits them as icon resources into
// Windows executables.
package icon

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// DirHeader mirrors the ICONDIR header at the start of a .ico file.
type DirHeader struct {
	Reserved uint16
	Type     uint16
	Count    uint16
}

// DirEntry mirrors one ICONDIRENTRY record (16 bytes in the file).
type DirEntry struct {
	Width       uint8
	Height      uint8
	ColorCount  uint8
	Reserved    uint8
	Planes      uint16
	BitCount    uint16
	BytesInRes  uint32
	ImageOffset uint32
}

// groupEntry is the GRPICONDIRENTRY record stored in the executable's
// resource section: the 4-byte image offset is replaced by a 2-byte
// resource ID (14 bytes total).
type groupEntry struct {
	Width      uint8
	Height     uint8
	ColorCount uint8
	Reserved   uint8
	Planes     uint16
	BitCount   uint16
	BytesInRes uint32
	ID         uint16
}

// Icon holds the decoded contents of a .ico file.
type Icon struct {
	Header  DirHeader
	Entries []DirEntry
	Images  [][]byte
}

// Decode reads a .ico file: the directory header, every directory entry,
// then each image blob at its declared offset.
func Decode(path string) (*Icon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开图标文件失败: %w", err)
	}
	defer func() { _ = f.Close() }()

	ic := &Icon{}
	if err := binary.Read(f, binary.LittleEndian, &ic.Header); err != nil {
		return nil, fmt.Errorf("读取图标目录头失败: %w", err)
	}

	ic.Entries = make([]DirEntry, ic.Header.Count)
	for i := range ic.Entries {
		if err := binary.Read(f, binary.LittleEndian, &ic.Entries[i]); err != nil {
			return nil, fmt.Errorf("读取图标目录项 %d 失败: %w", i+1, err)
		}
	}

	ic.Images = make([][]byte, ic.Header.Count)
	for i, entry := range ic.Entries {
		if _, err := f.Seek(int64(entry.ImageOffset), io.SeekStart); err != nil {
			return nil, fmt.Errorf("定位图标图像 %d 失败: %w", i+1, err)
		}
		img := make([]byte, entry.BytesInRes)
		if _, err := io.ReadFull(f, img); err != nil {
			return nil, fmt.Errorf("读取图标图像 %d 失败: %w", i+1, err)
		}
		ic.Images[i] = img
	}

	return ic, nil
}

// GroupData encodes the RT_GROUP_ICON resource payload: the original
// 3-field header followed by one 14-byte group entry per image, with
// 1-based sequential resource IDs in place of file offsets.
func (ic *Icon) GroupData() []byte {
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.LittleEndian, ic.Header)
	for i, entry := range ic.Entries {
		_ = binary.Write(buf, binary.LittleEndian, groupEntry{
			Width:      entry.Width,
			Height:     entry.Height,
			ColorCount: entry.ColorCount,
			Reserved:   entry.Reserved,
			Planes:     entry.Planes,
			BitCount:   entry.BitCount,
			BytesInRes: entry.BytesInRes,
			ID:         uint16(i + 1),
		})
	}
	return buf.Bytes()
}
