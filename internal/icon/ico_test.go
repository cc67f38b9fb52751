package icon

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// buildICO assembles a synthetic .ico file from the given entries and
// image payloads, computing offsets the way a real encoder would.
func buildICO(t *testing.T, entries []DirEntry, images [][]byte) string {
	t.Helper()

	buf := new(bytes.Buffer)
	header := DirHeader{Reserved: 0, Type: 1, Count: uint16(len(entries))}
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		t.Fatal(err)
	}

	offset := uint32(6 + 16*len(entries))
	for i := range entries {
		entries[i].BytesInRes = uint32(len(images[i]))
		entries[i].ImageOffset = offset
		offset += entries[i].BytesInRes
		if err := binary.Write(buf, binary.LittleEndian, entries[i]); err != nil {
			t.Fatal(err)
		}
	}
	for _, img := range images {
		buf.Write(img)
	}

	path := filepath.Join(t.TempDir(), "test.ico")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecode(t *testing.T) {
	entries := []DirEntry{
		{Width: 32, Height: 32, Planes: 1, BitCount: 32},
		{Width: 16, Height: 16, ColorCount: 16, Planes: 1, BitCount: 4},
	}
	images := [][]byte{
		bytes.Repeat([]byte{0xAA}, 300),
		bytes.Repeat([]byte{0xBB}, 120),
	}
	path := buildICO(t, entries, images)

	ic, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if ic.Header.Type != 1 || ic.Header.Count != 2 {
		t.Errorf("header = %+v, want type 1 count 2", ic.Header)
	}
	if len(ic.Entries) != 2 || len(ic.Images) != 2 {
		t.Fatalf("entries = %d, images = %d, want 2 each", len(ic.Entries), len(ic.Images))
	}

	if ic.Entries[0].Width != 32 || ic.Entries[0].BitCount != 32 {
		t.Errorf("entry 0 = %+v", ic.Entries[0])
	}
	if ic.Entries[1].ColorCount != 16 || ic.Entries[1].BitCount != 4 {
		t.Errorf("entry 1 = %+v", ic.Entries[1])
	}

	for i, img := range images {
		if !bytes.Equal(ic.Images[i], img) {
			t.Errorf("image %d does not match the declared payload", i)
		}
	}
}

func TestDecodeTruncatedFile(t *testing.T) {
	// Entry declares more image bytes than the file holds.
	path := filepath.Join(t.TempDir(), "bad.ico")

	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.LittleEndian, DirHeader{Type: 1, Count: 1})
	_ = binary.Write(buf, binary.LittleEndian, DirEntry{
		Width: 32, Height: 32, Planes: 1, BitCount: 32,
		BytesInRes: 9999, ImageOffset: 22,
	})
	buf.Write([]byte{0x01, 0x02})

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(path); err == nil {
		t.Fatal("Decode() succeeded on a truncated file")
	}
}

func TestGroupData(t *testing.T) {
	tests := []struct {
		name    string
		entries []DirEntry
		images  [][]byte
	}{
		{
			name:    "Single 32x32 icon",
			entries: []DirEntry{{Width: 32, Height: 32, Planes: 1, BitCount: 32}},
			images:  [][]byte{bytes.Repeat([]byte{0x11}, 64)},
		},
		{
			name: "Three sizes",
			entries: []DirEntry{
				{Width: 16, Height: 16, Planes: 1, BitCount: 32},
				{Width: 48, Height: 48, Planes: 1, BitCount: 8, ColorCount: 255},
				{Width: 0, Height: 0, Planes: 1, BitCount: 32}, // 256px encodes as 0
			},
			images: [][]byte{
				bytes.Repeat([]byte{0x22}, 10),
				bytes.Repeat([]byte{0x33}, 20),
				bytes.Repeat([]byte{0x44}, 30),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := buildICO(t, tt.entries, tt.images)
			ic, err := Decode(path)
			if err != nil {
				t.Fatal(err)
			}

			group := ic.GroupData()
			n := len(tt.entries)

			if want := 6 + 14*n; len(group) != want {
				t.Fatalf("group payload = %d bytes, want %d", len(group), want)
			}

			// Header is carried over verbatim.
			var header DirHeader
			if err := binary.Read(bytes.NewReader(group[:6]), binary.LittleEndian, &header); err != nil {
				t.Fatal(err)
			}
			if header != ic.Header {
				t.Errorf("group header = %+v, want %+v", header, ic.Header)
			}

			// The shared fields are preserved; only the address field
			// becomes a 1-based resource ID.
			for i := 0; i < n; i++ {
				var ge groupEntry
				record := group[6+14*i : 6+14*(i+1)]
				if err := binary.Read(bytes.NewReader(record), binary.LittleEndian, &ge); err != nil {
					t.Fatal(err)
				}

				src := ic.Entries[i]
				if ge.Width != src.Width || ge.Height != src.Height ||
					ge.ColorCount != src.ColorCount || ge.Reserved != src.Reserved ||
					ge.Planes != src.Planes || ge.BitCount != src.BitCount ||
					ge.BytesInRes != src.BytesInRes {
					t.Errorf("entry %d fields not preserved: %+v vs %+v", i, ge, src)
				}
				if ge.ID != uint16(i+1) {
					t.Errorf("entry %d resource ID = %d, want %d", i, ge.ID, i+1)
				}
			}
		})
	}
}
