package icon

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// fakeUpdater records resource-transaction calls for assertions.
type fakeUpdater struct {
	calls     []fakeCall
	failOn    string // "begin", "update", "end"
	committed bool
	discarded bool
}

type fakeCall struct {
	resType uint16
	id      uint16
	size    int
}

func (f *fakeUpdater) Begin(path string) error {
	if f.failOn == "begin" {
		return fmt.Errorf("begin refused")
	}
	return nil
}

func (f *fakeUpdater) Update(resType, id uint16, data []byte) error {
	if f.failOn == "update" {
		return fmt.Errorf("update refused")
	}
	f.calls = append(f.calls, fakeCall{resType: resType, id: id, size: len(data)})
	return nil
}

func (f *fakeUpdater) End(commit bool) error {
	if f.failOn == "end" {
		return fmt.Errorf("end refused")
	}
	if commit {
		f.committed = true
	} else {
		f.discarded = true
	}
	return nil
}

func writeExe(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "app.exe")
	if err := os.WriteFile(path, []byte("MZ fake executable"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAddToExeCommitsGroupAndImages(t *testing.T) {
	dir := t.TempDir()
	exePath := writeExe(t, dir)

	entries := []DirEntry{
		{Width: 16, Height: 16, Planes: 1, BitCount: 32},
		{Width: 32, Height: 32, Planes: 1, BitCount: 32},
	}
	images := [][]byte{
		bytes.Repeat([]byte{0x55}, 80),
		bytes.Repeat([]byte{0x66}, 160),
	}
	icoPath := buildICO(t, entries, images)

	fake := &fakeUpdater{}
	if err := addToExe(icoPath, exePath, fake); err != nil {
		t.Fatalf("addToExe() error = %v", err)
	}

	if !fake.committed {
		t.Fatal("transaction was not committed")
	}
	if len(fake.calls) != 3 {
		t.Fatalf("resource calls = %d, want 3", len(fake.calls))
	}

	// Group-icon payload first, ID 0, 6 + 14N bytes.
	group := fake.calls[0]
	if group.resType != RT_GROUP_ICON || group.id != 0 {
		t.Errorf("first call = type %d id %d, want RT_GROUP_ICON id 0", group.resType, group.id)
	}
	if group.size != 6+14*len(entries) {
		t.Errorf("group payload = %d bytes, want %d", group.size, 6+14*len(entries))
	}

	// Then one icon image per entry with 1-based IDs.
	for i, img := range images {
		call := fake.calls[i+1]
		if call.resType != RT_ICON {
			t.Errorf("call %d type = %d, want RT_ICON", i+1, call.resType)
		}
		if call.id != uint16(i+1) {
			t.Errorf("call %d id = %d, want %d", i+1, call.id, i+1)
		}
		if call.size != len(img) {
			t.Errorf("call %d size = %d, want %d", i+1, call.size, len(img))
		}
	}
}

func TestAddToExeSingleEntryGroupPayload(t *testing.T) {
	dir := t.TempDir()
	exePath := writeExe(t, dir)

	icoPath := buildICO(t,
		[]DirEntry{{Width: 32, Height: 32, Planes: 1, BitCount: 32}},
		[][]byte{bytes.Repeat([]byte{0x77}, 128)})

	fake := &fakeUpdater{}
	if err := addToExe(icoPath, exePath, fake); err != nil {
		t.Fatal(err)
	}

	if fake.calls[0].size != 20 {
		t.Errorf("single-entry group payload = %d bytes, want 20", fake.calls[0].size)
	}
	if len(fake.calls) != 2 {
		t.Errorf("resource calls = %d, want 2", len(fake.calls))
	}
}

func TestAddToExeMissingFiles(t *testing.T) {
	dir := t.TempDir()
	exePath := writeExe(t, dir)
	icoPath := buildICO(t,
		[]DirEntry{{Width: 16, Height: 16, Planes: 1, BitCount: 32}},
		[][]byte{{0x01}})

	tests := []struct {
		name string
		icon string
		exe  string
	}{
		{"Missing executable", icoPath, filepath.Join(dir, "missing.exe")},
		{"Missing icon", filepath.Join(dir, "missing.ico"), exePath},
		{"Directory as executable", icoPath, dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeUpdater{}
			err := addToExe(tt.icon, tt.exe, fake)
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("addToExe() error = %v, want ErrNotFound", err)
			}
			// Preconditions fail before any OS resource call.
			if len(fake.calls) != 0 || fake.committed || fake.discarded {
				t.Error("resource transaction touched despite missing input")
			}
		})
	}
}

func TestAddToExeTransactionFailures(t *testing.T) {
	dir := t.TempDir()
	exePath := writeExe(t, dir)
	icoPath := buildICO(t,
		[]DirEntry{{Width: 16, Height: 16, Planes: 1, BitCount: 32}},
		[][]byte{{0x01, 0x02}})

	tests := []struct {
		name        string
		failOn      string
		wantDiscard bool
	}{
		{"Begin fails", "begin", false},
		{"Update fails", "update", true},
		{"Commit fails", "end", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeUpdater{failOn: tt.failOn}
			err := addToExe(icoPath, exePath, fake)
			if !errors.Is(err, ErrResourceUpdate) {
				t.Fatalf("addToExe() error = %v, want ErrResourceUpdate", err)
			}
			if fake.committed {
				t.Error("transaction committed despite failure")
			}
			if tt.wantDiscard && !fake.discarded {
				t.Error("failed transaction was not discarded")
			}
		})
	}
}
