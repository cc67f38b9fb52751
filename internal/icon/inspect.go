package icon

import (
	"debug/pe"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Info reports the icon resources found in an executable.
type Info struct {
	GroupCount int
	IconCount  int
	IconIDs    []uint32
}

// IMAGE_RESOURCE_DIRECTORY structure.
type resourceDirectory struct {
	Characteristics      uint32
	TimeDateStamp        uint32
	MajorVersion         uint16
	MinorVersion         uint16
	NumberOfNamedEntries uint16
	NumberOfIdEntries    uint16
}

// IMAGE_RESOURCE_DIRECTORY_ENTRY structure.
type resourceDirectoryEntry struct {
	NameOrID                uint32
	OffsetToDataOrDirectory uint32
}

// Inspect walks the resource section of an executable and counts its
// RT_ICON and RT_GROUP_ICON resources. Used to verify a committed icon.
func Inspect(exePath string) (*Info, error) {
	peFile, err := pe.Open(exePath)
	if err != nil {
		return nil, fmt.Errorf("解析PE文件失败: %w", err)
	}
	defer func() { _ = peFile.Close() }()

	f, err := os.Open(exePath)
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %w", err)
	}
	defer func() { _ = f.Close() }()

	info := &Info{}

	// Resource directory is Data Directory[2].
	var resDirRVA uint32
	if oh32, ok := peFile.OptionalHeader.(*pe.OptionalHeader32); ok {
		if len(oh32.DataDirectory) > 2 {
			resDirRVA = oh32.DataDirectory[2].VirtualAddress
		}
	} else if oh64, ok := peFile.OptionalHeader.(*pe.OptionalHeader64); ok {
		if len(oh64.DataDirectory) > 2 {
			resDirRVA = oh64.DataDirectory[2].VirtualAddress
		}
	}
	if resDirRVA == 0 {
		return info, nil // No resources
	}

	base, err := rvaToOffset(peFile, resDirRVA)
	if err != nil {
		return info, err
	}

	root, err := readDirectoryEntries(f, int64(base))
	if err != nil {
		return info, err
	}

	for _, entry := range root {
		isDirectory := entry.OffsetToDataOrDirectory&0x80000000 != 0
		if !isDirectory {
			continue
		}
		subOffset := int64(base) + int64(entry.OffsetToDataOrDirectory&0x7FFFFFFF)

		switch entry.NameOrID {
		case RT_ICON:
			ids, err := readDirectoryEntries(f, subOffset)
			if err != nil {
				continue
			}
			info.IconCount = len(ids)
			for _, id := range ids {
				info.IconIDs = append(info.IconIDs, id.NameOrID)
			}
		case RT_GROUP_ICON:
			ids, err := readDirectoryEntries(f, subOffset)
			if err != nil {
				continue
			}
			info.GroupCount = len(ids)
		}
	}

	return info, nil
}

func readDirectoryEntries(r io.ReaderAt, dirOffset int64) ([]resourceDirectoryEntry, error) {
	var dir resourceDirectory
	err := binary.Read(io.NewSectionReader(r, dirOffset, 16), binary.LittleEndian, &dir)
	if err != nil {
		return nil, err
	}

	total := int(dir.NumberOfNamedEntries + dir.NumberOfIdEntries)
	entries := make([]resourceDirectoryEntry, 0, total)
	for i := 0; i < total; i++ {
		var entry resourceDirectoryEntry
		entryOffset := dirOffset + 16 + int64(i*8)
		err := binary.Read(io.NewSectionReader(r, entryOffset, 8), binary.LittleEndian, &entry)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func rvaToOffset(f *pe.File, rva uint32) (uint32, error) {
	for _, section := range f.Sections {
		if rva >= section.VirtualAddress && rva < section.VirtualAddress+section.VirtualSize {
			return rva - section.VirtualAddress + section.Offset, nil
		}
	}
	return 0, fmt.Errorf("RVA 0x%X 不在任何节区内", rva)
}
