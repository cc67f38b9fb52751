package icon

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNotFound is returned when the icon or target executable is
	// missing or not a regular file.
	ErrNotFound = errors.New("文件不存在或不是常规文件")

	// ErrResourceUpdate is returned when the OS resource-update
	// transaction fails. The target's resource state is then undefined;
	// rebuild from a fresh template copy.
	ErrResourceUpdate = errors.New("资源更新失败")
)

// AddToExe commits the icon file's images into the target executable as a
// group-icon resource (ID 0) plus one icon resource per image (IDs 1..N).
func AddToExe(iconFile, exeFile string) error {
	return addToExe(iconFile, exeFile, newUpdater())
}

func addToExe(iconFile, exeFile string, u Updater) error {
	// Both files are checked before any OS resource call.
	if err := checkRegularFile(exeFile); err != nil {
		return err
	}
	if err := checkRegularFile(iconFile); err != nil {
		return err
	}

	ic, err := Decode(iconFile)
	if err != nil {
		return err
	}

	if err := u.Begin(exeFile); err != nil {
		return fmt.Errorf("%w: 打开资源事务: %v", ErrResourceUpdate, err)
	}

	if err := u.Update(RT_GROUP_ICON, 0, ic.GroupData()); err != nil {
		_ = u.End(false)
		return fmt.Errorf("%w: 写入图标组资源: %v", ErrResourceUpdate, err)
	}

	for i, img := range ic.Images {
		if err := u.Update(RT_ICON, uint16(i+1), img); err != nil {
			_ = u.End(false)
			return fmt.Errorf("%w: 写入图标资源 %d: %v", ErrResourceUpdate, i+1, err)
		}
	}

	if err := u.End(true); err != nil {
		return fmt.Errorf("%w: 提交资源事务: %v", ErrResourceUpdate, err)
	}
	return nil
}

func checkRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return nil
}
