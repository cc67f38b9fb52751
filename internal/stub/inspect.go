package stub

import (
	"bytes"
	"fmt"
	"os"
)

// InspectCommand decodes the command and console flag back out of a
// generated launcher. The template is needed to locate the patched region.
func InspectCommand(templatePath, exePath string) (command string, showConsole bool, err error) {
	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return "", false, fmt.Errorf("读取模板失败: %w", err)
	}

	offset := bytes.Index(tmpl, replaceSignature)
	if offset < 0 {
		return "", false, fmt.Errorf("%w: %s", ErrBadTemplate, templatePath)
	}

	f, err := os.Open(exePath)
	if err != nil {
		return "", false, fmt.Errorf("打开目标文件失败: %w", err)
	}
	defer func() { _ = f.Close() }()

	region := make([]byte, MaxCmdLength+1)
	if _, err := f.ReadAt(region, int64(offset)); err != nil {
		return "", false, fmt.Errorf("读取命令区域失败: %w", err)
	}

	command = string(bytes.TrimRight(region[:MaxCmdLength], "\x00"))
	showConsole = region[MaxCmdLength] == '1'
	return command, showConsole, nil
}
