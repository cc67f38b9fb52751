package stub

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// TemplateName is the file name of the launcher template asset.
const TemplateName = "genexe_template"

// templateEnv overrides the template location when set.
const templateEnv = "GENEXE_TEMPLATE"

// DefaultTemplatePath returns the template location: the GENEXE_TEMPLATE
// environment variable when set, otherwise TemplateName next to the running
// executable.
func DefaultTemplatePath() (string, error) {
	if p := os.Getenv(templateEnv); p != "" {
		return p, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("定位模板失败: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), TemplateName), nil
}

// LoadTemplate reads the template binary and verifies that the placeholder
// region appears exactly once.
func LoadTemplate(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取模板失败: %w", err)
	}
	if n := bytes.Count(data, replaceSignature); n != 1 {
		return nil, fmt.Errorf("%w: %s (出现 %d 次)", ErrBadTemplate, path, n)
	}
	return data, nil
}
