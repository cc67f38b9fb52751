// Package stub generates Windows launcher executables by patching a
// precompiled template binary.
package stub

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZacharyZcR/GenExe/internal/icon"
)

// MaxCmdLength is the maximum command length the launcher template can hold.
const MaxCmdLength = 259

// replaceSignature is the placeholder region inside the template: 259 'X'
// bytes for the command, one '1' byte for the console flag.
var replaceSignature = append(bytes.Repeat([]byte{'X'}, MaxCmdLength), '1')

var (
	// ErrInvalidTarget is returned when the target path resolves to the
	// template file itself.
	ErrInvalidTarget = errors.New("目标路径不能与模板文件相同")

	// ErrBadTemplate is returned when the placeholder region is missing or
	// appears more than once in the template.
	ErrBadTemplate = errors.New("模板占位符缺失或不唯一")

	// ErrNonASCII is returned when the command contains bytes outside the
	// ASCII range the launcher template can store.
	ErrNonASCII = errors.New("命令包含非ASCII字符")
)

// Sink receives diagnostic messages from the generator.
type Sink interface {
	Warnf(format string, v ...interface{})
	Debugf(format string, v ...interface{})
}

type nopSink struct{}

func (nopSink) Warnf(string, ...interface{})  {}
func (nopSink) Debugf(string, ...interface{}) {}

// Generator patches launcher executables from a template binary.
type Generator struct {
	templatePath string
	sink         Sink
}

// NewGenerator creates a generator for the given template path. An empty
// path selects the default template location.
func NewGenerator(templatePath string) (*Generator, error) {
	if templatePath == "" {
		var err error
		templatePath, err = DefaultTemplatePath()
		if err != nil {
			return nil, err
		}
	}
	return &Generator{
		templatePath: templatePath,
		sink:         nopSink{},
	}, nil
}

// SetSink installs a diagnostic sink. A nil sink restores the default
// no-op sink.
func (g *Generator) SetSink(s Sink) {
	if s == nil {
		s = nopSink{}
	}
	g.sink = s
}

// TemplatePath returns the template path in use.
func (g *Generator) TemplatePath() string {
	return g.templatePath
}

// EncodeCommand encodes a command string and console flag into the
// MaxCmdLength+1 byte form stored in the launcher. Commands longer than
// MaxCmdLength are truncated; the second return value reports that.
func EncodeCommand(command string, showConsole bool) ([]byte, bool) {
	truncated := false
	if len(command) > MaxCmdLength {
		command = command[:MaxCmdLength]
		truncated = true
	}

	// NUL padding comes for free from make.
	buf := make([]byte, MaxCmdLength+1)
	copy(buf, command)
	if showConsole {
		buf[MaxCmdLength] = '1'
	} else {
		buf[MaxCmdLength] = '0'
	}
	return buf, truncated
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return false
		}
	}
	return true
}

// Generate writes a patched launcher to target that runs the given command.
// The command must be ASCII, since that is all the template region can hold.
// When iconFile is non-empty the icon is committed to the freshly written
// executable afterwards.
func (g *Generator) Generate(target, command, iconFile string, showConsole bool) error {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("解析目标路径失败: %w", err)
	}
	absTemplate, err := filepath.Abs(g.templatePath)
	if err != nil {
		return fmt.Errorf("解析模板路径失败: %w", err)
	}
	if absTarget == absTemplate {
		return fmt.Errorf("%w: %s", ErrInvalidTarget, absTarget)
	}
	if !isASCII(command) {
		return fmt.Errorf("%w: %q", ErrNonASCII, command)
	}

	data, err := LoadTemplate(g.templatePath)
	if err != nil {
		return err
	}

	encoded, truncated := EncodeCommand(command, showConsole)
	if truncated {
		g.sink.Warnf("命令长度为 %d，超过 %d 个字符，将被截断", len(command), MaxCmdLength)
		g.sink.Debugf("截断后的命令: %s", command[:MaxCmdLength])
	}

	patched := bytes.Replace(data, replaceSignature, encoded, 1)
	if err := os.WriteFile(absTarget, patched, 0755); err != nil {
		return fmt.Errorf("写入目标文件失败: %w", err)
	}
	g.sink.Debugf("已生成启动器: %s", absTarget)

	if iconFile != "" {
		absIcon, err := filepath.Abs(iconFile)
		if err != nil {
			return fmt.Errorf("解析图标路径失败: %w", err)
		}
		if err := icon.AddToExe(absIcon, absTarget); err != nil {
			return err
		}
		g.sink.Debugf("已写入图标资源: %s", absIcon)
	}

	return nil
}
