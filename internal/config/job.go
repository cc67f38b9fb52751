// Package config loads launcher build jobs from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Job describes a batch of launchers built from one template.
type Job struct {
	Template string  `yaml:"template,omitempty"`
	Builds   []Build `yaml:"builds"`
}

// Build describes one launcher to generate.
type Build struct {
	Target      string `yaml:"target"`
	Command     string `yaml:"command"`
	Icon        string `yaml:"icon,omitempty"`
	ShowConsole bool   `yaml:"show_console"`
}

// Load reads and validates a job file. Relative paths inside the job are
// resolved against the job file's directory.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取任务文件失败: %w", err)
	}

	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("解析任务文件失败: %w", err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	job.Template = resolve(dir, job.Template)
	for i := range job.Builds {
		job.Builds[i].Target = resolve(dir, job.Builds[i].Target)
		job.Builds[i].Icon = resolve(dir, job.Builds[i].Icon)
	}

	return &job, nil
}

// Validate checks that every build names a target and a command.
func (j *Job) Validate() error {
	if len(j.Builds) == 0 {
		return fmt.Errorf("任务文件中没有构建项")
	}
	for i, b := range j.Builds {
		if b.Target == "" {
			return fmt.Errorf("构建项 %d 缺少 target", i+1)
		}
		if b.Command == "" {
			return fmt.Errorf("构建项 %d 缺少 command", i+1)
		}
	}
	return nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) || isWindowsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// isWindowsAbs recognizes drive-letter and rooted Windows paths, so job
// files naming Windows targets resolve the same on any build host.
func isWindowsAbs(path string) bool {
	if len(path) >= 1 && path[0] == '\\' {
		return true
	}
	return len(path) >= 2 && path[1] == ':'
}
