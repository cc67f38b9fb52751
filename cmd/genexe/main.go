// Package main provides the GenExe CLI tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	log "github.com/schollz/logger"

	"github.com/ZacharyZcR/GenExe/internal/cli"
	"github.com/ZacharyZcR/GenExe/internal/config"
	"github.com/ZacharyZcR/GenExe/internal/icon"
	"github.com/ZacharyZcR/GenExe/internal/stub"
)

var (
	templatePath = flag.String("template", "", "启动器模板路径（默认: 可执行文件目录下的 genexe_template，或环境变量 GENEXE_TEMPLATE）")
	target       = flag.String("target", "", "生成的启动器路径")
	command      = flag.String("command", "", "启动器要执行的命令（最长259字符）")
	iconFile     = flag.String("icon", "", "图标文件路径（.ico，可选）")
	showConsole  = flag.Bool("show-console", false, "运行时显示控制台窗口")
	jobFile      = flag.String("job", "", "YAML任务文件（批量生成）")
	inspectPath  = flag.String("inspect", "", "检查模式：解码已生成启动器中的命令和图标资源")
	verbose      = flag.Bool("v", false, "详细模式：输出调试日志")
)

// logSink routes generator diagnostics through the leveled logger.
type logSink struct{}

func (logSink) Warnf(format string, v ...interface{})  { log.Warnf(format, v...) }
func (logSink) Debugf(format string, v ...interface{}) { log.Debugf(format, v...) }

func main() {
	flag.Parse()

	if *verbose {
		log.SetLevel("debug")
	} else {
		log.SetLevel("warn")
	}

	var err error
	switch {
	case *inspectPath != "":
		err = inspectExe(*inspectPath)
	case *jobFile != "":
		err = runJob(*jobFile)
	case *target != "" && *command != "":
		err = runSingle()
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		red := color.New(color.FgRed, color.Bold)
		_, _ = red.Fprintf(os.Stderr, "\n错误: %v\n\n", err)
		os.Exit(1)
	}
}

func runSingle() error {
	gen, err := stub.NewGenerator(*templatePath)
	if err != nil {
		return err
	}
	gen.SetSink(logSink{})

	if err := gen.Generate(*target, *command, *iconFile, *showConsole); err != nil {
		return err
	}

	reporter := cli.NewReporter()
	reporter.Add(buildResult(*target, *command, *iconFile, *showConsole))
	reporter.Print()
	return nil
}

func runJob(path string) error {
	job, err := config.Load(path)
	if err != nil {
		return err
	}

	tmpl := job.Template
	if *templatePath != "" {
		tmpl = *templatePath
	}
	gen, err := stub.NewGenerator(tmpl)
	if err != nil {
		return err
	}
	gen.SetSink(logSink{})

	reporter := cli.NewReporter()
	for i, b := range job.Builds {
		cyan := color.New(color.FgCyan)
		_, _ = cyan.Printf("正在生成 (%d/%d): %s\n", i+1, len(job.Builds), b.Target)

		if err := gen.Generate(b.Target, b.Command, b.Icon, b.ShowConsole); err != nil {
			return fmt.Errorf("构建 %s 失败: %w", b.Target, err)
		}
		reporter.Add(buildResult(b.Target, b.Command, b.Icon, b.ShowConsole))
	}
	reporter.Print()
	return nil
}

func buildResult(target, command, iconPath string, showConsole bool) cli.Result {
	result := cli.Result{
		Target:      target,
		Command:     command,
		Truncated:   len(command) > stub.MaxCmdLength,
		ShowConsole: showConsole,
		IconFile:    iconPath,
	}
	if iconPath != "" {
		if ic, err := icon.Decode(iconPath); err == nil {
			result.IconImages = len(ic.Images)
		}
	}
	return result
}

func inspectExe(exePath string) error {
	gen, err := stub.NewGenerator(*templatePath)
	if err != nil {
		return err
	}

	command, show, err := stub.InspectCommand(gen.TemplatePath(), exePath)
	if err != nil {
		return err
	}

	info, err := icon.Inspect(exePath)
	if err != nil {
		log.Debugf("图标资源检查失败: %v", err)
		info = nil
	}

	cli.PrintInspect(exePath, command, show, info)
	return nil
}

func printUsage() {
	cyan := color.New(color.FgCyan, color.Bold)
	_, _ = cyan.Println("\nGenExe - Windows启动器生成工具")

	fmt.Println("\n生成模式用法:")
	fmt.Println("  genexe -target <路径> -command <命令> [选项]")
	fmt.Println("\n生成选项:")
	fmt.Println("  -template <路径>   启动器模板路径（默认: 可执行文件目录下的 genexe_template）")
	fmt.Println("  -target <路径>     生成的启动器路径")
	fmt.Println("  -command <命令>    启动器要执行的命令（最长259字符，超长会被截断）")
	fmt.Println("  -icon <路径>       图标文件（.ico），写入生成的启动器")
	fmt.Println("  -show-console      运行时显示控制台窗口（默认: 隐藏）")
	fmt.Println("  -v                 详细模式：输出调试日志")

	fmt.Println("\n批量模式用法:")
	fmt.Println("  genexe -job build.yaml")

	fmt.Println("\n检查模式用法:")
	fmt.Println("  genexe -inspect <启动器路径> [-template <模板路径>]")

	fmt.Println("\n示例:")
	fmt.Println("  # 生成隐藏控制台的启动器并设置图标")
	fmt.Println("  genexe -target app.exe -command \"{EXE_DIR}\\pydist\\python.exe {EXE_DIR}\\src\\main.py\" -icon app.ico")
	fmt.Println("\n  # 批量生成")
	fmt.Println("  genexe -job build.yaml")
	fmt.Println("\n  # 解码已生成的启动器")
	fmt.Println("  genexe -inspect app.exe")
	fmt.Println()
}
