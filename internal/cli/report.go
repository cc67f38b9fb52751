// Package cli provides command-line interface utilities.
package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/ZacharyZcR/GenExe/internal/icon"
)

// Result captures the outcome of one launcher build for reporting.
type Result struct {
	Target      string
	Command     string
	Truncated   bool
	ShowConsole bool
	IconFile    string
	IconImages  int
}

// Reporter formats and prints launcher build results.
type Reporter struct {
	results []Result
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Add records one build result.
func (r *Reporter) Add(result Result) {
	r.results = append(r.results, result)
}

// Print outputs the complete build report.
func (r *Reporter) Print() {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Println("\n╔════════════════════════════════════════╗")
	cyan.Println("║          GenExe 生成报告               ║")
	cyan.Println("╚════════════════════════════════════════╝")

	for i, result := range r.results {
		r.printResult(i+1, result)
	}
	fmt.Println()
}

func (r *Reporter) printResult(index int, result Result) {
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen)

	yellow.Printf("\n【构建 %d】\n", index)
	fmt.Printf("  %-12s: %s\n", "目标文件", result.Target)

	fmt.Printf("  %-12s: %s", "命令", result.Command)
	if result.Truncated {
		red := color.New(color.FgRed, color.Bold)
		red.Print("  (超长，已截断)")
	}
	fmt.Println()

	consoleText := "隐藏"
	if result.ShowConsole {
		consoleText = "显示"
	}
	fmt.Printf("  %-12s: %s\n", "控制台", consoleText)

	if result.IconFile != "" {
		fmt.Printf("  %-12s: %s (%d 张图像)\n", "图标", result.IconFile, result.IconImages)
	} else {
		gray := color.New(color.FgHiBlack)
		fmt.Printf("  %-12s: ", "图标")
		gray.Print("未设置")
		fmt.Println()
	}

	green.Println("  ✓ 生成完成")
}

// PrintInspect outputs the decoded state of a generated launcher.
func PrintInspect(exePath, command string, showConsole bool, info *icon.Info) {
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)

	cyan.Println("\n╔════════════════════════════════════════╗")
	cyan.Println("║          GenExe 检查报告               ║")
	cyan.Println("╚════════════════════════════════════════╝")

	yellow.Println("\n【启动器状态】")
	fmt.Printf("  %-12s: %s\n", "文件路径", exePath)
	fmt.Printf("  %-12s: %s\n", "命令", command)

	consoleText := "隐藏"
	if showConsole {
		consoleText = "显示"
	}
	fmt.Printf("  %-12s: %s\n", "控制台", consoleText)

	if info != nil {
		yellow.Println("\n【图标资源】")
		fmt.Printf("  %-12s: %d\n", "图标组", info.GroupCount)
		fmt.Printf("  %-12s: %d\n", "图标图像", info.IconCount)
		if len(info.IconIDs) > 0 {
			fmt.Printf("  %-12s: %v\n", "图像ID", info.IconIDs)
		}
	}
	fmt.Println()
}
