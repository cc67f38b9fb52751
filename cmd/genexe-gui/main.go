// Package main provides the GenExe GUI application.
package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ZacharyZcR/GenExe/internal/icon"
	"github.com/ZacharyZcR/GenExe/internal/stub"
)

func main() {
	myApp := app.New()
	myWindow := myApp.NewWindow("GenExe - Windows启动器生成工具")
	myWindow.Resize(fyne.NewSize(700, 500))

	// Template path
	templateEntry := widget.NewEntry()
	templateEntry.SetPlaceHolder("模板路径（留空使用默认位置）...")

	templateButton := widget.NewButton("选择模板", func() {
		dialog.ShowFileOpen(func(file fyne.URIReadCloser, err error) {
			if err != nil || file == nil {
				return
			}
			defer func() { _ = file.Close() }()
			templateEntry.SetText(file.URI().Path())
		}, myWindow)
	})

	// Target path
	targetEntry := widget.NewEntry()
	targetEntry.SetPlaceHolder("生成的启动器路径，例如: C:\\build\\app.exe")

	// Command
	commandEntry := widget.NewEntry()
	commandEntry.SetPlaceHolder("启动器要执行的命令（最长259字符）...")

	// Icon path
	iconEntry := widget.NewEntry()
	iconEntry.SetPlaceHolder("图标文件路径（.ico，可选）...")

	iconButton := widget.NewButton("选择图标", func() {
		dialog.ShowFileOpen(func(file fyne.URIReadCloser, err error) {
			if err != nil || file == nil {
				return
			}
			defer func() { _ = file.Close() }()
			iconEntry.SetText(file.URI().Path())
		}, myWindow)
	})

	consoleCheck := widget.NewCheck("运行时显示控制台窗口", nil)

	// Status label
	statusLabel := widget.NewLabel("就绪")

	// Generate button
	generateButton := widget.NewButton("生成启动器", func() {
		if targetEntry.Text == "" || commandEntry.Text == "" {
			dialog.ShowError(fmt.Errorf("请填写目标路径和命令"), myWindow)
			return
		}

		statusLabel.SetText("正在生成...")
		go func() {
			err := generate(templateEntry.Text, targetEntry.Text, commandEntry.Text,
				iconEntry.Text, consoleCheck.Checked)
			if err != nil {
				dialog.ShowError(err, myWindow)
				statusLabel.SetText("生成失败")
				return
			}
			dialog.ShowInformation("成功", fmt.Sprintf("成功生成启动器: %s", targetEntry.Text), myWindow)
			statusLabel.SetText("生成完成")
		}()
	})

	// Inspect button
	inspectButton := widget.NewButton("检查启动器", func() {
		if targetEntry.Text == "" {
			dialog.ShowError(fmt.Errorf("请先填写启动器路径"), myWindow)
			return
		}

		statusLabel.SetText("正在检查...")
		go func() {
			result, err := inspect(templateEntry.Text, targetEntry.Text)
			if err != nil {
				dialog.ShowError(err, myWindow)
				statusLabel.SetText("检查失败")
				return
			}
			dialog.ShowInformation("检查结果", result, myWindow)
			statusLabel.SetText("检查完成")
		}()
	})

	// Layout
	templateBox := container.NewBorder(nil, nil, nil, templateButton, templateEntry)
	iconBox := container.NewBorder(nil, nil, nil, iconButton, iconEntry)

	content := container.NewVBox(
		widget.NewLabel("模板:"),
		templateBox,
		widget.NewLabel("目标路径:"),
		targetEntry,
		widget.NewLabel("命令:"),
		commandEntry,
		widget.NewLabel("图标:"),
		iconBox,
		consoleCheck,
		widget.NewSeparator(),
		container.NewGridWithColumns(2, generateButton, inspectButton),
		statusLabel,
	)

	myWindow.SetContent(container.NewPadded(content))
	myWindow.ShowAndRun()
}

func generate(templatePath, target, command, iconFile string, showConsole bool) error {
	gen, err := stub.NewGenerator(templatePath)
	if err != nil {
		return err
	}
	return gen.Generate(target, command, iconFile, showConsole)
}

func inspect(templatePath, exePath string) (string, error) {
	gen, err := stub.NewGenerator(templatePath)
	if err != nil {
		return "", err
	}

	command, showConsole, err := stub.InspectCommand(gen.TemplatePath(), exePath)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "命令: %s\n", command)
	if showConsole {
		sb.WriteString("控制台: 显示\n")
	} else {
		sb.WriteString("控制台: 隐藏\n")
	}

	if info, err := icon.Inspect(exePath); err == nil {
		fmt.Fprintf(&sb, "图标组: %d\n图标图像: %d\n", info.GroupCount, info.IconCount)
	}

	return sb.String(), nil
}
