package main

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the zls version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(bannerStyle.Render("zls") + " " + version)
			fmt.Println(labelStyle.Render("go:      ") + runtime.Version())
			fmt.Println(labelStyle.Render("platform:") + " " + runtime.GOOS + "/" + runtime.GOARCH)
			return nil
		},
	}
}
