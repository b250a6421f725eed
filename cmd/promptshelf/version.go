package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/version"
)

// VersionInfo is printed by the version command.
type VersionInfo struct {
	Release    string `json:"release"`
	Go         string `json:"go"`
	Commit     string `json:"commit,omitempty"`
	CommitDate string `json:"commitDate,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.Output(VersionInfo{
			Release:    version.GitRelease,
			Go:         version.GoInfo,
			Commit:     version.GitCommit,
			CommitDate: version.GitCommitDate,
		})
	},
}
