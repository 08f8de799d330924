package commands

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// buildStamp identifies the binary. Release builds set it through
// SetVersionInfo; other builds fall back to the embedded module info.
type buildStamp struct {
	Version string
	Commit  string
	Date    string
}

var stamp = buildStamp{Version: "dev", Commit: "none", Date: "unknown"}

// SetVersionInfo records the release stamp passed in by main.
func SetVersionInfo(version, commit, date string) {
	stamp = buildStamp{Version: version, Commit: commit, Date: date}
}

// withModuleInfo fills the fields a plain `go build` or `go install` leaves
// unset from the build info the toolchain embeds.
func (b buildStamp) withModuleInfo(read func() (*debug.BuildInfo, bool)) buildStamp {
	info, ok := read()
	if !ok {
		return b
	}
	if b.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && b.Commit == "none":
			b.Commit = s.Value
		case s.Key == "vcs.time" && b.Date == "unknown":
			b.Date = s.Value
		}
	}
	return b
}

func (b buildStamp) print(w io.Writer, short bool) error {
	if short {
		_, err := fmt.Fprintln(w, b.Version)
		return err
	}
	_, err := fmt.Fprintf(w, "lexdeploy %s\n  commit:   %s\n  built:    %s\n  go:       %s\n  platform: %s/%s\n",
		b.Version, b.Commit, b.Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return err
}

// Version returns the version command.
func Version() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the lexdeploy release and how it was built",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return stamp.withModuleInfo(debug.ReadBuildInfo).print(cmd.OutOrStdout(), short)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print the release version only")

	return cmd
}
