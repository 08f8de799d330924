package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	cmd := Completion()

	require.NotNil(t, cmd)
	assert.Equal(t, "completion <bash|fish|powershell|zsh>", cmd.Use)
	assert.Equal(t, []string{"bash", "fish", "powershell", "zsh"}, cmd.ValidArgs)
	assert.True(t, cmd.DisableFlagsInUseLine)
	assert.NotNil(t, cmd.Flags().Lookup("no-descriptions"))
}

func TestCompletion_Shells(t *testing.T) {
	tests := map[string]string{
		"bash":       "bash completion V2 for lexdeploy",
		"zsh":        "#compdef lexdeploy",
		"fish":       "complete -c lexdeploy",
		"powershell": "Register-ArgumentCompleter",
	}

	for shell, marker := range tests {
		t.Run(shell, func(t *testing.T) {
			var out bytes.Buffer
			root := Root()
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})

			require.NoError(t, root.Execute())
			assert.Contains(t, out.String(), marker)
		})
	}
}

func TestCompletion_NoDescriptions(t *testing.T) {
	var out bytes.Buffer
	root := Root()
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "zsh", "--no-descriptions"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "#compdef lexdeploy")
}

func TestCompletion_InvalidArgs(t *testing.T) {
	tests := map[string][]string{
		"unknown shell": {"completion", "tcsh"},
		"no shell":      {"completion"},
		"two shells":    {"completion", "bash", "zsh"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			root := Root()
			root.SetArgs(args)
			assert.Error(t, root.Execute())
		})
	}
}
