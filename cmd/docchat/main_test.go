package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestContext(t *testing.T, args map[string]string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for name, value := range args {
		set.String(name, value, "")
	}
	return cli.NewContext(nil, set, nil)
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{"debug level", "debug", false},
		{"info level", "info", false},
		{"warn level", "warn", false},
		{"error level", "error", false},
		{"uppercase is normalized", "DEBUG", false},
		{"unknown level", "verbose", true},
		{"empty level", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t, map[string]string{"log-level": tt.level})
			err := setupLogger(ctx)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIngestCommand_RequiresFiles(t *testing.T) {
	app := &cli.App{
		Name: "docchat",
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Required: true},
				},
			},
		},
	}

	t.Run("user flag is required", func(t *testing.T) {
		err := app.Run([]string{"docchat", "ingest", "some.txt"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "user")
	})

	t.Run("at least one file is required", func(t *testing.T) {
		err := app.Run([]string{"docchat", "ingest", "--user", "alice"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file")
	})
}
