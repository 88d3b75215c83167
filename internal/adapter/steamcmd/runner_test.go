package steamcmd

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/vertextoedge/steamcmd-web/internal/domain"
	"github.com/vertextoedge/steamcmd-web/internal/port"
	"go.uber.org/zap"
)

// fakeClient installs a shell script in place of steamcmd.sh.
func fakeClient(t *testing.T, script string) *Client {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake steamcmd script requires a POSIX shell")
	}

	dir := t.TempDir()
	if err := os.WriteFile(ExePath(dir), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	return New(&Config{Dir: dir, LoginTimeout: 5 * time.Second}, zap.NewNop())
}

func TestRunEmitsLinesAndProgress(t *testing.T) {
	client := fakeClient(t, `#!/bin/sh
echo "Logging in user 'anonymous' to Steam Public...OK"
echo " Update state (0x61) downloading, progress: 12.50 (500/4000)"
echo "Success! App '570' fully installed."
`)

	events := make(chan port.Event, 16)
	installDir := t.TempDir() + "/570"

	err := client.Run(context.Background(), "570", port.Credentials{Anonymous: true}, installDir, events)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	var lines int
	var samples []*domain.Progress
	for ev := range events {
		if ev.Sample != nil {
			samples = append(samples, ev.Sample)
			continue
		}
		lines++
	}

	if lines != 3 {
		t.Errorf("raw lines = %d, want 3", lines)
	}
	if len(samples) != 1 {
		t.Fatalf("samples = %d, want 1", len(samples))
	}
	if samples[0].Downloaded != 500 || samples[0].Total != 4000 {
		t.Errorf("sample = %+v, want 500/4000", samples[0])
	}

	if _, err := os.Stat(installDir); err != nil {
		t.Errorf("install dir was not created: %v", err)
	}
}

func TestRunReportsNonZeroExit(t *testing.T) {
	client := fakeClient(t, `#!/bin/sh
echo "Update state (0x61) downloading, progress: 1.0 (40/4000)"
exit 8
`)

	events := make(chan port.Event, 16)
	err := client.Run(context.Background(), "570", port.Credentials{Anonymous: true}, t.TempDir()+"/570", events)

	if !errors.Is(err, domain.ErrDownloadFailed) {
		t.Errorf("Run() error = %v, want ErrDownloadFailed", err)
	}

	// Channel must still be closed so consumers terminate
	for range events {
	}
}

func TestRunMissingTool(t *testing.T) {
	client := New(&Config{Dir: t.TempDir()}, zap.NewNop())

	events := make(chan port.Event, 1)
	err := client.Run(context.Background(), "570", port.Credentials{Anonymous: true}, t.TempDir(), events)

	if !errors.Is(err, domain.ErrSteamCMDMissing) {
		t.Errorf("Run() error = %v, want ErrSteamCMDMissing", err)
	}
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr error
	}{
		{
			name: "accepted login",
			script: `#!/bin/sh
echo "Logging in user 'user' to Steam Public...OK"
`,
			wantErr: nil,
		},
		{
			name: "rejected login",
			script: `#!/bin/sh
echo "FAILED (Invalid Password)" 1>&2
exit 5
`,
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name: "tool crash without failure marker",
			script: `#!/bin/sh
exit 1
`,
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := fakeClient(t, tt.script)
			err := client.ValidateLogin(context.Background(), "user", "pass")
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateLogin() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateLogin() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateLoginMissingTool(t *testing.T) {
	client := New(&Config{Dir: t.TempDir()}, zap.NewNop())

	err := client.ValidateLogin(context.Background(), "user", "pass")
	if !errors.Is(err, domain.ErrSteamCMDMissing) {
		t.Errorf("ValidateLogin() error = %v, want ErrSteamCMDMissing", err)
	}
}
