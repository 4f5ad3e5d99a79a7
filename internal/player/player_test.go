package player

import (
	"context"
	"errors"
	"strings"
	"testing"

	"subflow/internal/config"
	"subflow/internal/logger"
)

type fakeMpv struct {
	args []string
	err  error
}

func (f *fakeMpv) Execute(_ context.Context, name string, args ...string) (string, error) {
	f.args = append([]string{name}, args...)
	return "", f.err
}

func (f *fakeMpv) ExecuteInDir(ctx context.Context, _ string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func testCfg() config.PlayerConfig {
	return config.PlayerConfig{BinaryPath: "mpv", SubFontSize: 40, SecondarySubFontSize: 32}
}

func TestPlayPrefersBilingual(t *testing.T) {
	exec := &fakeMpv{}
	p := New(exec, logger.NewNop(), testCfg())

	err := p.Play(context.Background(), "video.mp4", "transcription.fr.vtt", "bilingual.fr-en.vtt")
	if err != nil {
		t.Fatalf("Play() error: %v", err)
	}

	joined := strings.Join(exec.args, " ")
	if !strings.Contains(joined, "--sub-file=bilingual.fr-en.vtt") {
		t.Errorf("bilingual subs not selected: %s", joined)
	}
	if !strings.Contains(joined, "--sub-font-size=32") {
		t.Errorf("bilingual font size not applied: %s", joined)
	}
}

func TestPlayPrimaryOnly(t *testing.T) {
	exec := &fakeMpv{}
	p := New(exec, logger.NewNop(), testCfg())

	if err := p.Play(context.Background(), "video.mp4", "transcription.fr.vtt", ""); err != nil {
		t.Fatal(err)
	}
	joined := strings.Join(exec.args, " ")
	if !strings.Contains(joined, "--sub-file=transcription.fr.vtt") || !strings.Contains(joined, "--sub-font-size=40") {
		t.Errorf("primary subs not configured: %s", joined)
	}
}

func TestPlayNoSubs(t *testing.T) {
	exec := &fakeMpv{}
	p := New(exec, logger.NewNop(), testCfg())

	if err := p.Play(context.Background(), "video.mp4", "", ""); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(strings.Join(exec.args, " "), "--sub-file") {
		t.Errorf("sub flags passed without subtitles: %v", exec.args)
	}
}

func TestAvailable(t *testing.T) {
	p := New(&fakeMpv{err: errors.New("not found")}, logger.NewNop(), testCfg())
	if p.Available(context.Background()) {
		t.Error("Available() = true with failing binary")
	}
}
