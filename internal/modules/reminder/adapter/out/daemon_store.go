package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// FileDaemonStore holds the daemon's pid file under the data dir so
// `daemon start|stop|status` invocations can find the running process.
type FileDaemonStore struct {
	pidPath string
	logPath string
}

func NewFileDaemonStore(dataDir string) *FileDaemonStore {
	base := filepath.Join(dataDir, "daemon")
	return &FileDaemonStore{
		pidPath: filepath.Join(base, "daemon.pid"),
		logPath: filepath.Join(base, "daemon.log"),
	}
}

func (s *FileDaemonStore) WritePID(_ context.Context, pid int) error {
	if err := os.MkdirAll(filepath.Dir(s.pidPath), 0o755); err != nil {
		return fmt.Errorf("create daemon dir: %w", err)
	}
	return os.WriteFile(s.pidPath, []byte(strconv.Itoa(pid)), 0o644)
}

func (s *FileDaemonStore) ReadPID(_ context.Context) (int, error) {
	raw, err := os.ReadFile(s.pidPath)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("decode daemon pid: %w", err)
	}
	return pid, nil
}

func (s *FileDaemonStore) ClearPID(_ context.Context) error {
	if err := os.Remove(s.pidPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove daemon pid: %w", err)
	}
	return nil
}

// Running reports whether the recorded pid is alive.
func (s *FileDaemonStore) Running(ctx context.Context) (int, bool) {
	pid, err := s.ReadPID(ctx)
	if err != nil {
		return 0, false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return 0, false
	}
	if err := process.Signal(syscall.Signal(0)); err != nil {
		return 0, false
	}
	return pid, true
}

// Stop signals the recorded daemon process with SIGTERM.
func (s *FileDaemonStore) Stop(ctx context.Context) error {
	pid, alive := s.Running(ctx)
	if !alive {
		return s.ClearPID(ctx)
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal daemon %d: %w", pid, err)
	}
	return nil
}

func (s *FileDaemonStore) LogPath() string {
	return s.logPath
}
