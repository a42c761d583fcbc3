package logger

import (
    "os"
    "path/filepath"
    "strings"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func readToday(t *testing.T, dir string) string {
    t.Helper()
    name := "log-" + time.Now().UTC().Format("2006-01-02") + ".txt"
    b, err := os.ReadFile(filepath.Join(dir, name))
    require.NoError(t, err)
    return string(b)
}

func TestLogWritesTabSeparatedLine(t *testing.T) {
    dir := t.TempDir()
    l, err := NewFileLogger(dir)
    require.NoError(t, err)

    l.Log("User #1 logged in")

    content := readToday(t, dir)
    lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
    require.Len(t, lines, 1)

    parts := strings.SplitN(lines[0], "\t", 2)
    require.Len(t, parts, 2)
    assert.Equal(t, "User #1 logged in", parts[1])

    _, err = time.Parse("2006-01-02 15:04:05.000Z", parts[0])
    assert.NoError(t, err)
}

func TestLogfFormats(t *testing.T) {
    dir := t.TempDir()
    l, err := NewFileLogger(dir)
    require.NoError(t, err)

    l.Logf("Offer #%d accepted", 42)
    assert.Contains(t, readToday(t, dir), "Offer #42 accepted")
}

func TestConcurrentWritesStayWholeLines(t *testing.T) {
    dir := t.TempDir()
    l, err := NewFileLogger(dir)
    require.NoError(t, err)

    var wg sync.WaitGroup
    for i := 0; i < 50; i++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            l.Log("event")
        }()
    }
    wg.Wait()

    lines := strings.Split(strings.TrimRight(readToday(t, dir), "\n"), "\n")
    assert.Len(t, lines, 50)
    for _, line := range lines {
        assert.True(t, strings.HasSuffix(line, "\tevent"), "line %q is interleaved", line)
    }
}

func TestNewFileLoggerCreatesDir(t *testing.T) {
    dir := filepath.Join(t.TempDir(), "nested", "logs")
    _, err := NewFileLogger(dir)
    require.NoError(t, err)

    info, err := os.Stat(dir)
    require.NoError(t, err)
    assert.True(t, info.IsDir())
}
