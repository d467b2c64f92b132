package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"al.essio.dev/pkg/shellescape"
	"github.com/babarot/tman/internal/index"
	"github.com/babarot/tman/internal/trash"
	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	dataDir string
	workDir string
	config  string
	stdout  bytes.Buffer
	answer  bool
	asked   int
}

func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

// newFixture writes a config keeping the trash in a temporary directory.
// extra is appended under the core section.
func newFixture(t *testing.T, extra string) *fixture {
	t.Helper()
	f := &fixture{dataDir: tempDir(t), workDir: tempDir(t)}
	f.config = filepath.Join(tempDir(t), "config.yaml")
	content := "core:\n" +
		"  trash_dir: " + f.dataDir + "\n" +
		"  delete:\n    verbose: true\n    allow_cross_device: true\n" +
		"  restore:\n    verbose: true\n    on_ambiguous: all\n" +
		extra +
		"ui:\n  use_unicode: false\n  use_colors: false\n  date_format: none\n"
	require.NoError(t, os.WriteFile(f.config, []byte(content), 0644))
	return f
}

func (f *fixture) run(t *testing.T, args ...string) error {
	t.Helper()
	f.stdout.Reset()
	c := New(Version{AppName: "tman", Version: "test"})
	c.stdout = &f.stdout
	c.confirm = func(string) bool {
		f.asked++
		return f.answer
	}
	return c.Run(append([]string{"--config", f.config}, args...))
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.workDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no action", []string{"a.txt"}},
		{"delete and list", []string{"-D", "-L", "a.txt"}},
		{"restore and empty", []string{"-R", "-E", "a.txt"}},
		{"debug and delete", []string{"--debug", "-D", "a.txt"}},
		{"delete without files", []string{"-D"}},
		{"delete with origin", []string{"-D", "-o", "/tmp", "a.txt"}},
		{"restore without name", []string{"-R"}},
		{"restore with two names", []string{"-R", "a.txt", "b.txt"}},
		{"restore with pattern", []string{"-R", "-p", "a", "a.txt"}},
		{"list with argument", []string{"-L", "a.txt"}},
		{"list with version", []string{"-L", "-v", "all"}},
		{"empty with argument", []string{"-E", "a.txt"}},
		{"empty with simple", []string{"-E", "-s"}},
		{"unknown flag", []string{"-X"}},
		{"bad debug choice", []string{"--debug=json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Version{AppName: "tman"})
			var out bytes.Buffer
			c.stdout = &out

			err := c.Run(tt.args)
			require.ErrorIs(t, err, ErrInvalidArguments)

			var argErr *ArgumentsError
			require.ErrorAs(t, err, &argErr)
			assert.NotEmpty(t, argErr.Reason)
		})
	}
}

func TestActionSelection(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"delete", []string{"-D", "a", "b"}},
		{"restore", []string{"-R", "a", "-o", "/x/a", "-v", "all"}},
		{"list", []string{"-L", "-p", "a.*", "-s"}},
		{"list glob", []string{"--list", "--pattern", "*.txt", "--glob"}},
		{"empty", []string{"-E", "-f"}},
		{"debug", []string{"--debug"}},
		{"debug live", []string{"--debug=live"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Version{AppName: "tman"})
			args, err := flags.NewParser(&c.option, flags.HelpFlag).ParseArgs(tt.args)
			require.NoError(t, err)
			_, err = c.action(args)
			assert.NoError(t, err)
		})
	}
}

func TestShowVersion(t *testing.T) {
	c := New(Version{AppName: "tman", Version: "v1.2.3", Revision: "abc"})
	var out bytes.Buffer
	c.stdout = &out

	require.NoError(t, c.Run([]string{"-V"}))
	assert.Contains(t, out.String(), "tman - safely manage your trash")
	assert.Contains(t, out.String(), "version: v1.2.3")
	assert.Contains(t, out.String(), "revision: abc")
}

func TestHelp(t *testing.T) {
	c := New(Version{AppName: "tman"})
	var out bytes.Buffer
	c.stdout = &out

	require.NoError(t, c.Run([]string{"--help"}))
	assert.Contains(t, out.String(), "--delete")
	assert.Contains(t, out.String(), "Restore Options")
}

func TestDeleteListRestore(t *testing.T) {
	f := newFixture(t, "")
	path := f.write(t, "a.txt", "hello")

	require.NoError(t, f.run(t, "-D", path))
	assert.Equal(t, "removed "+shellescape.Quote(path)+"\n", f.stdout.String())
	assert.NoFileExists(t, path)
	assert.FileExists(t, filepath.Join(f.dataDir, "index.json"))

	require.NoError(t, f.run(t, "-L"))
	assert.Contains(t, f.stdout.String(), "Showing results in trash.\n")
	assert.Contains(t, f.stdout.String(), "  * a.txt <- "+path+"\n")
	assert.Contains(t, f.stdout.String(), "    -> ")

	require.NoError(t, f.run(t, "-L", "-s"))
	assert.Equal(t, "a.txt\n", f.stdout.String())

	require.NoError(t, f.run(t, "-R", "a.txt"))
	assert.Equal(t, "restored a.txt to "+shellescape.Quote(path)+"\n", f.stdout.String())
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	require.NoError(t, f.run(t, "-L"))
	assert.Equal(t, "Showing results in trash.\nYour trash is empty!\n", f.stdout.String())
}

func TestDeleteDirectoryVerbose(t *testing.T) {
	f := newFixture(t, "")
	dir := filepath.Join(f.workDir, "dir")
	require.NoError(t, os.Mkdir(dir, 0755))

	require.NoError(t, f.run(t, "-D", dir))
	assert.Equal(t, "removed directory "+shellescape.Quote(dir)+"\n", f.stdout.String())
}

func TestListPattern(t *testing.T) {
	f := newFixture(t, "")
	a := f.write(t, "a.txt", "a")
	b := f.write(t, "b.log", "b")
	require.NoError(t, f.run(t, "-D", a, b))

	require.NoError(t, f.run(t, "-L", "-p", `\.log$`, "-s"))
	assert.Equal(t, "b.log\n", f.stdout.String())

	require.NoError(t, f.run(t, "-L", "-g", "-p", "*.txt", "-s"))
	assert.Equal(t, "a.txt\n", f.stdout.String())

	require.NoError(t, f.run(t, "-L", "-p", "zzz"))
	assert.Equal(t, "Showing results for 'zzz' in trash.\nNo results for 'zzz'.\n", f.stdout.String())

	err := f.run(t, "-L", "-p", "(")
	assert.True(t, trash.IsInvalidPattern(err))
}

func TestFailedDeleteKeepsEarlierWork(t *testing.T) {
	f := newFixture(t, "")
	a := f.write(t, "a.txt", "a")
	missing := filepath.Join(f.workDir, "missing.txt")

	err := f.run(t, "-D", a, missing)
	require.Error(t, err)
	assert.True(t, trash.IsMissingTarget(err))
	assert.Equal(t, "removed "+shellescape.Quote(a)+"\n", f.stdout.String())

	idx, err := index.Load(filepath.Join(f.dataDir, "index.json"))
	require.NoError(t, err)
	require.Equal(t, 1, idx.Len())
	assert.Equal(t, "a.txt", idx.Entries()[0].Key.Name)
}

func TestRestoreMissing(t *testing.T) {
	f := newFixture(t, "")
	err := f.run(t, "-R", "nothing.txt")
	assert.ErrorIs(t, err, index.ErrMissingTargetPredicate)
}

func TestRestoreVersions(t *testing.T) {
	f := newFixture(t, "")
	path := f.write(t, "a.txt", "one")
	require.NoError(t, f.run(t, "-D", path))
	f.write(t, "a.txt", "two")
	require.NoError(t, f.run(t, "-D", path))

	require.NoError(t, f.run(t, "-R", "a.txt", "-o", path, "-v", "all"))
	matches, err := filepath.Glob(path + "_*")
	require.NoError(t, err)
	assert.Len(t, matches, 2)
	assert.NoFileExists(t, path)
}

func TestEmpty(t *testing.T) {
	f := newFixture(t, "  empty:\n    confirm: true\n")
	require.NoError(t, f.run(t, "-D", f.write(t, "a.txt", "a")))

	f.answer = false
	require.NoError(t, f.run(t, "-E"))
	assert.Equal(t, 1, f.asked)
	require.NoError(t, f.run(t, "-L", "-s"))
	assert.Equal(t, "a.txt\n", f.stdout.String())

	require.NoError(t, f.run(t, "-E", "-f"))
	assert.Equal(t, 1, f.asked)
	require.NoError(t, f.run(t, "-L", "-s"))
	assert.Empty(t, f.stdout.String())

	entries, err := os.ReadDir(filepath.Join(f.dataDir, "data"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDebugShowsLog(t *testing.T) {
	f := newFixture(t, "")
	require.NoError(t, f.run(t, "-D", f.write(t, "a.txt", "a")))

	require.NoError(t, f.run(t, "--debug"))
	assert.Contains(t, f.stdout.String(), "moved to trash")
}

func TestInvalidIndex(t *testing.T) {
	f := newFixture(t, "")
	require.NoError(t, os.WriteFile(filepath.Join(f.dataDir, "index.json"), []byte("{\n,"), 0600))

	err := f.run(t, "-L")
	assert.True(t, index.IsInvalidIndex(err))
}
