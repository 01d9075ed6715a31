package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const dataset = `# id,author,published,site,title
1,anon,2016-10-26,example.com,Cats Are Great
2,anon,2016-10-27,example.com,"cats, are cute"
3,anon,2016-10-28,example.com,dogs are loyal
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake.csv")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o644))
	return path
}

func runAnalyze(t *testing.T, stdin string, args ...string) (int, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String()
}

func TestInteractive(t *testing.T) {
	path := writeDataset(t)
	code, out := runAnalyze(t, path+"\n1\n")
	require.Equal(t, 0, code)
	require.Equal(t, "File: N: are : 3\ncats : 2\n", out)
}

func TestFlags(t *testing.T) {
	code, out := runAnalyze(t, "", "-file", writeDataset(t), "-n", "0")
	require.Equal(t, 0, code)
	require.Equal(t, "are : 3\n", out)
}

func TestRankOutOfRange(t *testing.T) {
	code, out := runAnalyze(t, "", "-file", writeDataset(t), "-n", "100")
	require.Equal(t, 1, code)
	require.Equal(t, "ERROR: N must be between 0 and 5\n", out)
}

func TestUnreadableRank(t *testing.T) {
	code, out := runAnalyze(t, "many\n", "-file", writeDataset(t))
	require.Equal(t, 1, code)
	require.Equal(t, "N: ERROR: Could not read N\n", out)
}

func TestMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")
	code, out := runAnalyze(t, path+"\n")
	require.Equal(t, 1, code)
	require.Equal(t, "File: ERROR: Could not open file "+path+"\n", out)
}

func TestBadFlag(t *testing.T) {
	code, _ := runAnalyze(t, "", "-bogus")
	require.Equal(t, 2, code)
}
