package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/San2021331091/Smart-Cart-Backend/internal/domain"
)

func run(t *testing.T, args ...string) (string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.ExecuteContext(t.Context()))
	return out.String(), errOut.String()
}

func TestJSONCommand_Stdout(t *testing.T) {
	out, logs := run(t, "json", "--out", "-", "--count", "3")

	var products []domain.Product
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	require.Len(t, products, 3)
	assert.Equal(t, "1", products[0].ID)
	assert.Contains(t, logs, `"msg":"catalog written"`)
}

func TestJSONCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")

	run(t, "json", "-o", path, "-n", "5", "--seed", "7")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(data, &products))
	assert.Len(t, products, 5)
}

func TestJSONCommand_SameSeedSameCatalog(t *testing.T) {
	first, _ := run(t, "json", "--out", "-", "--count", "10", "--seed", "99")
	second, _ := run(t, "json", "--out", "-", "--count", "10", "--seed", "99")

	assert.Equal(t, first, second)
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "json")
	assert.Contains(t, names, "postgres")
}
