package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Jowenthebui/PO-Tracking/internal/config"
	"github.com/Jowenthebui/PO-Tracking/internal/container"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/checklist"
)

type cliEnv struct {
	dir        string
	configPath string
	dbPath     string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	env := &cliEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.yaml"),
		dbPath:     filepath.Join(dir, "data", "po.db"),
	}
	yaml := fmt.Sprintf(`
database:
  path: %s
storage:
  upload_dir: %s
reminder:
  enabled: false
logger:
  level: error
  output_path: %s
`, env.dbPath, filepath.Join(dir, "uploads"), filepath.Join(dir, "logs", "cli.log"))
	require.NoError(t, os.WriteFile(env.configPath, []byte(yaml), 0644))
	return env
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", e.configPath, "--env-file", filepath.Join(e.dir, "none.env")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseCmd(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "parse", "2026-01-IT-045_Capex_New_Laptop")
	require.NoError(t, err)

	var info checklist.FolderInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, checklist.FolderInfo{CapexOpex: "CAPEX", ITRefNo: "IT-045", Title: "New Laptop"}, info)

	_, err = env.run(t, "parse")
	assert.Error(t, err)
}

func TestMigrateCmd(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "applied 2 migration(s)")

	out, err = env.run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "applied 0 migration(s)")

	out, err = env.run(t, "migrate", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "001 initial_schema")
	assert.Contains(t, out, "002 stage_board")
	assert.NotContains(t, out, "pending")
}

func TestExportCmd(t *testing.T) {
	env := newCLIEnv(t)

	cfg, err := config.Load(env.configPath)
	require.NoError(t, err)
	c, err := container.NewContainer(cfg.ToContainerConfig(), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))

	ctx := context.Background()
	month, err := c.Services().Month.Create(ctx, "2026-01", "Jan 2026")
	require.NoError(t, err)
	_, err = c.Services().PO.Create(ctx, month.ID, "2026-01-IT-045_Capex_New_Laptop")
	require.NoError(t, err)
	require.NoError(t, c.Close())

	outFile := filepath.Join(env.dir, "jan.xlsx")
	out, err := env.run(t, "export", "--month", "2026-01", "--out", outFile)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+outFile)

	f, err := excelize.OpenFile(outFile)
	require.NoError(t, err)
	defer f.Close()
	folder, err := f.GetCellValue("Masterlist", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-IT-045_Capex_New_Laptop", folder)

	_, err = env.run(t, "export", "--month", "2030-12")
	assert.Error(t, err)

	_, err = env.run(t, "export")
	assert.Error(t, err)
}
