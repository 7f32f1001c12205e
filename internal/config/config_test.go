package config

import (
    "os"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
    cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
    // 指定了不存在的文件属于配置错误
    assert.Error(t, err)

    cfg, err = Load("")
    require.NoError(t, err)
    assert.Equal(t, ":8080", cfg.Server.Addr)
    assert.Equal(t, "sqlite", cfg.Database.Driver)
    assert.Equal(t, 50.0, cfg.RateLimit.RPS)
    assert.True(t, cfg.Log.JSON)
}

func TestLoadFromFile(t *testing.T) {
    dir := t.TempDir()
    path := filepath.Join(dir, "config.yaml")
    content := []byte("server:\n  addr: \":9090\"\ndatabase:\n  driver: postgres\n  dsn: \"host=db\"\n")
    require.NoError(t, os.WriteFile(path, content, 0o600))

    cfg, err := Load(path)
    require.NoError(t, err)
    assert.Equal(t, ":9090", cfg.Server.Addr)
    assert.Equal(t, "postgres", cfg.Database.Driver)
    assert.Equal(t, "host=db", cfg.Database.DSN)
    // 未覆盖的项保留默认值
    assert.Equal(t, "info", cfg.Log.Level)
}

func TestEnvOverride(t *testing.T) {
    t.Setenv("SHOP_SERVER_ADDR", ":7070")

    cfg, err := Load("")
    require.NoError(t, err)
    assert.Equal(t, ":7070", cfg.Server.Addr)
}
