package extension

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabhost/tabhost/engine/tab"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadManifest(t *testing.T) {
	ctx := context.Background()

	t.Run("Should load a YAML manifest", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "extension.yaml", `
publisher: contoso
name: sql-tools
version: 1.2.0
contributes:
  dashboard:
    tab:
      title: Tasks
      container:
        widgets-container: []
`)
		manifest, err := LoadManifest(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "contoso.sql-tools", manifest.Identity().ID())
		assert.Equal(t, "1.2.0", manifest.Identity().Version)
		assert.NotNil(t, manifest.Contributes.Dashboard.Tab)
	})

	t.Run("Should load a JSON manifest", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "extension.json", `{
  "publisher": "fabrikam",
  "name": "pg-tools",
  "contributes": {"dashboard": {"tab": [{"title": "Stats", "container": {"grid-container": []}}]}}
}`)
		manifest, err := LoadManifest(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "fabrikam.pg-tools", manifest.Identity().ID())
	})

	t.Run("Should reject a manifest without a publisher", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "extension.yaml", "name: anonymous\n")
		_, err := LoadManifest(ctx, path)
		assert.Error(t, err)
	})

	t.Run("Should reject a publisher outside the identifier charset", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "extension.yaml", "publisher: \"bad publisher!\"\nname: sql-tools\n")
		_, err := LoadManifest(ctx, path)
		assert.Error(t, err)
	})

	t.Run("Should accept dotted and dashed identifiers", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "extension.yaml", "publisher: contoso.labs\nname: sql_tools-v2\n")
		manifest, err := LoadManifest(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "contoso.labs.sql_tools-v2", manifest.Identity().ID())
	})

	t.Run("Should reject a scalar dashboard.tab section", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "extension.yaml", `
publisher: contoso
name: sql-tools
contributes:
  dashboard:
    tab: 42
`)
		_, err := LoadManifest(ctx, path)
		assert.Error(t, err)
	})

	t.Run("Should reject an unparseable manifest", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "extension.yaml", "publisher: [unclosed\n")
		_, err := LoadManifest(ctx, path)
		assert.Error(t, err)
	})

	t.Run("Should fail on a missing file", func(t *testing.T) {
		_, err := LoadManifest(ctx, filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestDecodeContributions(t *testing.T) {
	t.Run("Should wrap a single descriptor into a batch of one", func(t *testing.T) {
		batch, errs := DecodeContributions(map[string]any{
			"title":     "Tasks",
			"container": map[string]any{"widgets-container": []any{}},
		})
		require.Empty(t, errs)
		require.Len(t, batch, 1)
		assert.Equal(t, "Tasks", batch[0].Title)
	})

	t.Run("Should decode a list of descriptors", func(t *testing.T) {
		batch, errs := DecodeContributions([]any{
			map[string]any{"title": "A", "container": map[string]any{"widgets-container": []any{}}},
			map[string]any{"title": "B", "container": map[string]any{"grid-container": []any{}}},
		})
		require.Empty(t, errs)
		require.Len(t, batch, 2)
		assert.Equal(t, "B", batch[1].Title)
	})

	t.Run("Should turn a lone provider string into a list", func(t *testing.T) {
		batch, errs := DecodeContributions(map[string]any{
			"title":     "Tasks",
			"provider":  "MSSQL",
			"container": map[string]any{"widgets-container": []any{}},
		})
		require.Empty(t, errs)
		require.Len(t, batch, 1)
		assert.Equal(t, tab.ProviderList{"MSSQL"}, batch[0].Provider)
	})

	t.Run("Should keep a provider list as-is", func(t *testing.T) {
		batch, _ := DecodeContributions(map[string]any{
			"title":     "Tasks",
			"provider":  []any{"MSSQL", "PGSQL"},
			"container": map[string]any{"widgets-container": []any{}},
		})
		require.Len(t, batch, 1)
		assert.Equal(t, tab.ProviderList{"MSSQL", "PGSQL"}, batch[0].Provider)
	})

	t.Run("Should keep untyped fields raw for the pipeline", func(t *testing.T) {
		batch, _ := DecodeContributions(map[string]any{
			"title":      "Tasks",
			"alwaysShow": "yes",
			"icon":       map[string]any{"light": "a.svg", "dark": "b.svg"},
			"container":  map[string]any{"widgets-container": []any{}},
		})
		require.Len(t, batch, 1)
		assert.Equal(t, "yes", batch[0].AlwaysShow)
		assert.NotNil(t, batch[0].Icon)
	})

	t.Run("Should drop only the undecodable sibling", func(t *testing.T) {
		batch, errs := DecodeContributions([]any{
			map[string]any{"title": "Good", "container": map[string]any{"widgets-container": []any{}}},
			map[string]any{"title": []any{"not", "a", "string"}},
		})
		assert.Len(t, errs, 1)
		require.Len(t, batch, 1)
		assert.Equal(t, "Good", batch[0].Title)
	})

	t.Run("Should return nothing for a nil section", func(t *testing.T) {
		batch, errs := DecodeContributions(nil)
		assert.Nil(t, batch)
		assert.Nil(t, errs)
	})
}
