package descriptor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/airlift-cli/airlift/internal/project"
)

func TestSubdomainTokenShape(t *testing.T) {
	pattern := regexp.MustCompile(`^app-[0-9a-f]{8}-[1-9][0-9]{2}$`)

	token, err := SubdomainToken()
	require.NoError(t, err)
	require.Regexp(t, pattern, token)

	other, err := SubdomainToken()
	require.NoError(t, err)
	require.NotEqual(t, token, other, "consecutive tokens should differ")
}

func TestNewDescriptorShapes(t *testing.T) {
	tests := []struct {
		projectType project.Type
		wantUse     string
		wantSrc     string
		wantDistDir bool
	}{
		{project.TypeStatic, "@vercel/static", "**/*", false},
		{project.TypeNode, "@vercel/node", "package.json", false},
		{project.TypeReact, "@vercel/static-build", "package.json", true},
		{project.TypeVite, "@vercel/static-build", "package.json", true},
		{project.TypeNext, "@vercel/next", "package.json", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.projectType), func(t *testing.T) {
			desc, err := New(tt.projectType)
			require.NoError(t, err)

			require.Equal(t, 2, desc.Version)
			require.True(t, desc.Public)
			require.Len(t, desc.Alias, 1)
			require.Regexp(t, `\.vercel\.app$`, desc.Alias[0])

			require.Len(t, desc.Builds, 1)
			require.Equal(t, tt.wantUse, desc.Builds[0].Use)
			require.Equal(t, tt.wantSrc, desc.Builds[0].Src)

			if tt.wantDistDir {
				require.Equal(t, "dist", desc.Builds[0].Config["distDir"])
			} else {
				require.Empty(t, desc.Builds[0].Config)
			}

			require.Equal(t, []Route{{Src: "/(.*)", Dest: "/$1"}}, desc.Routes)
		})
	}
}

func TestDescriptorWrite(t *testing.T) {
	dir := t.TempDir()

	desc, err := New(project.TypeStatic)
	require.NoError(t, err)
	require.NoError(t, desc.Write(dir))

	raw, err := os.ReadFile(filepath.Join(dir, "vercel.json"))
	require.NoError(t, err)

	var decoded Descriptor
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, desc, decoded)
}
