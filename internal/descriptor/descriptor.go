package descriptor

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/airlift-cli/airlift/internal/project"
)

const platformDomain = "vercel.app"

// Build is a single vercel.json build rule.
type Build struct {
	Src    string            `json:"src"`
	Use    string            `json:"use"`
	Config map[string]string `json:"config,omitempty"`
}

// Route forwards request paths; the descriptor always carries one
// catch-all rule mapping every path to itself.
type Route struct {
	Src  string `json:"src"`
	Dest string `json:"dest"`
}

// Descriptor is the deployment configuration handed to the platform CLI.
// Exactly one is written per run.
type Descriptor struct {
	Version int      `json:"version"`
	Public  bool     `json:"public"`
	Alias   []string `json:"alias"`
	Builds  []Build  `json:"builds"`
	Routes  []Route  `json:"routes"`
}

// SubdomainToken builds the random alias subdomain: a hex fragment plus a
// three-digit number. No local uniqueness guarantee; collisions are the
// platform's problem.
func SubdomainToken() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate subdomain token: %v", err)
	}

	n, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		return "", fmt.Errorf("failed to generate subdomain token: %v", err)
	}

	return fmt.Sprintf("app-%s-%d", hex.EncodeToString(b), n.Int64()+100), nil
}

// New builds the descriptor for the classified project type.
func New(projectType project.Type) (Descriptor, error) {
	token, err := SubdomainToken()
	if err != nil {
		return Descriptor{}, err
	}

	return Descriptor{
		Version: 2,
		Public:  true,
		Alias:   []string{token + "." + platformDomain},
		Builds:  buildsFor(projectType),
		Routes:  []Route{{Src: "/(.*)", Dest: "/$1"}},
	}, nil
}

func buildsFor(projectType project.Type) []Build {
	switch projectType {
	case project.TypeNext:
		return []Build{{Src: "package.json", Use: "@vercel/next"}}
	case project.TypeNode:
		return []Build{{Src: "package.json", Use: "@vercel/node"}}
	case project.TypeReact, project.TypeVite:
		return []Build{{
			Src:    "package.json",
			Use:    "@vercel/static-build",
			Config: map[string]string{"distDir": "dist"},
		}}
	default:
		// static and anything unclassified: ship the whole tree as-is.
		return []Build{{Src: "**/*", Use: "@vercel/static"}}
	}
}

// Write persists the descriptor as vercel.json in the workspace root.
func (d Descriptor) Write(dir string) error {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode descriptor: %v", err)
	}

	path := filepath.Join(dir, "vercel.json")
	if err := os.WriteFile(path, append(raw, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", path, err)
	}

	return nil
}
