package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/mod/semver"
)

const devVersion = "0.0.0-dev"

// Valores sobrescritos por ldflags, ou preenchidos a partir do build info.
var (
	Version   = devVersion
	Commit    = ""
	BuildTime = ""
)

// ReleasesURL é consultada por CheckLatestVersion.
var ReleasesURL = "https://api.github.com/repos/diillson/aws-idle-notifier/releases/latest"

// buildInfo holds what the Go toolchain embedded about the VCS state.
type buildInfo struct {
	revision string
	time     string
	tag      string
	modified bool
}

func readBuildInfo() (buildInfo, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return buildInfo{}, false
	}
	var info buildInfo
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.revision = s.Value
		case "vcs.time":
			info.time = s.Value
		case "vcs.tag":
			info.tag = s.Value
		case "vcs.modified":
			info.modified = strings.EqualFold(s.Value, "true")
		}
	}
	return info, true
}

// apply fills whatever ldflags left unset. A release version set by ldflags is kept.
func (b buildInfo) apply() {
	if Version != "" && Version != devVersion {
		return
	}
	if Commit == "" && len(b.revision) >= 7 {
		Commit = b.revision[:7]
	}
	if BuildTime == "" && b.time != "" {
		if ts, err := time.Parse(time.RFC3339, b.time); err == nil {
			BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}
	if b.tag != "" {
		Version = strings.TrimPrefix(b.tag, "v")
		if b.modified {
			Version += "-dirty"
		}
	}
}

func init() {
	if info, ok := readBuildInfo(); ok {
		info.apply()
	}
}

// CheckLatestVersion avisa quando há uma release mais nova. Falhas são ignoradas.
func CheckLatestVersion(currentVersion string) {
	if strings.HasSuffix(currentVersion, "-dev") {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	latestVersion, err := latestRelease(ctx, http.DefaultClient, ReleasesURL)
	if err != nil {
		return
	}

	if IsNewer(latestVersion, currentVersion) {
		pterm.Warning.Println(fmt.Sprintf("A new version of AWS Idle Notifier is available: %s", latestVersion))
		pterm.Info.Println("Please update using: go install github.com/diillson/aws-idle-notifier/cmd/idle-notifier@latest")
	}
}

func latestRelease(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}
	return strings.TrimPrefix(release.TagName, "v"), nil
}

// IsNewer compara versões semânticas; o prefixo "v" é opcional.
// Versões inválidas nunca são consideradas mais novas.
func IsNewer(candidate, current string) bool {
	a, b := canonical(candidate), canonical(current)
	if !semver.IsValid(a) || !semver.IsValid(b) {
		return false
	}
	return semver.Compare(a, b) > 0
}

func canonical(v string) string {
	return "v" + strings.TrimPrefix(strings.TrimSpace(v), "v")
}

// FormatVersion retorna a versão com commit e build time.
// Ex.: "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)"
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = devVersion
	}

	if Commit == "" {
		if BuildTime == "" {
			return fmt.Sprintf("%s (development)", ver)
		}
		return fmt.Sprintf("%s (commit: development, built at: %s)", ver, BuildTime)
	}

	if BuildTime != "" {
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
	}
	return fmt.Sprintf("%s (commit: %s)", ver, Commit)
}
