package steamcmd

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vertextoedge/steamcmd-web/internal/domain"
)

// progressPattern matches SteamCMD app_update progress reports, e.g.
// " Update state (0x61) downloading, progress: 12.50 (500/4000)"
var progressPattern = regexp.MustCompile(`progress: (\d+(?:\.\d+)?) \((\d+)/(\d+)\)`)

// ParseProgressLine extracts a progress sample from one line of SteamCMD
// output. The elapsed duration is the wall-clock time since the process
// started. Returns nil when the line carries no progress report.
func ParseProgressLine(line string, elapsed time.Duration) *domain.Progress {
	if !strings.Contains(line, "progress:") {
		return nil
	}

	m := progressPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}

	downloaded, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return nil
	}
	total, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return nil
	}

	return domain.NewProgress(downloaded, total, elapsed)
}
