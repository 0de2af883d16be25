package formatter

import (
	"fmt"
	"strings"

	"github.com/acamargo/studia/internal/feed"
	"github.com/acamargo/studia/internal/progress"
)

// RenderGenerationStatus renders the reconciled progress header: stage,
// step track and percentage bar.
func RenderGenerationStatus(snap progress.Snapshot) string {
	stage := StyleBlue.Render(StageLabel(snap.Stage))
	if snap.Failed {
		stage = StyleRed.Render(StageLabel(snap.Stage))
	} else if snap.Completed {
		stage = StyleGreen.Render(StageLabel(snap.Stage))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s\n", stage)
	fmt.Fprintf(&b, "  %s\n", RenderStepTrack(snap.Step, progress.TotalSteps))
	fmt.Fprintf(&b, "  %s", RenderProgress(snap.Progress/100, 32))
	return b.String()
}

// RenderMessages renders the live status message window, newest last.
func RenderMessages(messages []feed.Message) string {
	if len(messages) == 0 {
		return Dim("  Waiting for updates…")
	}
	var b strings.Builder
	for _, m := range messages {
		marker := StyleDim.Render("·")
		if m.Origin == feed.OriginPush {
			marker = StylePurple.Render("·")
		}
		fmt.Fprintf(&b, "  %s %s\n", marker, m.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderEvidence renders the discovered-source window. Items on their way
// out are dimmed.
func RenderEvidence(items []feed.EvidenceItem) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(Header("Sources"))
	b.WriteString("\n")
	for _, it := range items {
		line := fmt.Sprintf("  %s %s", Truncate(it.Title, 48), Dim(it.Domain))
		if it.Leaving {
			line = Dim(fmt.Sprintf("  %s %s", Truncate(it.Title, 48), it.Domain))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
