package game

import "github.com/tomz197/omega/internal/loop/config"

// NoticeKind classifies a notice for display.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSecret
	NoticeMilestone // Shared with other connected players
	NoticeError
)

// Notice is one message from the engine. Seq increases by one per notice.
type Notice struct {
	Seq  int
	Kind NoticeKind
	Text string
}

func (g *Game) notify(kind NoticeKind, text string) {
	g.noticeSeq++
	g.notices = append(g.notices, Notice{Seq: g.noticeSeq, Kind: kind, Text: text})
	if over := len(g.notices) - config.MaxNotices; over > 0 {
		g.notices = append(g.notices[:0], g.notices[over:]...)
	}
}

// Report adds an error notice, used by the UI for rejected input.
func (g *Game) Report(err error) {
	if err == nil {
		return
	}
	g.notify(NoticeError, err.Error())
}

// Notices returns the retained notices, oldest first.
func (g *Game) Notices() []Notice {
	return append([]Notice(nil), g.notices...)
}

// NoticesSince returns the notices with Seq greater than seq.
func (g *Game) NoticesSince(seq int) []Notice {
	var out []Notice
	for _, n := range g.notices {
		if n.Seq > seq {
			out = append(out, n)
		}
	}
	return out
}
