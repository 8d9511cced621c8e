package game

import (
	"sync"

	"github.com/ncruces/zenity"
	"github.com/pkg/errors"

	"github.com/iburimskiy/loopvis/internal/logx"
)

// notifier shows each distinct message once in a native dialog. Dialogs run
// on their own goroutine so the render loop never waits on the user.
type notifier struct {
	mu   sync.Mutex
	seen map[string]bool
	show func(msg string) error
}

func newNotifier() *notifier {
	return &notifier{
		seen: map[string]bool{},
		show: func(msg string) error {
			return zenity.Warning(msg, zenity.Title("loopvis"), zenity.WarningIcon)
		},
	}
}

// Notify reports whether the message was new.
func (n *notifier) Notify(msg string) bool {
	n.mu.Lock()
	if n.seen[msg] {
		n.mu.Unlock()
		return false
	}
	n.seen[msg] = true
	n.mu.Unlock()

	logx.Error.Println(msg)
	go func() {
		if err := n.show(msg); err != nil && !errors.Is(err, zenity.ErrCanceled) {
			logx.Error.Printf("notice dialog: %v", err)
		}
	}()
	return true
}

// saveDialog asks for a still destination. An empty path means the user
// cancelled.
func saveDialog(suggested string) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save still"),
		zenity.Filename(suggested),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return path, err
}
