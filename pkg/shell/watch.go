package shell

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/arjunc/tinysql/pkg/snapshot"
)

// fileWatcher reloads the shell's database whenever its snapshot file
// changes on disk, so a second process writing the same snapshot file is
// picked up without a manual LOAD.
type fileWatcher struct {
	w *fsnotify.Watcher
}

// setWatch implements the WATCH ON/OFF supplement: ON enables
// autosave-after-every-write and, if the snapshot file already exists,
// starts an fsnotify watch that reloads the snapshot when the file is
// written; OFF reverses both.
func (sh *Shell) setWatch(on bool) {
	sh.autosave = on
	if !on {
		if sh.watcher != nil {
			sh.watcher.Close()
			sh.watcher = nil
		}
		fmt.Fprintln(sh.Out, "Watch off")
		return
	}

	if sh.watcher == nil {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			fmt.Fprintf(sh.Out, "Error: %s\n", err)
		} else if err := w.Add(sh.DBPath); err != nil {
			log.Debug("not watching snapshot file for external changes", "path", sh.DBPath, "err", err)
			w.Close()
		} else {
			sh.watcher = &fileWatcher{w: w}
			go sh.watchLoop(w)
		}
	}
	fmt.Fprintln(sh.Out, "Watch on: autosaving after writes to", sh.DBPath)
}

func (sh *Shell) watchLoop(w *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			db, err := snapshot.Load(sh.DBPath)
			if err != nil {
				log.Warn("watch reload failed", "path", sh.DBPath, "err", err)
				continue
			}
			sh.Engine.DB = db
			log.Info("reloaded snapshot after external change", "path", sh.DBPath)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", "err", err)
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (fw *fileWatcher) Close() {
	fw.w.Close()
}
