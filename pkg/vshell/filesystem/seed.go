package filesystem

import "github.com/arthur-debert/vshell/pkg/vshell/core"

// ReadmeContent is the content of the seeded /home/readme.txt.
const ReadmeContent = "Welcome to WebTerminal!\nThis is a simple text file."

// Default returns the seed snapshot used when nothing was persisted.
func Default() *Snapshot {
	return New(
		core.NewDirectory(core.HomeDir),
		core.NewFile(core.HomeDir+"/readme.txt", ReadmeContent),
		core.NewDirectory(core.HomeDir+"/documents"),
		core.NewDirectory(core.HomeDir+"/downloads"),
	)
}
