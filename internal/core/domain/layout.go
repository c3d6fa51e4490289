package domain

import "path/filepath"

const (
	// SpellDirName is the name of the per-project metadata directory.
	SpellDirName = ".spell"

	// JournalFileName is the name of the run journal file inside SpellDirName.
	JournalFileName = "journal.json"

	// TaskfileName is the default name of the taskfile.
	TaskfileName = "spellfile.yaml"

	// ConfigBaseName is the base name, without extension, of the project config file.
	ConfigBaseName = "spell"

	// SystemConfigPrefix is the path prefix of the system-wide config file.
	SystemConfigPrefix = "/etc/spell"

	// UserConfigBaseName is the base name, relative to the home directory, of the per-user config file.
	UserConfigBaseName = ".spell"

	// EnvPrefix is the prefix of environment variables that feed the context.
	EnvPrefix = "SPELL_"

	// EnvNestingSeparator separates nesting levels inside environment variable names.
	EnvNestingSeparator = "__"

	// JournalHistoryLimit caps how many records per task the journal keeps.
	JournalHistoryLimit = 20

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// ConfigExtensions lists the file extensions tried, in order, for every config prefix.
var ConfigExtensions = []string{".yaml", ".yml", ".json"}

// DefaultJournalPath returns the default path of the run journal.
// It joins .spell and journal.json.
func DefaultJournalPath() string {
	return filepath.Join(SpellDirName, JournalFileName)
}
