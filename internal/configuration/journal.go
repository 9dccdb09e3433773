package configuration

type JournalConfig struct {
	// Path of the event journal database. The journal is disabled when
	// the path is empty. Events recorded here are diagnostics only, the
	// daemon never restores control state from them.
	Path string `json:"path"`
}
