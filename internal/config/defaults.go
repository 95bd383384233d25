package config

const (
	defaultDataDir             = "~/.local/share/funmatch"
	defaultLogDir              = "~/.local/share/funmatch/logs"
	defaultScriptExtension     = ".funscript"
	defaultDefaultAction       = ActionDone
	defaultSkipMarker          = "s"
	defaultQuitMarker          = "q"
	defaultMinKeywordLength    = 3
	defaultStrongKeywordLength = 5
	defaultMinScore            = 2
	defaultDisplayLimit        = 12
	defaultCheckLimit          = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultRegistryFile        = "studios.json"
	defaultHistoryFile         = "history.log"
)

// Default Enter-key actions.
const (
	ActionDone = "done"
	ActionSkip = "skip"
)

var defaultVideoExtensions = []string{".mp4", ".mkv", ".avi", ".wmv", ".mov", ".webm", ".m4v"}

var defaultStopWords = []string{
	"the", "and", "for", "with", "from", "her", "his", "she", "you", "your",
	"this", "that", "are", "was", "feat", "featuring", "starring", "vol",
	"com", "www", "funscript", "script",
}

var defaultIgnoredNumbers = []string{
	"30", "60", "90", "120", "180", "190", "200", "220", "360",
	"1080", "1440", "1920", "2048", "2160", "2880", "3072", "3840",
	"4096", "5760", "6144", "7680", "8192",
}

// defaultCleanupPatterns run in order against text whose separators are
// already spaces. Later rules see the output of earlier ones.
var defaultCleanupPatterns = []string{
	// site urls and brand tags
	`\bwww\s+[a-z0-9]+\s+(?:com|net|org)\b`,
	`\b[a-z0-9]+\s+(?:com|net|org)\b`,
	`\b(?:sexlikereal|slr|vrporn|povr|xbvr|deovr|heresphere)\b`,
	// headsets
	`\b(?:oculus(?:\s+rift)?|quest\s*\d?|rift|vive|pico\s*\d?|psvr\s*\d?|gear\s*vr|samsung|daydream|smartphone|mobile|desktop)\b`,
	// projection and field of view
	`\b\d{3,4}x\d{3,4}\b`,
	`\b(?:3dh|sbs|lr|rl|tb|ou|fisheye\d*|mkx\d*|vrca\d*|equirect\d*|mono|stereo|3d)\b`,
	// resolution, codec, bitrate
	`\b(?:\d{3,4}p|\d{1,2}k|uhd|fhd|hd|h\s?26[45]|x26[45]|hevc|avc|av1|vp9|\d+\s?fps|\d+\s?mbps|\d+\s?kbps|hq|lq)\b`,
	// filler
	`\b(?:vr|xxx|scene|part|pt|episode|ep|full|video|clip|trailer|teaser|sample|preview)\b`,
	// file extensions left in display names
	`\b(?:mp4|mkv|avi|wmv|mov|webm|m4v|funscript)\b`,
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Library: Library{
			VideoExtensions:     append([]string(nil), defaultVideoExtensions...),
			ScriptExtension:     defaultScriptExtension,
			SkipExistingScripts: true,
		},
		Matching: Matching{
			StopWords:           append([]string(nil), defaultStopWords...),
			IgnoredNumbers:      append([]string(nil), defaultIgnoredNumbers...),
			CleanupPatterns:     append([]string(nil), defaultCleanupPatterns...),
			AskOnEmpty:          true,
			DefaultAction:       defaultDefaultAction,
			SkipMarker:          defaultSkipMarker,
			QuitMarker:          defaultQuitMarker,
			MinKeywordLength:    defaultMinKeywordLength,
			StrongKeywordLength: defaultStrongKeywordLength,
			MinScore:            defaultMinScore,
			DisplayLimit:        defaultDisplayLimit,
			CheckLimit:          defaultCheckLimit,
			Weights: Weights{
				Date:        10,
				Studio:      5,
				CleanStrong: 3,
				Exact:       2,
				Partial:     1,
				CleanWeak:   1,
			},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
